package models

import "time"

// Interaction - одна историческая запись бренд/креатор (оценка прошлой
// кампании 0-100). Это сырье для collaborative filtering.
type Interaction struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	BrandID    string `gorm:"index:idx_interactions_pair"`
	CreatorID  string `gorm:"index:idx_interactions_pair"`
	CampaignID string
	Score      float64 // 0-100
	CreatedAt  time.Time
}

func (Interaction) TableName() string {
	return "interactions"
}
