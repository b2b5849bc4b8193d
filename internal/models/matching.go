package models

import (
	"time"

	"gorm.io/datatypes"
)

// MatchingLog - журнал посчитанных матчей. Пишется best-effort после
// каждого findMatches/getMatch, питает insights и фидбек.
type MatchingLog struct {
	ID         string  `gorm:"type:uuid;primaryKey"`
	BrandID    string  `gorm:"index"`
	CreatorID  string  `gorm:"index"`
	Score      float64
	Confidence float64
	Breakdown  datatypes.JSON `gorm:"type:jsonb"` // dto.ScoreBreakdown
	CreatedAt  time.Time
}

func (MatchingLog) TableName() string {
	return "matching_logs"
}

// MatchFeedback - фидбек по конкретному матчу (positive/negative/neutral).
// Сдвигает активные веса скоринга и инвалидирует кэш бренда.
type MatchFeedback struct {
	ID        string       `gorm:"type:uuid;primaryKey"`
	MatchID   string       `gorm:"index"` // ссылка на MatchingLog.ID
	BrandID   string       `gorm:"index"`
	Feedback  FeedbackType
	CreatedAt time.Time
}

func (MatchFeedback) TableName() string {
	return "match_feedbacks"
}
