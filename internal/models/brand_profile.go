package models

import (
	"encoding/json"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// BrandTargetAudience - целевая аудитория бренда (демография + психография)
type BrandTargetAudience struct {
	AgeRanges      []string `json:"age_ranges"` // ["18-24", "25-34"]
	Locations      []string `json:"locations"`
	Interests      []string `json:"interests"`
	Psychographics []string `json:"psychographics,omitempty"`
}

// BrandProfile - профиль рекламодателя.
// Владелец данных - внешний profile repository, движок читает.
type BrandProfile struct {
	BaseModel
	Name              string         `gorm:"not null"`
	Industry          string
	Values            pq.StringArray `gorm:"type:text[]"` // декларируемые ценности
	Categories        pq.StringArray `gorm:"type:text[]"`
	TargetMarkets     pq.StringArray `gorm:"type:text[]"` // географические рынки
	RequiredPlatforms pq.StringArray `gorm:"type:text[]"`
	ContentStyle      pq.StringArray `gorm:"type:text[]"` // предпочитаемые стили контента
	BudgetMin         float64
	BudgetMax         float64
	TargetAudience    datatypes.JSON `gorm:"type:jsonb"` // BrandTargetAudience
}

// GetTargetAudience возвращает целевую аудиторию бренда
func (b *BrandProfile) GetTargetAudience() BrandTargetAudience {
	var audience BrandTargetAudience
	if len(b.TargetAudience) > 0 {
		_ = json.Unmarshal(b.TargetAudience, &audience)
	}
	return audience
}

// SetTargetAudience сериализует целевую аудиторию в JSONB-колонку
func (b *BrandProfile) SetTargetAudience(audience BrandTargetAudience) {
	data, _ := json.Marshal(audience)
	b.TargetAudience = datatypes.JSON(data)
}
