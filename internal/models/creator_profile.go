package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// PlatformPresence - присутствие креатора на одной платформе
type PlatformPresence struct {
	Platform       string  `json:"platform"` // instagram, tiktok, youtube...
	Handle         string  `json:"handle"`
	Followers      int64   `json:"followers"`
	EngagementRate float64 `json:"engagement_rate"` // проценты: 5.0 = 5%
	Verified       bool    `json:"verified"`
}

// AudienceProfile - агрегированная аудитория креатора по всем платформам
type AudienceProfile struct {
	TotalReach        int64        `json:"total_reach"`
	Demographics      Demographics `json:"demographics"`
	Interests         []string     `json:"interests"`
	AuthenticityScore float64      `json:"authenticity_score"` // 0-100
	QualityScore      float64      `json:"quality_score"`      // 0-100
}

// Demographics - разбивка аудитории
type Demographics struct {
	AgeRanges   map[string]float64 `json:"age_ranges"`             // "18-24" -> доля
	Locations   []string           `json:"locations"`
	GenderSplit map[string]float64 `json:"gender_split,omitempty"`
}

// ContentProfile - характеристики контента
type ContentProfile struct {
	PrimaryCategories []string `json:"primary_categories"`
	QualityScore      float64  `json:"quality_score"`      // 0-100
	PostingFrequency  float64  `json:"posting_frequency"`  // постов в день
	OriginalityScore  float64  `json:"originality_score"`  // 0-100
	BrandSafetyScore  float64  `json:"brand_safety_score"` // 0-100
}

// PerformanceHistory - история выполненных кампаний
type PerformanceHistory struct {
	CampaignsCompleted int      `json:"campaigns_completed"`
	AverageROI         float64  `json:"average_roi"`         // множитель, ~0-10
	CompletionRate     float64  `json:"completion_rate"`     // 0-100
	ClientSatisfaction float64  `json:"client_satisfaction"` // 0-100
	Specialties        []string `json:"specialties"`
}

// BrandCollaboration - одна прошлая коллаборация
type BrandCollaboration struct {
	BrandID     string    `json:"brand_id"`
	CampaignID  string    `json:"campaign_id"`
	Date        time.Time `json:"date"`
	Performance float64   `json:"performance"` // 0-100
	Category    string    `json:"category"`
}

// CreatorProfile - нормализованный профиль креатора.
// Заполняется внешним пайплайном сбора данных, движок читает его как есть.
type CreatorProfile struct {
	BaseModel
	Name           string         `gorm:"not null"`
	Categories     pq.StringArray `gorm:"type:text[]"`
	Languages      pq.StringArray `gorm:"type:text[]"`
	Locations      pq.StringArray `gorm:"type:text[]"`
	Platforms      datatypes.JSON `gorm:"type:jsonb"` // []PlatformPresence
	Audience       datatypes.JSON `gorm:"type:jsonb"` // AudienceProfile
	Content        datatypes.JSON `gorm:"type:jsonb"` // ContentProfile
	Performance    datatypes.JSON `gorm:"type:jsonb"` // PerformanceHistory
	Collaborations datatypes.JSON `gorm:"type:jsonb"` // []BrandCollaboration
	AvailableFrom  *time.Time
	AvailableUntil *time.Time
	IsActive       bool `gorm:"default:true"`
}

// IsAvailable проверяет, покрывает ли окно доступности креатора интервал [from, until]
func (c *CreatorProfile) IsAvailable(from, until time.Time) bool {
	if c.AvailableFrom != nil && c.AvailableFrom.After(from) {
		return false
	}
	if c.AvailableUntil != nil && c.AvailableUntil.Before(until) {
		return false
	}
	return true
}

// GetPlatforms возвращает платформы креатора как типизированный slice
func (c *CreatorProfile) GetPlatforms() []PlatformPresence {
	var platforms []PlatformPresence
	if len(c.Platforms) > 0 {
		_ = json.Unmarshal(c.Platforms, &platforms)
	}
	return platforms
}

// GetAudience возвращает профиль аудитории (нулевое значение, если не заполнен)
func (c *CreatorProfile) GetAudience() AudienceProfile {
	var audience AudienceProfile
	if len(c.Audience) > 0 {
		_ = json.Unmarshal(c.Audience, &audience)
	}
	return audience
}

// GetContent возвращает контентный профиль
func (c *CreatorProfile) GetContent() ContentProfile {
	var content ContentProfile
	if len(c.Content) > 0 {
		_ = json.Unmarshal(c.Content, &content)
	}
	return content
}

// GetPerformance возвращает историю кампаний
func (c *CreatorProfile) GetPerformance() PerformanceHistory {
	var performance PerformanceHistory
	if len(c.Performance) > 0 {
		_ = json.Unmarshal(c.Performance, &performance)
	}
	return performance
}

// GetCollaborations возвращает прошлые коллаборации
func (c *CreatorProfile) GetCollaborations() []BrandCollaboration {
	var collaborations []BrandCollaboration
	if len(c.Collaborations) > 0 {
		_ = json.Unmarshal(c.Collaborations, &collaborations)
	}
	return collaborations
}

// SetPlatforms сериализует платформы в JSONB-колонку
func (c *CreatorProfile) SetPlatforms(platforms []PlatformPresence) {
	data, _ := json.Marshal(platforms)
	c.Platforms = datatypes.JSON(data)
}

// SetAudience сериализует профиль аудитории
func (c *CreatorProfile) SetAudience(audience AudienceProfile) {
	data, _ := json.Marshal(audience)
	c.Audience = datatypes.JSON(data)
}

// SetContent сериализует контентный профиль
func (c *CreatorProfile) SetContent(content ContentProfile) {
	data, _ := json.Marshal(content)
	c.Content = datatypes.JSON(data)
}

// SetPerformance сериализует историю кампаний
func (c *CreatorProfile) SetPerformance(performance PerformanceHistory) {
	data, _ := json.Marshal(performance)
	c.Performance = datatypes.JSON(data)
}

// SetCollaborations сериализует коллаборации
func (c *CreatorProfile) SetCollaborations(collaborations []BrandCollaboration) {
	data, _ := json.Marshal(collaborations)
	c.Collaborations = datatypes.JSON(data)
}

// TotalFollowers суммирует подписчиков по всем платформам
func (c *CreatorProfile) TotalFollowers() int64 {
	var total int64
	for _, p := range c.GetPlatforms() {
		total += p.Followers
	}
	return total
}

// AverageEngagementRate - средний engagement rate по платформам (проценты)
func (c *CreatorProfile) AverageEngagementRate() float64 {
	platforms := c.GetPlatforms()
	if len(platforms) == 0 {
		return 0
	}
	var sum float64
	for _, p := range platforms {
		sum += p.EngagementRate
	}
	return sum / float64(len(platforms))
}

// HasPlatform проверяет присутствие на платформе (без учета регистра не нужен:
// имена платформ нормализованы пайплайном)
func (c *CreatorProfile) HasPlatform(platform string) bool {
	for _, p := range c.GetPlatforms() {
		if p.Platform == platform {
			return true
		}
	}
	return false
}
