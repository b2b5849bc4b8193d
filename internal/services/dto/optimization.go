package dto

import (
	"time"

	"influmatch_backend/internal/models"
)

// ========================
// Portfolio optimization DTOs
// ========================

// TimeWindow - окно доступности кампании
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// OptimizationConstraints - ограничения отбора портфеля
type OptimizationConstraints struct {
	MaxInfluencers int            `json:"max_influencers" validate:"omitempty,min=1"`
	MinInfluencers int            `json:"min_influencers" validate:"omitempty,min=0"`
	PlatformCaps   map[string]int `json:"platform_caps"`     // платформа -> максимум креаторов
	CategoryMin    map[string]int `json:"category_min"`      // категория -> минимум креаторов
	CategoryMax    map[string]int `json:"category_max"`      // категория -> максимум креаторов
	Availability   *TimeWindow    `json:"availability"`
	BlackoutDates  []time.Time    `json:"blackout_dates"`
}

// OptimizationRequest - запрос на подбор портфеля
type OptimizationRequest struct {
	BrandID     string                  `json:"brand_id" validate:"required"`
	Budget      float64                 `json:"budget" validate:"required,gt=0"`
	Goals       []CampaignGoal          `json:"goals" validate:"omitempty,dive"`
	Constraints OptimizationConstraints `json:"constraints"`
}

// PortfolioEntry - один креатор в портфеле
type PortfolioEntry struct {
	CreatorID       string               `json:"creator_id"`
	Allocation      float64              `json:"allocation"` // выделенный бюджет
	Role            models.PortfolioRole `json:"role"`
	Deliverables    []string             `json:"deliverables"`
	EstimatedImpact float64              `json:"estimated_impact"` // 0-100
}

// OptimizationResult - итог жадного отбора.
// Невыполнимость min_influencers НЕ ошибка: вызывающая сторона проверяет
// len(Portfolio) против ограничений сама (soft failure).
type OptimizationResult struct {
	BrandID             string           `json:"brand_id"`
	Portfolio           []PortfolioEntry `json:"portfolio"`
	TotalScore          float64          `json:"total_score"`
	EstimatedReach      int64            `json:"estimated_reach"`
	EstimatedEngagement float64          `json:"estimated_engagement"`
	EstimatedROI        float64          `json:"estimated_roi"`
	BudgetUtilization   float64          `json:"budget_utilization"` // spend/budget
	Recommendations     []string         `json:"recommendations"`
}
