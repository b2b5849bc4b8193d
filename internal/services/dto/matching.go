package dto

import (
	"time"

	"influmatch_backend/internal/models"
)

// ========================
// Matching DTOs
// ========================

// MatchingWeights - семь именованных весов скоринга.
// Сумма НЕ нормализуется при расчете per-request: за осмысленность весов в
// критериях отвечает вызывающая сторона. Админский набор (UpdateWeights)
// проверяется на сумму ~1.0.
type MatchingWeights struct {
	AudienceRelevance float64 `json:"audience_relevance" validate:"required,min=0,max=1"`
	EngagementRate    float64 `json:"engagement_rate" validate:"required,min=0,max=1"`
	ContentQuality    float64 `json:"content_quality" validate:"required,min=0,max=1"`
	BrandAlignment    float64 `json:"brand_alignment" validate:"required,min=0,max=1"`
	ReachPotential    float64 `json:"reach_potential" validate:"required,min=0,max=1"`
	CostEfficiency    float64 `json:"cost_efficiency" validate:"required,min=0,max=1"`
	PastPerformance   float64 `json:"past_performance" validate:"required,min=0,max=1"`
}

// ScoreBreakdown - семь компонент скоринга (каждая 0-100) плюс взвешенный total
type ScoreBreakdown struct {
	AudienceRelevance float64 `json:"audience_relevance"`
	EngagementRate    float64 `json:"engagement_rate"`
	ContentQuality    float64 `json:"content_quality"`
	BrandAlignment    float64 `json:"brand_alignment"`
	ReachPotential    float64 `json:"reach_potential"`
	CostEfficiency    float64 `json:"cost_efficiency"`
	PastPerformance   float64 `json:"past_performance"`
	Total             float64 `json:"total"`
}

// BudgetRange - бюджетная вилка кампании
type BudgetRange struct {
	Min      float64 `json:"min" validate:"omitempty,min=0"`
	Max      float64 `json:"max" validate:"omitempty,min=0,gtefield=Min"`
	Currency string  `json:"currency"`
}

// CampaignGoal - одна цель кампании
type CampaignGoal struct {
	Type     models.GoalType `json:"type" validate:"required,is-goal-type"`
	Priority int             `json:"priority" validate:"omitempty,min=1,max=10"`
	KPI      string          `json:"kpi"`
	Target   float64         `json:"target"`
}

// TargetAudience - целевая аудитория кампании
type TargetAudience struct {
	AgeRanges      []string `json:"age_ranges"`
	Locations      []string `json:"locations"`
	Interests      []string `json:"interests"`
	Psychographics []string `json:"psychographics"`
}

// CampaignContext - контекст кампании в критериях матчинга
type CampaignContext struct {
	Budget         *BudgetRange    `json:"budget"`
	DurationDays   int             `json:"duration_days" validate:"omitempty,min=1"`
	Goals          []CampaignGoal  `json:"goals" validate:"omitempty,dive"`
	TargetAudience *TargetAudience `json:"target_audience"`
}

// Preferences - мягкие предпочтения бренда
type Preferences struct {
	Platforms          []string `json:"platforms"`
	Categories         []string `json:"categories"`
	Locations          []string `json:"locations"`
	Languages          []string `json:"languages"`
	ExcludeCompetitors bool     `json:"exclude_competitors"`
}

// Requirements - жесткие требования к кандидатам
type Requirements struct {
	MinFollowers       int64   `json:"min_followers" validate:"omitempty,min=0"`
	MaxFollowers       int64   `json:"max_followers" validate:"omitempty,min=0"`
	MinEngagementRate  float64 `json:"min_engagement_rate" validate:"omitempty,min=0"`
	MinAudienceQuality float64 `json:"min_audience_quality" validate:"omitempty,min=0,max=100"`
	VerifiedOnly       bool    `json:"verified_only"`
}

// MatchingCriteria - полный запрос матчинга для бренда
type MatchingCriteria struct {
	BrandID      string           `json:"brand_id"`
	Campaign     *CampaignContext `json:"campaign"`
	Preferences  Preferences      `json:"preferences"`
	Requirements Requirements     `json:"requirements"`
	Weights      *MatchingWeights `json:"weights"` // nil = дефолтные
	Limit        int              `json:"limit" validate:"omitempty,min=0,max=100"`
	MinScore     float64          `json:"min_score" validate:"omitempty,min=0,max=100"`
}

// CompatibilityFactor - один именованный фактор анализа
type CompatibilityFactor struct {
	Name        string             `json:"name"`
	Score       float64            `json:"score"` // 0-100
	Impact      models.ImpactLevel `json:"impact"`
	Description string             `json:"description"`
}

// MatchAnalysis - количественные оценки по паре бренд/креатор
type MatchAnalysis struct {
	AudienceOverlap     float64               `json:"audience_overlap"` // 0-100, %
	EstimatedReach      int64                 `json:"estimated_reach"`
	EstimatedEngagement float64               `json:"estimated_engagement"`
	EstimatedROI        float64               `json:"estimated_roi"`
	Factors             []CompatibilityFactor `json:"factors"`
	Strengths           []string              `json:"strengths"`
	Weaknesses          []string              `json:"weaknesses"`
}

// MatchRecommendation - вердикт по матчу
type MatchRecommendation struct {
	Status        models.RecommendationStatus `json:"status"`
	Reasons       []string                    `json:"reasons"`
	Risks         []string                    `json:"risks"`
	Opportunities []string                    `json:"opportunities"`
}

// MatchResult - итоговый результат матчинга для одной пары
type MatchResult struct {
	MatchID        string               `json:"match_id"`
	BrandID        string               `json:"brand_id"`
	CreatorID      string               `json:"creator_id"`
	CreatorName    string               `json:"creator_name,omitempty"`
	Score          float64              `json:"score"`      // 0-100, гибридный
	Confidence     float64              `json:"confidence"` // 0-1
	Breakdown      *ScoreBreakdown      `json:"breakdown"`
	Recommendation *MatchRecommendation `json:"recommendation"`
	Analysis       *MatchAnalysis       `json:"analysis"`
}

// SimilarCreator - элемент выдачи "похожие креаторы"
type SimilarCreator struct {
	CreatorID        string   `json:"creator_id"`
	Name             string   `json:"name"`
	Similarity       float64  `json:"similarity"` // 0-1
	CommonCategories []string `json:"common_categories"`
}

// FeedbackRequest - тело updateMatchScore
type FeedbackRequest struct {
	Feedback models.FeedbackType `json:"feedback" validate:"required,is-feedback-type"`
}

// MatchingInsights - агрегированная аналитика по бренду
type MatchingInsights struct {
	BrandID           string   `json:"brand_id"`
	TopCategories     []string `json:"top_categories"`
	AverageMatchScore float64  `json:"average_match_score"`
	SuccessRate       float64  `json:"success_rate"` // доля positive фидбека
	Recommendations   []string `json:"recommendations"`
}

// MatchingLogCriteria - фильтр для админской выборки журнала
type MatchingLogCriteria struct {
	BrandID   string    `form:"brand_id"`
	CreatorID string    `form:"creator_id"`
	MinScore  float64   `form:"min_score" validate:"omitempty,min=0,max=100"`
	DateFrom  time.Time `form:"date_from"`
	DateTo    time.Time `form:"date_to"`
	Page      int       `form:"page" validate:"omitempty,min=1"`
	PageSize  int       `form:"page_size" validate:"omitempty,min=1,max=100"`
}

// MatchingLogEntry - одна запись журнала в выдаче
type MatchingLogEntry struct {
	ID         string    `json:"id"`
	BrandID    string    `json:"brand_id"`
	CreatorID  string    `json:"creator_id"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}
