package models

type UserRole string
type RecommendationStatus string
type PortfolioRole string
type FeedbackType string
type GoalType string
type ImpactLevel string

const (
	UserRoleBrand UserRole = "brand"
	UserRoleAdmin UserRole = "admin"

	RecommendationHighly      RecommendationStatus = "highly_recommended"
	RecommendationRecommended RecommendationStatus = "recommended"
	RecommendationConsider    RecommendationStatus = "consider"
	RecommendationNotSuited   RecommendationStatus = "not_recommended"

	PortfolioRolePrimary    PortfolioRole = "primary"
	PortfolioRoleSupporting PortfolioRole = "supporting"
	PortfolioRoleAmplifier  PortfolioRole = "amplifier"

	FeedbackPositive FeedbackType = "positive"
	FeedbackNegative FeedbackType = "negative"
	FeedbackNeutral  FeedbackType = "neutral"

	GoalAwareness   GoalType = "awareness"
	GoalEngagement  GoalType = "engagement"
	GoalConversions GoalType = "conversions"

	ImpactPositive ImpactLevel = "positive"
	ImpactNeutral  ImpactLevel = "neutral"
	ImpactNegative ImpactLevel = "negative"
)
