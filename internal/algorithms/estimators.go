package algorithms

import (
	"math"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services/dto"
)

// CostEstimator prices a creator for one campaign. Kept behind an interface
// so a learned pricing model can replace the fixed-rate heuristic without
// touching the optimizer's constraint logic.
type CostEstimator interface {
	EstimateCost(creator *models.CreatorProfile) float64
}

// ImpactEstimator converts a match score into an expected campaign impact
// (0-100) given the campaign goals.
type ImpactEstimator interface {
	EstimateImpact(creator *models.CreatorProfile, score float64, goals []dto.CampaignGoal) float64
}

// PerMilleCostEstimator charges a flat rate per thousand followers, rounded
// to the nearest mille. 250k followers at the default rate cost 25000.
type PerMilleCostEstimator struct {
	RatePerMille float64
}

func DefaultCostEstimator() *PerMilleCostEstimator {
	return &PerMilleCostEstimator{RatePerMille: 100}
}

func (e *PerMilleCostEstimator) EstimateCost(creator *models.CreatorProfile) float64 {
	return math.Round(float64(creator.TotalFollowers())/1000.0) * e.RatePerMille
}

// GoalMultiplierImpactEstimator scales the match score by a goal-specific
// multiplier: reach drives awareness goals, engagement rate drives
// engagement goals. The result is capped at 100.
type GoalMultiplierImpactEstimator struct{}

func DefaultImpactEstimator() *GoalMultiplierImpactEstimator {
	return &GoalMultiplierImpactEstimator{}
}

func (e *GoalMultiplierImpactEstimator) EstimateImpact(creator *models.CreatorProfile, score float64, goals []dto.CampaignGoal) float64 {
	if len(goals) == 0 {
		return clampScore(score)
	}

	reach := creator.GetAudience().TotalReach
	if reach == 0 {
		reach = creator.TotalFollowers()
	}

	best := 0.0
	for _, goal := range goals {
		var multiplier float64
		switch goal.Type {
		case models.GoalAwareness:
			multiplier = float64(reach) / 100000.0
		case models.GoalEngagement:
			multiplier = creator.AverageEngagementRate() / 5.0
		default:
			multiplier = 1.0
		}

		impact := clampScore(score * multiplier)
		if impact > best {
			best = impact
		}
	}
	return best
}
