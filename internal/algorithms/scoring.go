package algorithms

import (
	"fmt"
	"math"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services/dto"
)

// DefaultWeights returns the stock seven-factor weight set (sums to 1.0).
func DefaultWeights() dto.MatchingWeights {
	return dto.MatchingWeights{
		AudienceRelevance: 0.25,
		EngagementRate:    0.20,
		ContentQuality:    0.15,
		BrandAlignment:    0.15,
		ReachPotential:    0.10,
		CostEfficiency:    0.10,
		PastPerformance:   0.05,
	}
}

// ScoringEngine computes the rule-based seven-factor compatibility score
// between one creator and one brand/campaign. All factor scores are 0-100.
type ScoringEngine struct {
	cost CostEstimator
}

func NewScoringEngine(cost CostEstimator) *ScoringEngine {
	if cost == nil {
		cost = DefaultCostEstimator()
	}
	return &ScoringEngine{cost: cost}
}

// Score computes the full breakdown. Caller-supplied weights are used as
// given, without renormalization; pass nil for the defaults.
func (e *ScoringEngine) Score(creator *models.CreatorProfile, criteria *dto.MatchingCriteria, brand *models.BrandProfile) *dto.ScoreBreakdown {
	weights := DefaultWeights()
	if criteria != nil && criteria.Weights != nil {
		weights = *criteria.Weights
	}

	breakdown := &dto.ScoreBreakdown{
		AudienceRelevance: e.audienceRelevance(creator, criteria),
		EngagementRate:    e.engagementRate(creator),
		ContentQuality:    e.contentQuality(creator),
		BrandAlignment:    e.brandAlignment(creator, criteria, brand),
		ReachPotential:    e.reachPotential(creator, criteria),
		CostEfficiency:    e.costEfficiency(creator, criteria),
		PastPerformance:   e.pastPerformance(creator),
	}
	breakdown.Total = weightedTotal(breakdown, &weights)

	return breakdown
}

// ValidateScore recomputes the weighted total from the breakdown components
// and checks it against the reported total. A mismatch beyond epsilon means
// an implementation bug, not bad input.
func ValidateScore(breakdown *dto.ScoreBreakdown, weights *dto.MatchingWeights) error {
	const epsilon = 1e-2

	if weights == nil {
		w := DefaultWeights()
		weights = &w
	}

	components := []float64{
		breakdown.AudienceRelevance,
		breakdown.EngagementRate,
		breakdown.ContentQuality,
		breakdown.BrandAlignment,
		breakdown.ReachPotential,
		breakdown.CostEfficiency,
		breakdown.PastPerformance,
	}
	for _, c := range components {
		if c < 0 || c > 100 {
			return fmt.Errorf("score component %.4f out of [0,100]", c)
		}
	}

	expected := weightedTotal(breakdown, weights)
	if math.Abs(expected-breakdown.Total) > epsilon {
		return fmt.Errorf("total %.4f does not match recomputed %.4f", breakdown.Total, expected)
	}
	return nil
}

func weightedTotal(b *dto.ScoreBreakdown, w *dto.MatchingWeights) float64 {
	return b.AudienceRelevance*w.AudienceRelevance +
		b.EngagementRate*w.EngagementRate +
		b.ContentQuality*w.ContentQuality +
		b.BrandAlignment*w.BrandAlignment +
		b.ReachPotential*w.ReachPotential +
		b.CostEfficiency*w.CostEfficiency +
		b.PastPerformance*w.PastPerformance
}

// audienceRelevance averages the overlap ratios (age ranges, locations,
// interests) that are actually available; neutral 50 when the campaign gives
// us nothing to compare against.
func (e *ScoringEngine) audienceRelevance(creator *models.CreatorProfile, criteria *dto.MatchingCriteria) float64 {
	if criteria == nil || criteria.Campaign == nil || criteria.Campaign.TargetAudience == nil {
		return 50.0
	}
	target := criteria.Campaign.TargetAudience
	audience := creator.GetAudience()

	var ratios []float64

	if len(target.AgeRanges) > 0 && len(audience.Demographics.AgeRanges) > 0 {
		matched := 0
		for _, ageRange := range target.AgeRanges {
			if audience.Demographics.AgeRanges[ageRange] > 0 {
				matched++
			}
		}
		ratios = append(ratios, float64(matched)/float64(len(target.AgeRanges)))
	}

	if len(target.Locations) > 0 && len(audience.Demographics.Locations) > 0 {
		ratios = append(ratios, overlapRatio(target.Locations, audience.Demographics.Locations))
	}

	if len(target.Interests) > 0 && len(audience.Interests) > 0 {
		ratios = append(ratios, overlapRatio(target.Interests, audience.Interests))
	}

	if len(ratios) == 0 {
		return 50.0
	}

	sum := 0.0
	for _, r := range ratios {
		sum += r
	}
	return clampScore(sum / float64(len(ratios)) * 100.0)
}

// engagementRate maps the creator's mean platform engagement rate onto 0-100:
// a 10% average rate (or better) scores the maximum.
func (e *ScoringEngine) engagementRate(creator *models.CreatorProfile) float64 {
	return clampScore(creator.AverageEngagementRate() * 10.0)
}

// contentQuality is the unweighted mean of quality, originality, brand safety
// and a posting-frequency normality score centered on 1.5 posts/day.
func (e *ScoringEngine) contentQuality(creator *models.CreatorProfile) float64 {
	content := creator.GetContent()

	frequencyScore := 100.0 - math.Abs(content.PostingFrequency-1.5)*20.0
	if frequencyScore < 0 {
		frequencyScore = 0
	}

	mean := (content.QualityScore + content.OriginalityScore + content.BrandSafetyScore + frequencyScore) / 4.0
	return clampScore(mean)
}

// brandAlignment starts from a neutral base and rewards category overlap,
// a prior collaboration with this exact brand, and a high brand-safety score.
func (e *ScoringEngine) brandAlignment(creator *models.CreatorProfile, criteria *dto.MatchingCriteria, brand *models.BrandProfile) float64 {
	score := 50.0

	var brandCategories []string
	if brand != nil {
		brandCategories = brand.Categories
	} else if criteria != nil {
		brandCategories = criteria.Preferences.Categories
	}

	if len(brandCategories) > 0 {
		score += 30.0 * overlapRatio(brandCategories, creator.Categories)
	}

	if brand != nil {
		for _, collab := range creator.GetCollaborations() {
			if collab.BrandID == brand.ID {
				score += 10.0
				break
			}
		}
	}

	if creator.GetContent().BrandSafetyScore > 80 {
		score += 10.0
	}

	return clampScore(score)
}

// reachPotential is zero outside the follower requirement window, otherwise
// logarithmic in total reach and discounted by audience quality.
func (e *ScoringEngine) reachPotential(creator *models.CreatorProfile, criteria *dto.MatchingCriteria) float64 {
	audience := creator.GetAudience()
	reach := audience.TotalReach
	if reach == 0 {
		reach = creator.TotalFollowers()
	}

	if criteria != nil {
		req := criteria.Requirements
		if req.MinFollowers > 0 && reach < req.MinFollowers {
			return 0
		}
		if req.MaxFollowers > 0 && reach > req.MaxFollowers {
			return 0
		}
	}

	quality := audience.QualityScore
	if quality == 0 {
		quality = 50 // нет данных о качестве - считаем средним
	}

	return clampScore(math.Log10(float64(reach)+1) * 10.0 * (quality / 100.0))
}

// costEfficiency interpolates the estimated cost linearly inside the campaign
// budget window: below min is a perfect 100, above max is 0. Without a budget
// the factor is neutral.
func (e *ScoringEngine) costEfficiency(creator *models.CreatorProfile, criteria *dto.MatchingCriteria) float64 {
	if criteria == nil || criteria.Campaign == nil || criteria.Campaign.Budget == nil || criteria.Campaign.Budget.Max <= 0 {
		return 50.0
	}
	budget := criteria.Campaign.Budget
	cost := e.cost.EstimateCost(creator)

	switch {
	case cost > budget.Max:
		return 0
	case cost < budget.Min:
		return 100
	case budget.Max == budget.Min:
		return 100
	default:
		return clampScore(100.0 * (1.0 - (cost-budget.Min)/(budget.Max-budget.Min)))
	}
}

// pastPerformance is a neutral 50 for creators with no completed campaigns,
// otherwise the mean of ROI (scaled x10), completion rate and satisfaction.
func (e *ScoringEngine) pastPerformance(creator *models.CreatorProfile) float64 {
	performance := creator.GetPerformance()
	if performance.CampaignsCompleted == 0 {
		return 50.0
	}

	roiScore := clampScore(performance.AverageROI * 10.0)
	mean := (roiScore + performance.CompletionRate + performance.ClientSatisfaction) / 3.0
	return clampScore(mean)
}

// overlapRatio calculates |intersection| / |a| for two string sets,
// case-sensitive (inputs are normalized upstream).
func overlapRatio(a, b []string) float64 {
	if len(a) == 0 {
		return 0
	}

	matches := 0
	for _, x := range a {
		for _, y := range b {
			if x == y {
				matches++
				break
			}
		}
	}
	return float64(matches) / float64(len(a))
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
