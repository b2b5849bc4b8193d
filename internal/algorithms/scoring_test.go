package algorithms

import (
	"testing"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCreator(id string, followers int64, engagementRate float64) *models.CreatorProfile {
	creator := &models.CreatorProfile{
		Name:       "Creator " + id,
		Categories: []string{"fashion", "lifestyle"},
		Languages:  []string{"en"},
		Locations:  []string{"US"},
	}
	creator.ID = id
	creator.SetPlatforms([]models.PlatformPresence{
		{Platform: "instagram", Handle: "@" + id, Followers: followers, EngagementRate: engagementRate, Verified: true},
	})
	creator.SetAudience(models.AudienceProfile{
		TotalReach: followers,
		Demographics: models.Demographics{
			AgeRanges: map[string]float64{"18-24": 0.4, "25-34": 0.4},
			Locations: []string{"US", "CA"},
		},
		Interests:         []string{"fashion", "beauty"},
		AuthenticityScore: 90,
		QualityScore:      80,
	})
	creator.SetContent(models.ContentProfile{
		PrimaryCategories: []string{"fashion"},
		QualityScore:      85,
		PostingFrequency:  1.5,
		OriginalityScore:  75,
		BrandSafetyScore:  90,
	})
	creator.SetPerformance(models.PerformanceHistory{
		CampaignsCompleted: 12,
		AverageROI:         3.2,
		CompletionRate:     95,
		ClientSatisfaction: 88,
		Specialties:        []string{"product launches"},
	})
	return creator
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	sum := w.AudienceRelevance + w.EngagementRate + w.ContentQuality +
		w.BrandAlignment + w.ReachPotential + w.CostEfficiency + w.PastPerformance
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestScoreComponentsInRange(t *testing.T) {
	engine := NewScoringEngine(nil)
	creator := makeCreator("c1", 100000, 5.0)
	criteria := &dto.MatchingCriteria{
		BrandID: "b1",
		Campaign: &dto.CampaignContext{
			Budget: &dto.BudgetRange{Min: 1000, Max: 50000, Currency: "USD"},
			TargetAudience: &dto.TargetAudience{
				AgeRanges: []string{"18-24"},
				Locations: []string{"US"},
				Interests: []string{"fashion"},
			},
		},
	}

	breakdown := engine.Score(creator, criteria, nil)

	for name, component := range map[string]float64{
		"audience_relevance": breakdown.AudienceRelevance,
		"engagement_rate":    breakdown.EngagementRate,
		"content_quality":    breakdown.ContentQuality,
		"brand_alignment":    breakdown.BrandAlignment,
		"reach_potential":    breakdown.ReachPotential,
		"cost_efficiency":    breakdown.CostEfficiency,
		"past_performance":   breakdown.PastPerformance,
	} {
		assert.GreaterOrEqual(t, component, 0.0, name)
		assert.LessOrEqual(t, component, 100.0, name)
	}

	require.NoError(t, ValidateScore(breakdown, nil))
}

func TestEngagementRateScaling(t *testing.T) {
	engine := NewScoringEngine(nil)

	// 5% average engagement rate maps to 50; its contribution under default
	// weights is 50 x 0.20 = 10
	creator := makeCreator("c1", 100000, 5.0)
	breakdown := engine.Score(creator, nil, nil)
	assert.InDelta(t, 50.0, breakdown.EngagementRate, 1e-9)
	assert.InDelta(t, 10.0, breakdown.EngagementRate*DefaultWeights().EngagementRate, 1e-9)

	// 10%+ caps at 100
	hot := makeCreator("c2", 100000, 14.0)
	breakdown = engine.Score(hot, nil, nil)
	assert.InDelta(t, 100.0, breakdown.EngagementRate, 1e-9)
}

func TestEstimateCostPerMille(t *testing.T) {
	estimator := DefaultCostEstimator()
	creator := makeCreator("c1", 250000, 4.0)
	assert.InDelta(t, 25000.0, estimator.EstimateCost(creator), 1e-9)
}

func TestCostEfficiencyOverBudget(t *testing.T) {
	engine := NewScoringEngine(nil)

	// 150k followers -> estimated cost 15000, above the 10000 max
	creator := makeCreator("c1", 150000, 4.0)
	criteria := &dto.MatchingCriteria{
		Campaign: &dto.CampaignContext{
			Budget: &dto.BudgetRange{Min: 1000, Max: 10000, Currency: "USD"},
		},
	}
	breakdown := engine.Score(creator, criteria, nil)
	assert.Zero(t, breakdown.CostEfficiency)
}

func TestCostEfficiencyUnderMin(t *testing.T) {
	engine := NewScoringEngine(nil)

	// 5k followers -> estimated cost 500, below the 1000 min
	creator := makeCreator("c1", 5000, 4.0)
	criteria := &dto.MatchingCriteria{
		Campaign: &dto.CampaignContext{
			Budget: &dto.BudgetRange{Min: 1000, Max: 10000, Currency: "USD"},
		},
	}
	breakdown := engine.Score(creator, criteria, nil)
	assert.InDelta(t, 100.0, breakdown.CostEfficiency, 1e-9)
}

func TestPastPerformanceNeutralPrior(t *testing.T) {
	engine := NewScoringEngine(nil)

	creator := makeCreator("c1", 100000, 5.0)
	creator.SetPerformance(models.PerformanceHistory{CampaignsCompleted: 0})

	breakdown := engine.Score(creator, nil, nil)
	assert.InDelta(t, 50.0, breakdown.PastPerformance, 1e-9)
}

func TestReachPotentialOutsideRequirementWindow(t *testing.T) {
	engine := NewScoringEngine(nil)
	creator := makeCreator("c1", 100000, 5.0)

	criteria := &dto.MatchingCriteria{
		Requirements: dto.Requirements{MinFollowers: 500000},
	}
	breakdown := engine.Score(creator, criteria, nil)
	assert.Zero(t, breakdown.ReachPotential)

	criteria = &dto.MatchingCriteria{
		Requirements: dto.Requirements{MaxFollowers: 50000},
	}
	breakdown = engine.Score(creator, criteria, nil)
	assert.Zero(t, breakdown.ReachPotential)
}

func TestBrandAlignmentPriorCollaboration(t *testing.T) {
	engine := NewScoringEngine(nil)
	creator := makeCreator("c1", 100000, 5.0)

	brand := &models.BrandProfile{Name: "Acme", Categories: []string{"fashion"}}
	brand.ID = "b1"

	without := engine.Score(creator, nil, brand).BrandAlignment

	creator.SetCollaborations([]models.BrandCollaboration{
		{BrandID: "b1", CampaignID: "camp1", Performance: 80, Category: "fashion"},
	})
	with := engine.Score(creator, nil, brand).BrandAlignment

	assert.InDelta(t, 10.0, with-without, 1e-9)
}

func TestValidateScoreDetectsMismatch(t *testing.T) {
	breakdown := &dto.ScoreBreakdown{
		AudienceRelevance: 50, EngagementRate: 50, ContentQuality: 50,
		BrandAlignment: 50, ReachPotential: 50, CostEfficiency: 50,
		PastPerformance: 50,
		Total:           99.0, // правильный total для дефолтных весов = 50
	}
	assert.Error(t, ValidateScore(breakdown, nil))

	breakdown.Total = 50.0
	assert.NoError(t, ValidateScore(breakdown, nil))
}

func TestValidateScoreRejectsOutOfRangeComponent(t *testing.T) {
	breakdown := &dto.ScoreBreakdown{AudienceRelevance: 120}
	assert.Error(t, ValidateScore(breakdown, nil))
}
