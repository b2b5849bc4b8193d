package algorithms

import (
	"testing"
	"time"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveValueDensityOrdering(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	// a: cost 30000, score 60 -> value 0.002
	// b: cost 25000, score 75 -> value 0.003 (плотнее, идет первым)
	a := makeCreator("a", 300000, 4.0)
	b := makeCreator("b", 250000, 4.0)

	req := &dto.OptimizationRequest{
		BrandID: "b1",
		Budget:  50000,
	}
	result := optimizer.Solve(req, []models.CreatorProfile{*a, *b}, map[string]float64{
		"a": 60,
		"b": 75,
	})

	// оба не помещаются: остается только более плотный
	require.Len(t, result.Portfolio, 1)
	assert.Equal(t, "b", result.Portfolio[0].CreatorID)
	assert.InDelta(t, 25000.0, result.Portfolio[0].Allocation, 1e-9)
	assert.InDelta(t, 0.5, result.BudgetUtilization, 1e-9)
}

func TestSolveBudgetNeverExceeded(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	candidates := []models.CreatorProfile{
		*makeCreator("a", 100000, 5.0),
		*makeCreator("b", 150000, 4.0),
		*makeCreator("c", 200000, 3.0),
	}
	scores := map[string]float64{"a": 80, "b": 70, "c": 60}

	req := &dto.OptimizationRequest{BrandID: "b1", Budget: 20000}
	result := optimizer.Solve(req, candidates, scores)

	var spend float64
	for _, entry := range result.Portfolio {
		spend += entry.Allocation
	}
	assert.LessOrEqual(t, spend, req.Budget)
	assert.InDelta(t, spend/req.Budget, result.BudgetUtilization, 1e-9)
}

func TestSolveMaxInfluencersRespected(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	candidates := []models.CreatorProfile{
		*makeCreator("a", 10000, 5.0),
		*makeCreator("b", 10000, 5.0),
		*makeCreator("c", 10000, 5.0),
	}
	scores := map[string]float64{"a": 80, "b": 75, "c": 70}

	req := &dto.OptimizationRequest{
		BrandID:     "b1",
		Budget:      100000,
		Constraints: dto.OptimizationConstraints{MaxInfluencers: 2},
	}
	result := optimizer.Solve(req, candidates, scores)
	assert.Len(t, result.Portfolio, 2)
}

func TestSolveDeterministic(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	candidates := []models.CreatorProfile{
		*makeCreator("a", 50000, 5.0),
		*makeCreator("b", 50000, 5.0), // та же цена и скор: побеждает порядок входа
		*makeCreator("c", 80000, 4.0),
	}
	scores := map[string]float64{"a": 70, "b": 70, "c": 65}

	req := &dto.OptimizationRequest{
		BrandID:     "b1",
		Budget:      10000,
		Constraints: dto.OptimizationConstraints{MaxInfluencers: 1},
	}

	first := optimizer.Solve(req, candidates, scores)
	second := optimizer.Solve(req, candidates, scores)

	assert.Equal(t, first, second)
	require.Len(t, first.Portfolio, 1)
	assert.Equal(t, "a", first.Portfolio[0].CreatorID)
}

func TestSolvePlatformCaps(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	candidates := []models.CreatorProfile{
		*makeCreator("a", 10000, 5.0),
		*makeCreator("b", 10000, 5.0),
	}
	scores := map[string]float64{"a": 90, "b": 85}

	req := &dto.OptimizationRequest{
		BrandID: "b1",
		Budget:  100000,
		Constraints: dto.OptimizationConstraints{
			PlatformCaps: map[string]int{"instagram": 1},
		},
	}
	result := optimizer.Solve(req, candidates, scores)

	require.Len(t, result.Portfolio, 1)
	assert.Equal(t, "a", result.Portfolio[0].CreatorID)
}

func TestSolveCategoryConstraintsTwoSided(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	fashion1 := makeCreator("f1", 10000, 5.0)
	fashion2 := makeCreator("f2", 10000, 5.0)
	gaming := makeCreator("g1", 10000, 5.0)
	gaming.Categories = []string{"gaming"}

	candidates := []models.CreatorProfile{*fashion1, *fashion2, *gaming}
	scores := map[string]float64{"f1": 90, "f2": 85, "g1": 60}

	req := &dto.OptimizationRequest{
		BrandID: "b1",
		Budget:  100000,
		Constraints: dto.OptimizationConstraints{
			CategoryMin: map[string]int{"gaming": 1},
			CategoryMax: map[string]int{"fashion": 1},
		},
	}
	result := optimizer.Solve(req, candidates, scores)

	counts := map[string]int{}
	for _, entry := range result.Portfolio {
		counts[entry.CreatorID]++
	}
	assert.Equal(t, 1, counts["g1"], "unmet gaming minimum must be satisfied")
	assert.LessOrEqual(t, counts["f1"]+counts["f2"], 1, "fashion maximum is 1")
}

func TestSolveAvailabilityFilter(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	available := makeCreator("a", 10000, 5.0)
	busy := makeCreator("b", 10000, 5.0)
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	busyFrom := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	busy.AvailableFrom = &busyFrom

	req := &dto.OptimizationRequest{
		BrandID: "b1",
		Budget:  100000,
		Constraints: dto.OptimizationConstraints{
			Availability: &dto.TimeWindow{
				Start: from,
				End:   from.AddDate(0, 0, 14),
			},
		},
	}
	result := optimizer.Solve(req, []models.CreatorProfile{*available, *busy}, map[string]float64{"a": 70, "b": 90})

	require.Len(t, result.Portfolio, 1)
	assert.Equal(t, "a", result.Portfolio[0].CreatorID)
}

func TestSolveRoleAssignment(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	candidates := []models.CreatorProfile{
		*makeCreator("a", 10000, 5.0),
		*makeCreator("b", 10000, 5.0),
		*makeCreator("c", 10000, 5.0),
	}
	scores := map[string]float64{"a": 90, "b": 75, "c": 50}

	req := &dto.OptimizationRequest{BrandID: "b1", Budget: 100000}
	result := optimizer.Solve(req, candidates, scores)
	require.Len(t, result.Portfolio, 3)

	assert.Equal(t, models.PortfolioRolePrimary, result.Portfolio[0].Role)
	assert.Equal(t, models.PortfolioRoleSupporting, result.Portfolio[1].Role)
	assert.Equal(t, models.PortfolioRoleAmplifier, result.Portfolio[2].Role)
}

func TestSolveInfeasibleMinimumIsSoftFailure(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	candidates := []models.CreatorProfile{*makeCreator("a", 100000, 5.0)}
	req := &dto.OptimizationRequest{
		BrandID:     "b1",
		Budget:      1000, // ни один кандидат не помещается
		Constraints: dto.OptimizationConstraints{MinInfluencers: 2},
	}
	result := optimizer.Solve(req, candidates, map[string]float64{"a": 90})

	assert.Empty(t, result.Portfolio)
	assert.NotEmpty(t, result.Recommendations, "shortfall must be flagged in recommendations")
}

func TestSolveGoalDrivenDeliverables(t *testing.T) {
	optimizer := NewPortfolioOptimizer(nil, nil)

	candidates := []models.CreatorProfile{*makeCreator("a", 10000, 5.0)}
	req := &dto.OptimizationRequest{
		BrandID: "b1",
		Budget:  100000,
		Goals: []dto.CampaignGoal{
			{Type: models.GoalAwareness, Priority: 1},
			{Type: models.GoalEngagement, Priority: 2},
		},
	}
	result := optimizer.Solve(req, candidates, map[string]float64{"a": 80})

	require.Len(t, result.Portfolio, 1)
	assert.Contains(t, result.Portfolio[0].Deliverables, "3 sponsored posts")
	assert.Contains(t, result.Portfolio[0].Deliverables, "5 interactive stories")
}
