package algorithms

import (
	"fmt"
	"sort"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services/dto"
)

// PortfolioOptimizer selects a subset of scored candidates under budget and
// diversity constraints via greedy value-density allocation - a classical
// approximation to budgeted knapsack with side constraints.
type PortfolioOptimizer struct {
	cost   CostEstimator
	impact ImpactEstimator
}

func NewPortfolioOptimizer(cost CostEstimator, impact ImpactEstimator) *PortfolioOptimizer {
	if cost == nil {
		cost = DefaultCostEstimator()
	}
	if impact == nil {
		impact = DefaultImpactEstimator()
	}
	return &PortfolioOptimizer{cost: cost, impact: impact}
}

type rankedCandidate struct {
	creator *models.CreatorProfile
	score   float64
	cost    float64
	value   float64 // score / cost
}

// Solve runs the greedy pass. An infeasible minimum creator count is NOT an
// error: the result simply comes back with a shorter portfolio and a
// recommendation flagging the shortfall.
func (o *PortfolioOptimizer) Solve(req *dto.OptimizationRequest, candidates []models.CreatorProfile, matchScores map[string]float64) *dto.OptimizationResult {
	constraints := req.Constraints

	// 1. Отсекаем кандидатов вне окна доступности
	pool := make([]*models.CreatorProfile, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		if constraints.Availability != nil && !c.IsAvailable(constraints.Availability.Start, constraints.Availability.End) {
			continue
		}
		pool = append(pool, c)
	}

	// 2. Считаем cost и value-density; кандидаты с нулевой ценой выбывают
	ranked := make([]rankedCandidate, 0, len(pool))
	for _, c := range pool {
		cost := o.cost.EstimateCost(c)
		if cost <= 0 {
			continue
		}
		score := matchScores[c.ID]
		ranked = append(ranked, rankedCandidate{
			creator: c,
			score:   score,
			cost:    cost,
			value:   score / cost,
		})
	}

	// 3. Стабильная сортировка по value: при равенстве сохраняем исходный
	// порядок кандидатов - выдача детерминирована
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].value > ranked[j].value
	})

	// 4. Жадный проход с проверкой ограничений
	remaining := req.Budget
	platformCounts := make(map[string]int)
	categoryCounts := make(map[string]int)

	var portfolio []dto.PortfolioEntry
	var totalScore, totalEngagement float64
	var totalReach int64
	var roiSum float64
	var roiCount int

	for _, candidate := range ranked {
		if candidate.cost > remaining {
			continue
		}
		if constraints.MaxInfluencers > 0 && len(portfolio) >= constraints.MaxInfluencers {
			break
		}
		if violatesPlatformCap(candidate.creator, platformCounts, constraints.PlatformCaps) {
			continue
		}
		if violatesCategoryMax(candidate.creator, categoryCounts, constraints.CategoryMax) {
			continue
		}
		if skipsUnmetCategoryMin(candidate.creator, categoryCounts, constraints.CategoryMin) {
			continue
		}

		remaining -= candidate.cost

		role := models.PortfolioRoleAmplifier
		switch {
		case len(portfolio) == 0 || candidate.score > 85:
			role = models.PortfolioRolePrimary
		case candidate.score > 70:
			role = models.PortfolioRoleSupporting
		}

		impact := o.impact.EstimateImpact(candidate.creator, candidate.score, req.Goals)

		portfolio = append(portfolio, dto.PortfolioEntry{
			CreatorID:       candidate.creator.ID,
			Allocation:      candidate.cost,
			Role:            role,
			Deliverables:    deliverablesFor(req.Goals),
			EstimatedImpact: impact,
		})

		for _, p := range candidate.creator.GetPlatforms() {
			platformCounts[p.Platform]++
		}
		for _, cat := range candidate.creator.Categories {
			categoryCounts[cat]++
		}

		totalScore += impact
		reach := candidate.creator.GetAudience().TotalReach
		if reach == 0 {
			reach = candidate.creator.TotalFollowers()
		}
		totalReach += reach
		totalEngagement += float64(reach) * candidate.creator.AverageEngagementRate() / 100.0

		if perf := candidate.creator.GetPerformance(); perf.CampaignsCompleted > 0 {
			roiSum += perf.AverageROI
			roiCount++
		}
	}

	estimatedROI := 2.5 // дефолт при отсутствии истории
	if roiCount > 0 {
		estimatedROI = roiSum / float64(roiCount)
	}

	spend := req.Budget - remaining
	utilization := 0.0
	if req.Budget > 0 {
		utilization = spend / req.Budget
	}

	return &dto.OptimizationResult{
		BrandID:             req.BrandID,
		Portfolio:           portfolio,
		TotalScore:          totalScore,
		EstimatedReach:      totalReach,
		EstimatedEngagement: totalEngagement,
		EstimatedROI:        estimatedROI,
		BudgetUtilization:   utilization,
		Recommendations:     buildRecommendations(portfolio, platformCounts, utilization, constraints),
	}
}

// violatesPlatformCap: adding the creator would push some platform past its cap.
func violatesPlatformCap(creator *models.CreatorProfile, counts map[string]int, caps map[string]int) bool {
	if len(caps) == 0 {
		return false
	}
	for _, p := range creator.GetPlatforms() {
		if cap, ok := caps[p.Platform]; ok && counts[p.Platform]+1 > cap {
			return true
		}
	}
	return false
}

// violatesCategoryMax: the two-sided upper bound on category representation.
func violatesCategoryMax(creator *models.CreatorProfile, counts map[string]int, maximums map[string]int) bool {
	if len(maximums) == 0 {
		return false
	}
	for _, cat := range creator.Categories {
		if max, ok := maximums[cat]; ok && counts[cat]+1 > max {
			return true
		}
	}
	return false
}

// skipsUnmetCategoryMin: while some category minimum is still unmet, only
// candidates contributing to an unmet minimum are admitted.
func skipsUnmetCategoryMin(creator *models.CreatorProfile, counts map[string]int, minimums map[string]int) bool {
	if len(minimums) == 0 {
		return false
	}

	anyUnmet := false
	for cat, min := range minimums {
		if counts[cat] < min {
			anyUnmet = true
			break
		}
	}
	if !anyUnmet {
		return false
	}

	for _, cat := range creator.Categories {
		if min, ok := minimums[cat]; ok && counts[cat] < min {
			return false // helps an unmet minimum
		}
	}
	return true
}

// deliverablesFor maps campaign goals onto concrete content commitments.
func deliverablesFor(goals []dto.CampaignGoal) []string {
	if len(goals) == 0 {
		return []string{"3 sponsored posts"}
	}

	var deliverables []string
	for _, goal := range goals {
		switch goal.Type {
		case models.GoalAwareness:
			deliverables = append(deliverables, "3 sponsored posts")
		case models.GoalEngagement:
			deliverables = append(deliverables, "5 interactive stories")
		case models.GoalConversions:
			deliverables = append(deliverables, "2 product reviews with tracking links")
		}
	}
	if len(deliverables) == 0 {
		deliverables = []string{"3 sponsored posts"}
	}
	return deliverables
}

func buildRecommendations(portfolio []dto.PortfolioEntry, platformCounts map[string]int, utilization float64, constraints dto.OptimizationConstraints) []string {
	var recommendations []string

	if constraints.MinInfluencers > 0 && len(portfolio) < constraints.MinInfluencers {
		recommendations = append(recommendations, fmt.Sprintf(
			"Selected %d creators, below the requested minimum of %d: raise the budget or relax requirements",
			len(portfolio), constraints.MinInfluencers))
	}

	if utilization < 0.8 {
		recommendations = append(recommendations, fmt.Sprintf(
			"Only %.0f%% of the budget is allocated: consider adding creators or increasing allocations", utilization*100))
	}

	if len(platformCounts) < 3 && len(portfolio) > 0 {
		recommendations = append(recommendations,
			"Portfolio covers fewer than 3 platforms: consider diversifying for broader reach")
	}

	return recommendations
}
