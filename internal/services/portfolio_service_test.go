package services

import (
	"context"
	"testing"

	"influmatch_backend/internal/events"
	"influmatch_backend/internal/services/dto"
	"influmatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPortfolioFixture() (PortfolioService, *fakeProfileRepo) {
	profiles := newFakeProfileRepo()
	matching := NewMatchingService(profiles, &fakeInteractionRepo{}, newFakeLogRepo(), newMemoryCache(), events.NoopSink{}, testConfig())
	service := NewPortfolioService(profiles, matching, events.NoopSink{})
	return service, profiles
}

func TestOptimizePortfolioValidation(t *testing.T) {
	service, _ := newPortfolioFixture()
	ctx := context.Background()

	cases := []*dto.OptimizationRequest{
		nil,
		{Budget: 10000},              // нет бренда
		{BrandID: "b1"},              // нулевой бюджет
		{BrandID: "b1", Budget: -50}, // отрицательный бюджет
		{BrandID: "b1", Budget: 1000, Constraints: dto.OptimizationConstraints{MinInfluencers: 5, MaxInfluencers: 2}},
	}
	for _, req := range cases {
		_, err := service.OptimizePortfolio(ctx, req)
		require.Error(t, err)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeInvalidBudget, appErr.Code)
	}
}

func TestOptimizePortfolioBrandNotFound(t *testing.T) {
	service, _ := newPortfolioFixture()

	_, err := service.OptimizePortfolio(context.Background(), &dto.OptimizationRequest{
		BrandID: "missing",
		Budget:  50000,
	})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeBrandNotFound, appErr.Code)
}

func TestOptimizePortfolioBuildsPortfolioWithinBudget(t *testing.T) {
	service, profiles := newPortfolioFixture()
	ctx := context.Background()

	profiles.CreateBrandProfile(testBrand("b1"))
	profiles.CreateCreatorProfile(testCreator("c1", 100000, 5.0)) // cost 10000
	profiles.CreateCreatorProfile(testCreator("c2", 50000, 4.0))  // cost 5000
	profiles.CreateCreatorProfile(testCreator("c3", 200000, 6.0)) // cost 20000

	result, err := service.OptimizePortfolio(ctx, &dto.OptimizationRequest{
		BrandID: "b1",
		Budget:  30000,
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Portfolio)

	spend := 0.0
	for _, entry := range result.Portfolio {
		spend += entry.Allocation
		assert.NotEmpty(t, entry.Role)
		assert.GreaterOrEqual(t, entry.EstimatedImpact, 0.0)
	}
	assert.LessOrEqual(t, spend, 30000.0)
	assert.InDelta(t, spend/30000, result.BudgetUtilization, 1e-9)
	assert.Greater(t, result.EstimatedReach, int64(0))
}

// stubMatchingService подменяет выдачу матчинга фиксированным списком;
// остальные методы интерфейса не вызываются.
type stubMatchingService struct {
	MatchingService
	matches []*dto.MatchResult
}

func (s *stubMatchingService) FindMatches(ctx context.Context, criteria *dto.MatchingCriteria) ([]*dto.MatchResult, error) {
	return s.matches, nil
}

func TestOptimizePortfolioSkipsUnscoredCandidates(t *testing.T) {
	profiles := newFakeProfileRepo()
	profiles.CreateBrandProfile(testBrand("b1"))
	profiles.CreateCreatorProfile(testCreator("c1", 100000, 5.0)) // cost 10000
	profiles.CreateCreatorProfile(testCreator("c2", 50000, 4.0))  // cost 5000, матчинг его не вернул

	matching := &stubMatchingService{matches: []*dto.MatchResult{
		{BrandID: "b1", CreatorID: "c1", Score: 90},
	}}
	service := NewPortfolioService(profiles, matching, events.NoopSink{})

	// бюджета хватает на обоих, но кандидат без скора в портфель не попадает
	result, err := service.OptimizePortfolio(context.Background(), &dto.OptimizationRequest{
		BrandID: "b1",
		Budget:  30000,
	})
	require.NoError(t, err)
	require.Len(t, result.Portfolio, 1)
	assert.Equal(t, "c1", result.Portfolio[0].CreatorID)
}

func TestOptimizePortfolioSoftInfeasibility(t *testing.T) {
	service, profiles := newPortfolioFixture()
	ctx := context.Background()

	profiles.CreateBrandProfile(testBrand("b1"))
	profiles.CreateCreatorProfile(testCreator("c1", 500000, 5.0)) // cost 50000

	// бюджет меньше стоимости единственного кандидата: пустой портфель,
	// но не ошибка
	result, err := service.OptimizePortfolio(ctx, &dto.OptimizationRequest{
		BrandID: "b1",
		Budget:  1000,
		Constraints: dto.OptimizationConstraints{
			MinInfluencers: 1,
		},
	})
	require.NoError(t, err)
	assert.Empty(t, result.Portfolio)
	assert.NotEmpty(t, result.Recommendations)
}
