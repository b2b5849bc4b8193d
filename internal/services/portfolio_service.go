package services

import (
	"context"
	"errors"

	"influmatch_backend/internal/algorithms"
	"influmatch_backend/internal/events"
	"influmatch_backend/internal/logger"
	"influmatch_backend/internal/models"
	"influmatch_backend/internal/repositories"
	"influmatch_backend/internal/services/dto"
	"influmatch_backend/pkg/apperrors"
)

type PortfolioService interface {
	OptimizePortfolio(ctx context.Context, req *dto.OptimizationRequest) (*dto.OptimizationResult, error)
}

type portfolioService struct {
	profileRepo repositories.ProfileRepository
	matching    MatchingService
	optimizer   *algorithms.PortfolioOptimizer
	sink        events.Sink
}

func NewPortfolioService(
	profileRepo repositories.ProfileRepository,
	matching MatchingService,
	sink events.Sink,
) PortfolioService {
	return &portfolioService{
		profileRepo: profileRepo,
		matching:    matching,
		optimizer: algorithms.NewPortfolioOptimizer(
			algorithms.DefaultCostEstimator(),
			algorithms.DefaultImpactEstimator(),
		),
		sink: sink,
	}
}

// OptimizePortfolio подбирает портфель жадным отбором по value density.
// Невыполнимые ограничения дают урезанный портфель с рекомендациями,
// а не ошибку.
func (s *portfolioService) OptimizePortfolio(ctx context.Context, req *dto.OptimizationRequest) (*dto.OptimizationResult, error) {
	if req == nil || req.BrandID == "" {
		return nil, apperrors.ErrInvalidBudget("brand_id is required")
	}
	if req.Budget <= 0 {
		return nil, apperrors.ErrInvalidBudget("budget must be positive")
	}
	if req.Constraints.MaxInfluencers > 0 && req.Constraints.MinInfluencers > req.Constraints.MaxInfluencers {
		return nil, apperrors.ErrInvalidBudget("min_influencers cannot exceed max_influencers")
	}

	brand, err := s.profileRepo.FindBrandByID(req.BrandID)
	if err != nil {
		if errors.Is(err, repositories.ErrBrandNotFound) {
			return nil, apperrors.ErrBrandNotFound(err, req.BrandID)
		}
		return nil, apperrors.ErrDatabase(err, "portfolio")
	}

	// гибридные скоры кандидатов — вход оптимизатора
	criteria := criteriaFromBrand(brand)
	criteria.Limit = 100
	criteria.MinScore = 1 // отбрасываем только нулевые
	if len(req.Goals) > 0 {
		if criteria.Campaign == nil {
			criteria.Campaign = &dto.CampaignContext{}
		}
		criteria.Campaign.Goals = req.Goals
	}

	matches, err := s.matching.FindMatches(ctx, criteria)
	if err != nil {
		return nil, err
	}

	matchScores := make(map[string]float64, len(matches))
	for _, m := range matches {
		matchScores[m.CreatorID] = m.Score
	}

	candidates, err := s.profileRepo.ListCandidates(criteria)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "portfolio")
	}

	// в оптимизатор попадают только кандидаты, прошедшие матчинг:
	// кандидат без гибридного скора имеет нулевую value density
	pool := make([]models.CreatorProfile, 0, len(candidates))
	for i := range candidates {
		if _, scored := matchScores[candidates[i].ID]; scored {
			pool = append(pool, candidates[i])
		}
	}

	result := s.optimizer.Solve(req, pool, matchScores)

	s.sink.Publish(events.New(events.EventPortfolioOptimized, map[string]any{
		"brand_id":    req.BrandID,
		"portfolio":   len(result.Portfolio),
		"utilization": result.BudgetUtilization,
	}))
	logger.CtxInfo(ctx, "портфель собран",
		"brand_id", req.BrandID,
		"creators", len(result.Portfolio),
		"utilization", result.BudgetUtilization,
	)
	return result, nil
}
