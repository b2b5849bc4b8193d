package services

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"influmatch_backend/internal/algorithms"
	"influmatch_backend/internal/cache"
	"influmatch_backend/internal/config"
	"influmatch_backend/internal/events"
	"influmatch_backend/internal/logger"
	"influmatch_backend/internal/models"
	"influmatch_backend/internal/repositories"
	"influmatch_backend/internal/services/dto"
	"influmatch_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Фиксированные веса гибридной смеси. Не конфигурируются per-request:
// настройке подлежат только семь rule-based весов.
const (
	collaborativeBlend = 0.3
	contentBlend       = 0.3
	ruleBlend          = 0.4
)

// scoreWorkers ограничивает фан-аут скоринга кандидатов
const scoreWorkers = 8

type MatchingService interface {
	// Core matching operations
	FindMatches(ctx context.Context, criteria *dto.MatchingCriteria) ([]*dto.MatchResult, error)
	GetMatch(ctx context.Context, brandID, creatorID string, criteria *dto.MatchingCriteria) (*dto.MatchResult, error)
	UpdateMatchScore(ctx context.Context, matchID string, feedback models.FeedbackType) error

	// Advanced matching
	FindSimilarCreators(ctx context.Context, creatorID string, limit int) ([]*dto.SimilarCreator, error)
	RecommendCreators(ctx context.Context, brandID string, limit int) ([]*dto.SimilarCreator, error)

	// Batch operations
	BatchMatch(ctx context.Context, brandIDs []string, criteria *dto.MatchingCriteria) (map[string][]*dto.MatchResult, error)

	// Matching configuration
	GetWeights() *dto.MatchingWeights
	UpdateWeights(ctx context.Context, weights *dto.MatchingWeights) error

	// Analytics and insights
	GetMatchingInsights(ctx context.Context, brandID string) (*dto.MatchingInsights, error)
	GetMatchingLogs(ctx context.Context, criteria dto.MatchingLogCriteria) ([]dto.MatchingLogEntry, int64, error)

	// Admin operations
	Retrain(ctx context.Context) error
}

type matchingService struct {
	profileRepo     repositories.ProfileRepository
	interactionRepo repositories.InteractionRepository
	logRepo         repositories.MatchingLogRepository
	cache           cache.Cache
	sink            events.Sink
	engine          *algorithms.ScoringEngine

	model   atomic.Pointer[algorithms.CollaborativeFilter]
	matcher atomic.Pointer[algorithms.ContentMatcher]

	weightsMu sync.RWMutex
	weights   dto.MatchingWeights

	cacheTTL      time.Duration
	defaultLimit  int
	minScore      float64
	similarBrands int
}

func NewMatchingService(
	profileRepo repositories.ProfileRepository,
	interactionRepo repositories.InteractionRepository,
	logRepo repositories.MatchingLogRepository,
	cacheLayer cache.Cache,
	sink events.Sink,
	cfg *config.Config,
) MatchingService {
	return &matchingService{
		profileRepo:     profileRepo,
		interactionRepo: interactionRepo,
		logRepo:         logRepo,
		cache:           cacheLayer,
		sink:            sink,
		engine:          algorithms.NewScoringEngine(nil),
		weights:         algorithms.DefaultWeights(),
		cacheTTL:        time.Duration(cfg.Matching.CacheTTLSeconds) * time.Second,
		defaultLimit:    cfg.Matching.DefaultLimit,
		minScore:        cfg.Matching.MinScore,
		similarBrands:   cfg.Matching.SimilarBrands,
	}
}

// -------------------------------
// Core matching operations
// -------------------------------

func (s *matchingService) FindMatches(ctx context.Context, criteria *dto.MatchingCriteria) ([]*dto.MatchResult, error) {
	started := time.Now()

	if err := validateCriteria(criteria); err != nil {
		return nil, err
	}

	cacheKey := matchesCacheKey(criteria)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		var results []*dto.MatchResult
		if err := json.Unmarshal([]byte(cached), &results); err == nil {
			return results, nil
		}
	}

	brand, err := s.profileRepo.FindBrandByID(criteria.BrandID)
	if err != nil {
		if errors.Is(err, repositories.ErrBrandNotFound) {
			return nil, apperrors.ErrBrandNotFound(err, criteria.BrandID)
		}
		return nil, apperrors.ErrDatabase(err, "matching")
	}

	candidates, err := s.profileRepo.ListCandidates(criteria)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "matching")
	}

	results := s.scoreCandidates(ctx, brand, candidates, criteria)
	results = s.rankAndTruncate(results, criteria)

	s.journalMatches(ctx, results)
	s.sink.Publish(events.New(events.EventMatchingCompleted, map[string]any{
		"brand_id":   criteria.BrandID,
		"candidates": len(candidates),
		"matched":    len(results),
	}))

	if payload, err := json.Marshal(results); err == nil {
		s.cache.Set(ctx, cacheKey, string(payload), s.cacheTTL)
	}

	logger.MatchLog(criteria.BrandID, len(candidates), len(results), time.Since(started))
	return results, nil
}

// GetMatch прогоняет тот же конвейер для единственной пары. Критерии
// опциональны: без них строятся из профиля бренда.
// Пустой результат - это ошибка ErrNoMatch, а не пустой список.
func (s *matchingService) GetMatch(ctx context.Context, brandID, creatorID string, criteria *dto.MatchingCriteria) (*dto.MatchResult, error) {
	brand, err := s.profileRepo.FindBrandByID(brandID)
	if err != nil {
		if errors.Is(err, repositories.ErrBrandNotFound) {
			return nil, apperrors.ErrBrandNotFound(err, brandID)
		}
		return nil, apperrors.ErrDatabase(err, "matching")
	}

	creator, err := s.profileRepo.FindCreatorByID(creatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrCreatorNotFound(err, creatorID)
		}
		return nil, apperrors.ErrDatabase(err, "matching")
	}
	if !creator.IsActive {
		return nil, apperrors.ErrNoMatch
	}

	if criteria == nil {
		criteria = criteriaFromBrand(brand)
	}
	criteria.BrandID = brandID
	results := s.scoreCandidates(ctx, brand, []models.CreatorProfile{*creator}, criteria)
	if len(results) == 0 {
		return nil, apperrors.ErrNoMatch
	}

	s.journalMatches(ctx, results)
	return results[0], nil
}

// UpdateMatchScore принимает фидбек по матчу, сдвигает активные веса
// и инвалидирует кэш бренда.
func (s *matchingService) UpdateMatchScore(ctx context.Context, matchID string, feedback models.FeedbackType) error {
	entry, err := s.logRepo.FindByID(matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchLogNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.ErrDatabase(err, "matching")
	}

	record := &models.MatchFeedback{
		ID:        uuid.New().String(),
		MatchID:   entry.ID,
		BrandID:   entry.BrandID,
		Feedback:  feedback,
		CreatedAt: time.Now(),
	}
	if err := s.interactionRepo.SaveFeedback(record); err != nil {
		return apperrors.ErrDatabase(err, "matching")
	}

	if feedback != models.FeedbackNeutral {
		var breakdown dto.ScoreBreakdown
		if err := json.Unmarshal(entry.Breakdown, &breakdown); err == nil {
			s.nudgeWeights(&breakdown, feedback)
		}
	}

	s.cache.InvalidatePattern(ctx, "matches:"+entry.BrandID+":*")
	s.sink.Publish(events.New(events.EventFeedbackReceived, map[string]any{
		"match_id": matchID,
		"brand_id": entry.BrandID,
		"feedback": string(feedback),
	}))
	return nil
}

// -------------------------------
// Advanced matching
// -------------------------------

func (s *matchingService) FindSimilarCreators(ctx context.Context, creatorID string, limit int) ([]*dto.SimilarCreator, error) {
	base, err := s.profileRepo.FindCreatorByID(creatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrCreatorNotFound(err, creatorID)
		}
		return nil, apperrors.ErrDatabase(err, "matching")
	}

	candidates, err := s.profileRepo.ListActiveCreators()
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "matching")
	}

	similar := make([]*dto.SimilarCreator, 0, len(candidates))
	for i := range candidates {
		candidate := &candidates[i]
		if candidate.ID == base.ID {
			continue
		}
		similarity := algorithms.CreatorSimilarity(base, candidate)
		if similarity == 0 {
			continue
		}
		similar = append(similar, &dto.SimilarCreator{
			CreatorID:        candidate.ID,
			Name:             candidate.Name,
			Similarity:       similarity,
			CommonCategories: intersect(base.Categories, candidate.Categories),
		})
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].Similarity > similar[j].Similarity
	})

	if limit <= 0 {
		limit = s.defaultLimit
	}
	if len(similar) > limit {
		similar = similar[:limit]
	}
	return similar, nil
}

// RecommendCreators отдает чистые CF-рекомендации без rule-based скоринга.
// До первой тренировки модели возвращает ErrModelNotTrained.
func (s *matchingService) RecommendCreators(ctx context.Context, brandID string, limit int) ([]*dto.SimilarCreator, error) {
	model := s.model.Load()
	if model == nil || model.Brands() == 0 {
		return nil, apperrors.ErrModelNotTrained
	}

	if limit <= 0 {
		limit = s.defaultLimit
	}
	scores := model.Recommend(brandID, s.similarBrands, limit)

	recommendations := make([]*dto.SimilarCreator, 0, len(scores))
	for _, cs := range scores {
		rec := &dto.SimilarCreator{
			CreatorID:  cs.CreatorID,
			Similarity: cs.Normalized,
		}
		if creator, err := s.profileRepo.FindCreatorByID(cs.CreatorID); err == nil {
			rec.Name = creator.Name
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, nil
}

// -------------------------------
// Batch operations
// -------------------------------

// BatchMatch выполняет матчинг для набора брендов. Ошибки по отдельным
// брендам не прерывают остальных - они логируются и бренд пропускается.
func (s *matchingService) BatchMatch(ctx context.Context, brandIDs []string, criteria *dto.MatchingCriteria) (map[string][]*dto.MatchResult, error) {
	results := make(map[string][]*dto.MatchResult, len(brandIDs))

	for _, brandID := range brandIDs {
		brandCriteria := dto.MatchingCriteria{}
		if criteria != nil {
			brandCriteria = *criteria
		}
		brandCriteria.BrandID = brandID

		matches, err := s.FindMatches(ctx, &brandCriteria)
		if err != nil {
			logger.CtxWarn(ctx, "батч-матчинг: бренд пропущен", "brand_id", brandID, "error", err.Error())
			continue
		}
		results[brandID] = matches
	}
	return results, nil
}

// -------------------------------
// Matching configuration
// -------------------------------

func (s *matchingService) GetWeights() *dto.MatchingWeights {
	s.weightsMu.RLock()
	defer s.weightsMu.RUnlock()
	weights := s.weights
	return &weights
}

// UpdateWeights заменяет активный набор весов. Сумма должна быть ~1.0
// (допуск 0.01), каждый вес в [0, 1].
func (s *matchingService) UpdateWeights(ctx context.Context, weights *dto.MatchingWeights) error {
	if weights == nil {
		return apperrors.ErrInvalidWeights("weights are required")
	}

	components := weightComponents(weights)
	sum := 0.0
	for _, w := range components {
		if w < 0 || w > 1 {
			return apperrors.ErrInvalidWeights("each weight must be within [0, 1]")
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 0.01 {
		return apperrors.ErrInvalidWeights("weights must sum to 1.0")
	}

	s.weightsMu.Lock()
	s.weights = *weights
	s.weightsMu.Unlock()

	s.cache.InvalidatePattern(ctx, "matches:*")
	logger.Info("веса скоринга обновлены", "sum", sum)
	return nil
}

// -------------------------------
// Analytics and insights
// -------------------------------

func (s *matchingService) GetMatchingInsights(ctx context.Context, brandID string) (*dto.MatchingInsights, error) {
	if _, err := s.profileRepo.FindBrandByID(brandID); err != nil {
		if errors.Is(err, repositories.ErrBrandNotFound) {
			return nil, apperrors.ErrBrandNotFound(err, brandID)
		}
		return nil, apperrors.ErrDatabase(err, "matching")
	}

	stats, err := s.logRepo.StatsByBrand(brandID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "matching")
	}

	positive, total, err := s.interactionRepo.CountFeedbackByBrand(brandID)
	if err != nil {
		return nil, apperrors.ErrDatabase(err, "matching")
	}

	insights := &dto.MatchingInsights{
		BrandID:           brandID,
		AverageMatchScore: stats.AverageScore,
	}
	if total > 0 {
		insights.SuccessRate = float64(positive) / float64(total)
	}

	topIDs, err := s.logRepo.TopCreatorsByBrand(brandID, 5)
	if err == nil {
		insights.TopCategories = s.topCategories(topIDs)
	}

	insights.Recommendations = buildInsightRecommendations(insights, stats.TotalMatches, total)
	return insights, nil
}

func (s *matchingService) GetMatchingLogs(ctx context.Context, criteria dto.MatchingLogCriteria) ([]dto.MatchingLogEntry, int64, error) {
	entries, total, err := s.logRepo.Search(criteria)
	if err != nil {
		return nil, 0, apperrors.ErrDatabase(err, "matching")
	}

	out := make([]dto.MatchingLogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.MatchingLogEntry{
			ID:         e.ID,
			BrandID:    e.BrandID,
			CreatorID:  e.CreatorID,
			Score:      e.Score,
			Confidence: e.Confidence,
			CreatedAt:  e.CreatedAt,
		})
	}
	return out, total, nil
}

// -------------------------------
// Admin operations
// -------------------------------

// Retrain перестраивает CF-модель и корпус контентного матчера.
// Готовые структуры подменяются атомарно, читатели не блокируются.
func (s *matchingService) Retrain(ctx context.Context) error {
	interactions, err := s.interactionRepo.LoadInteractions()
	if err != nil {
		return apperrors.ErrDatabase(err, "matching")
	}
	s.model.Store(algorithms.TrainCollaborativeFilter(interactions))

	creators, err := s.profileRepo.ListActiveCreators()
	if err != nil {
		return apperrors.ErrDatabase(err, "matching")
	}
	matcher := algorithms.NewContentMatcher()
	matcher.BuildProfiles(creators)
	s.matcher.Store(matcher)

	logger.CtxInfo(ctx, "модель перетренирована",
		"interactions", len(interactions),
		"creators", len(creators),
	)
	return nil
}

// -------------------------------
// Внутренняя кухня
// -------------------------------

func validateCriteria(criteria *dto.MatchingCriteria) error {
	if criteria == nil || criteria.BrandID == "" {
		return apperrors.ErrInvalidCriteria("brand_id is required")
	}
	if criteria.Campaign != nil && criteria.Campaign.Budget != nil {
		budget := criteria.Campaign.Budget
		if budget.Min < 0 || budget.Max < 0 {
			return apperrors.ErrInvalidCriteria("budget bounds must be non-negative")
		}
		if budget.Max > 0 && budget.Max < budget.Min {
			return apperrors.ErrInvalidCriteria("budget max cannot be below min")
		}
	}
	if criteria.Requirements.MaxFollowers > 0 &&
		criteria.Requirements.MaxFollowers < criteria.Requirements.MinFollowers {
		return apperrors.ErrInvalidCriteria("max_followers cannot be below min_followers")
	}
	return nil
}

// matchesCacheKey - детерминированный ключ мемоизации: бренд + хэш критериев
func matchesCacheKey(criteria *dto.MatchingCriteria) string {
	payload, _ := json.Marshal(criteria)
	digest := sha1.Sum(payload)
	return "matches:" + criteria.BrandID + ":" + hex.EncodeToString(digest[:])
}

// scoreCandidates считает гибридный счет для каждого кандидата.
// Фан-аут ограничен scoreWorkers горутинами, порядок кандидатов сохраняется.
func (s *matchingService) scoreCandidates(ctx context.Context, brand *models.BrandProfile, candidates []models.CreatorProfile, criteria *dto.MatchingCriteria) []*dto.MatchResult {
	if len(candidates) == 0 {
		return nil
	}

	scoringCriteria := *criteria
	if scoringCriteria.Weights == nil {
		scoringCriteria.Weights = s.GetWeights()
	}

	collab := s.collaborativeScores(criteria.BrandID)
	content := s.contentScores(&scoringCriteria, candidates)

	results := make([]*dto.MatchResult, len(candidates))
	var wg sync.WaitGroup
	sem := make(chan struct{}, scoreWorkers)

	for i := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = s.scoreOne(brand, &candidates[idx], &scoringCriteria, collab, content)
		}(i)
	}
	wg.Wait()

	return results
}

// collaborativeScores возвращает нормализованные CF-оценки брендовых
// предпочтений. Нетренированная модель дает пустую карту: кандидаты без
// CF-сигнала получают нейтральные 0.5.
func (s *matchingService) collaborativeScores(brandID string) map[string]float64 {
	model := s.model.Load()
	if model == nil {
		return nil
	}
	scores := make(map[string]float64)
	for _, cs := range model.Recommend(brandID, s.similarBrands, 0) {
		scores[cs.CreatorID] = cs.Normalized
	}
	return scores
}

func (s *matchingService) contentScores(criteria *dto.MatchingCriteria, candidates []models.CreatorProfile) map[string]float64 {
	matcher := s.matcher.Load()
	if matcher == nil {
		matcher = algorithms.NewContentMatcher()
		matcher.BuildProfiles(candidates)
	}
	scores := make(map[string]float64, len(candidates))
	for _, m := range matcher.Match(criteria, candidates) {
		scores[m.CreatorID] = m.Score
	}
	return scores
}

func (s *matchingService) scoreOne(brand *models.BrandProfile, creator *models.CreatorProfile, criteria *dto.MatchingCriteria, collab, content map[string]float64) *dto.MatchResult {
	breakdown := s.engine.Score(creator, criteria, brand)

	collabScore, ok := collab[creator.ID]
	if !ok {
		collabScore = 0.5 // нейтральный prior без CF-сигнала
	}
	contentScore := content[creator.ID]
	ruleScore := breakdown.Total / 100

	hybrid := (collaborativeBlend*collabScore + contentBlend*contentScore + ruleBlend*ruleScore) * 100
	confidence := signalConfidence(collabScore, contentScore, ruleScore)

	s.sink.Publish(events.New(events.EventScoreCalculated, map[string]any{
		"brand_id":   criteria.BrandID,
		"creator_id": creator.ID,
		"score":      hybrid,
	}))

	return &dto.MatchResult{
		MatchID:        uuid.New().String(),
		BrandID:        criteria.BrandID,
		CreatorID:      creator.ID,
		CreatorName:    creator.Name,
		Score:          hybrid,
		Confidence:     confidence,
		Breakdown:      breakdown,
		Recommendation: buildRecommendation(hybrid, breakdown),
		Analysis:       buildAnalysis(creator, breakdown),
	}
}

// signalConfidence - согласованность трех сигналов смеси:
// confidence = max(0, 1 - sqrt(variance))
func signalConfidence(signals ...float64) float64 {
	mean := 0.0
	for _, v := range signals {
		mean += v
	}
	mean /= float64(len(signals))

	variance := 0.0
	for _, v := range signals {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(signals))

	confidence := 1 - math.Sqrt(variance)
	if confidence < 0 {
		return 0
	}
	return confidence
}

func (s *matchingService) rankAndTruncate(results []*dto.MatchResult, criteria *dto.MatchingCriteria) []*dto.MatchResult {
	minScore := criteria.MinScore
	if minScore == 0 {
		minScore = s.minScore
	}

	filtered := make([]*dto.MatchResult, 0, len(results))
	for _, r := range results {
		if r != nil && r.Score >= minScore {
			filtered = append(filtered, r)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Score > filtered[j].Score
	})

	limit := criteria.Limit
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

// journalMatches пишет результаты в журнал best-effort: ошибка журнала
// не роняет выдачу матчей.
func (s *matchingService) journalMatches(ctx context.Context, results []*dto.MatchResult) {
	if len(results) == 0 {
		return
	}

	entries := make([]models.MatchingLog, 0, len(results))
	now := time.Now()
	for _, r := range results {
		breakdown, err := json.Marshal(r.Breakdown)
		if err != nil {
			continue
		}
		entries = append(entries, models.MatchingLog{
			ID:         r.MatchID,
			BrandID:    r.BrandID,
			CreatorID:  r.CreatorID,
			Score:      r.Score,
			Confidence: r.Confidence,
			Breakdown:  datatypes.JSON(breakdown),
			CreatedAt:  now,
		})
	}

	if err := s.logRepo.CreateBatch(entries); err != nil {
		logger.CtxWarn(ctx, "не удалось записать журнал матчей", "error", err.Error())
	}
}

// nudgeWeights сдвигает два сильнейших фактора матча на +/-0.01
// и перенормирует сумму к 1.0.
func (s *matchingService) nudgeWeights(breakdown *dto.ScoreBreakdown, feedback models.FeedbackType) {
	delta := 0.01
	if feedback == models.FeedbackNegative {
		delta = -0.01
	}

	type component struct {
		value  float64
		adjust func(w *dto.MatchingWeights)
	}
	components := []component{
		{breakdown.AudienceRelevance, func(w *dto.MatchingWeights) { w.AudienceRelevance += delta }},
		{breakdown.EngagementRate, func(w *dto.MatchingWeights) { w.EngagementRate += delta }},
		{breakdown.ContentQuality, func(w *dto.MatchingWeights) { w.ContentQuality += delta }},
		{breakdown.BrandAlignment, func(w *dto.MatchingWeights) { w.BrandAlignment += delta }},
		{breakdown.ReachPotential, func(w *dto.MatchingWeights) { w.ReachPotential += delta }},
		{breakdown.CostEfficiency, func(w *dto.MatchingWeights) { w.CostEfficiency += delta }},
		{breakdown.PastPerformance, func(w *dto.MatchingWeights) { w.PastPerformance += delta }},
	}
	sort.SliceStable(components, func(i, j int) bool {
		return components[i].value > components[j].value
	})

	s.weightsMu.Lock()
	defer s.weightsMu.Unlock()

	for i := 0; i < 2 && i < len(components); i++ {
		components[i].adjust(&s.weights)
	}

	// клампим и перенормируем
	values := weightComponents(&s.weights)
	sum := 0.0
	for i, v := range values {
		if v < 0 {
			values[i] = 0
			v = 0
		}
		sum += v
	}
	if sum > 0 {
		s.weights = dto.MatchingWeights{
			AudienceRelevance: values[0] / sum,
			EngagementRate:    values[1] / sum,
			ContentQuality:    values[2] / sum,
			BrandAlignment:    values[3] / sum,
			ReachPotential:    values[4] / sum,
			CostEfficiency:    values[5] / sum,
			PastPerformance:   values[6] / sum,
		}
	}
}

func weightComponents(w *dto.MatchingWeights) []float64 {
	return []float64{
		w.AudienceRelevance,
		w.EngagementRate,
		w.ContentQuality,
		w.BrandAlignment,
		w.ReachPotential,
		w.CostEfficiency,
		w.PastPerformance,
	}
}

func (s *matchingService) topCategories(creatorIDs []string) []string {
	counts := make(map[string]int)
	var order []string
	for _, id := range creatorIDs {
		creator, err := s.profileRepo.FindCreatorByID(id)
		if err != nil {
			continue
		}
		for _, category := range creator.Categories {
			if counts[category] == 0 {
				order = append(order, category)
			}
			counts[category]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 5 {
		order = order[:5]
	}
	return order
}

func buildInsightRecommendations(insights *dto.MatchingInsights, totalMatches, totalFeedback int64) []string {
	var recommendations []string
	if totalMatches == 0 {
		recommendations = append(recommendations, "No matching history yet: run findMatches to build up insights")
		return recommendations
	}
	if totalFeedback == 0 {
		recommendations = append(recommendations, "Provide feedback on matches to improve scoring weights")
	} else if insights.SuccessRate < 0.5 {
		recommendations = append(recommendations, "Low feedback success rate: consider adjusting campaign criteria")
	}
	if insights.AverageMatchScore < 60 {
		recommendations = append(recommendations, "Average match score is low: broaden hard requirements or categories")
	}
	return recommendations
}

// buildRecommendation - вердикт по гибридному счету
func buildRecommendation(score float64, breakdown *dto.ScoreBreakdown) *dto.MatchRecommendation {
	rec := &dto.MatchRecommendation{}

	switch {
	case score >= 85:
		rec.Status = models.RecommendationHighly
		rec.Reasons = append(rec.Reasons, "Strong alignment across audience, content and cost factors")
	case score >= 70:
		rec.Status = models.RecommendationRecommended
		rec.Reasons = append(rec.Reasons, "Good overall fit for the campaign")
	case score >= 50:
		rec.Status = models.RecommendationConsider
		rec.Reasons = append(rec.Reasons, "Partial fit: review the weak factors before engaging")
	default:
		rec.Status = models.RecommendationNotSuited
		rec.Reasons = append(rec.Reasons, "Weak overall fit for the campaign")
	}

	if breakdown.CostEfficiency <= 20 {
		rec.Risks = append(rec.Risks, "Estimated collaboration cost is outside the campaign budget")
	}
	if breakdown.EngagementRate <= 30 {
		rec.Risks = append(rec.Risks, "Audience engagement is below typical campaign thresholds")
	}
	if breakdown.ReachPotential >= 75 {
		rec.Opportunities = append(rec.Opportunities, "High reach potential within the target follower window")
	}
	if breakdown.BrandAlignment >= 80 {
		rec.Opportunities = append(rec.Opportunities, "Strong brand alignment, likely long-term partner")
	}
	return rec
}

// buildAnalysis - количественные прикидки по паре
func buildAnalysis(creator *models.CreatorProfile, breakdown *dto.ScoreBreakdown) *dto.MatchAnalysis {
	audience := creator.GetAudience()
	performance := creator.GetPerformance()

	reach := audience.TotalReach
	if reach == 0 {
		reach = creator.TotalFollowers()
	}

	roi := performance.AverageROI
	if roi == 0 {
		roi = 2.5
	}

	analysis := &dto.MatchAnalysis{
		AudienceOverlap:     breakdown.AudienceRelevance,
		EstimatedReach:      reach,
		EstimatedEngagement: float64(reach) * creator.AverageEngagementRate() / 100,
		EstimatedROI:        roi,
	}

	appendFactor := func(name string, score float64, description string) {
		analysis.Factors = append(analysis.Factors, dto.CompatibilityFactor{
			Name:        name,
			Score:       score,
			Impact:      impactOf(score),
			Description: description,
		})
		if score >= 75 {
			analysis.Strengths = append(analysis.Strengths, name)
		} else if score <= 40 {
			analysis.Weaknesses = append(analysis.Weaknesses, name)
		}
	}
	appendFactor("audience_relevance", breakdown.AudienceRelevance,
		"Overlap between the creator's audience and the campaign target")
	appendFactor("engagement_rate", breakdown.EngagementRate,
		"Average engagement across the creator's platforms")
	appendFactor("content_quality", breakdown.ContentQuality,
		"Quality, originality and brand safety of the creator's content")
	appendFactor("brand_alignment", breakdown.BrandAlignment,
		"Category and value overlap between brand and creator")
	appendFactor("reach_potential", breakdown.ReachPotential,
		"Creator reach relative to the campaign's follower window")
	appendFactor("cost_efficiency", breakdown.CostEfficiency,
		"Estimated collaboration cost against the campaign budget")
	appendFactor("past_performance", breakdown.PastPerformance,
		"Track record across the creator's completed campaigns")

	return analysis
}

// criteriaFromBrand строит критерии по умолчанию из профиля бренда
// (используется в getMatch, где явных критериев нет).
func criteriaFromBrand(brand *models.BrandProfile) *dto.MatchingCriteria {
	criteria := &dto.MatchingCriteria{
		BrandID: brand.ID,
		Preferences: dto.Preferences{
			Categories: brand.Categories,
			Platforms:  brand.RequiredPlatforms,
		},
	}
	if brand.BudgetMax > 0 {
		criteria.Campaign = &dto.CampaignContext{
			Budget: &dto.BudgetRange{Min: brand.BudgetMin, Max: brand.BudgetMax},
		}
	}
	return criteria
}

func intersect(a, b []string) []string {
	set := make(map[string]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	var common []string
	for _, v := range a {
		if set[v] {
			common = append(common, v)
		}
	}
	return common
}
