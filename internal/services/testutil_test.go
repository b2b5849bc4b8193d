package services

import (
	"context"
	"sync"
	"time"

	"influmatch_backend/internal/models"
	"influmatch_backend/internal/repositories"
	"influmatch_backend/internal/services/dto"

	"github.com/lib/pq"
)

// ------------------------------------------------------------------
// Фейковые репозитории для юнит-тестов сервисного слоя
// ------------------------------------------------------------------

type fakeProfileRepo struct {
	creators map[string]*models.CreatorProfile
	brands   map[string]*models.BrandProfile

	listCandidatesCalls int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		creators: make(map[string]*models.CreatorProfile),
		brands:   make(map[string]*models.BrandProfile),
	}
}

func (r *fakeProfileRepo) CreateCreatorProfile(profile *models.CreatorProfile) error {
	r.creators[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) FindCreatorByID(id string) (*models.CreatorProfile, error) {
	creator, ok := r.creators[id]
	if !ok {
		return nil, repositories.ErrCreatorNotFound
	}
	return creator, nil
}

func (r *fakeProfileRepo) UpdateCreatorProfile(profile *models.CreatorProfile) error {
	r.creators[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) DeactivateCreatorProfile(id string) error {
	creator, ok := r.creators[id]
	if !ok {
		return repositories.ErrCreatorNotFound
	}
	creator.IsActive = false
	return nil
}

func (r *fakeProfileRepo) ListActiveCreators() ([]models.CreatorProfile, error) {
	return r.activeCreators(), nil
}

func (r *fakeProfileRepo) ListCandidates(criteria *dto.MatchingCriteria) ([]models.CreatorProfile, error) {
	r.listCandidatesCalls++
	return r.activeCreators(), nil
}

func (r *fakeProfileRepo) FindCreatorsByCategory(category string) ([]models.CreatorProfile, error) {
	var out []models.CreatorProfile
	for _, c := range r.activeCreators() {
		for _, cat := range c.Categories {
			if cat == category {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) activeCreators() []models.CreatorProfile {
	ids := make([]string, 0, len(r.creators))
	for id := range r.creators {
		ids = append(ids, id)
	}
	// детерминированный порядок для стабильных тестов
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if ids[j] < ids[i] {
				ids[i], ids[j] = ids[j], ids[i]
			}
		}
	}
	var out []models.CreatorProfile
	for _, id := range ids {
		if r.creators[id].IsActive {
			out = append(out, *r.creators[id])
		}
	}
	return out
}

func (r *fakeProfileRepo) CreateBrandProfile(profile *models.BrandProfile) error {
	r.brands[profile.ID] = profile
	return nil
}

func (r *fakeProfileRepo) FindBrandByID(id string) (*models.BrandProfile, error) {
	brand, ok := r.brands[id]
	if !ok {
		return nil, repositories.ErrBrandNotFound
	}
	return brand, nil
}

func (r *fakeProfileRepo) UpdateBrandProfile(profile *models.BrandProfile) error {
	r.brands[profile.ID] = profile
	return nil
}

type fakeInteractionRepo struct {
	interactions []models.Interaction
	feedbacks    []models.MatchFeedback
}

func (r *fakeInteractionRepo) Create(interaction *models.Interaction) error {
	r.interactions = append(r.interactions, *interaction)
	return nil
}

func (r *fakeInteractionRepo) LoadInteractions() ([]models.Interaction, error) {
	return r.interactions, nil
}

func (r *fakeInteractionRepo) FindByBrand(brandID string) ([]models.Interaction, error) {
	var out []models.Interaction
	for _, i := range r.interactions {
		if i.BrandID == brandID {
			out = append(out, i)
		}
	}
	return out, nil
}

func (r *fakeInteractionRepo) SaveFeedback(feedback *models.MatchFeedback) error {
	r.feedbacks = append(r.feedbacks, *feedback)
	return nil
}

func (r *fakeInteractionRepo) CountFeedbackByBrand(brandID string) (int64, int64, error) {
	var positive, total int64
	for _, f := range r.feedbacks {
		if f.BrandID != brandID {
			continue
		}
		total++
		if f.Feedback == models.FeedbackPositive {
			positive++
		}
	}
	return positive, total, nil
}

type fakeLogRepo struct {
	entries map[string]*models.MatchingLog
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{entries: make(map[string]*models.MatchingLog)}
}

func (r *fakeLogRepo) Create(entry *models.MatchingLog) error {
	r.entries[entry.ID] = entry
	return nil
}

func (r *fakeLogRepo) CreateBatch(entries []models.MatchingLog) error {
	for i := range entries {
		entry := entries[i]
		r.entries[entry.ID] = &entry
	}
	return nil
}

func (r *fakeLogRepo) FindByID(id string) (*models.MatchingLog, error) {
	entry, ok := r.entries[id]
	if !ok {
		return nil, repositories.ErrMatchLogNotFound
	}
	return entry, nil
}

func (r *fakeLogRepo) Search(criteria dto.MatchingLogCriteria) ([]models.MatchingLog, int64, error) {
	var out []models.MatchingLog
	for _, e := range r.entries {
		if criteria.BrandID != "" && e.BrandID != criteria.BrandID {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeLogRepo) StatsByBrand(brandID string) (*repositories.BrandMatchStats, error) {
	stats := &repositories.BrandMatchStats{}
	sum := 0.0
	for _, e := range r.entries {
		if e.BrandID != brandID {
			continue
		}
		stats.TotalMatches++
		sum += e.Score
	}
	if stats.TotalMatches > 0 {
		stats.AverageScore = sum / float64(stats.TotalMatches)
	}
	return stats, nil
}

func (r *fakeLogRepo) TopCreatorsByBrand(brandID string, limit int) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, e := range r.entries {
		if e.BrandID != brandID || seen[e.CreatorID] {
			continue
		}
		seen[e.CreatorID] = true
		out = append(out, e.CreatorID)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// memoryCache - потокобезопасный кэш в памяти для проверки мемоизации
type memoryCache struct {
	mu          sync.Mutex
	data        map[string]string
	invalidated []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string]string)}
}

func (c *memoryCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *memoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *memoryCache) InvalidatePattern(ctx context.Context, pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, pattern)
	c.data = make(map[string]string)
}

func (c *memoryCache) Close() error { return nil }

// ------------------------------------------------------------------
// Фикстуры
// ------------------------------------------------------------------

func testCreator(id string, followers int64, engagementRate float64) *models.CreatorProfile {
	creator := &models.CreatorProfile{}
	creator.ID = id
	creator.Name = "creator-" + id
	creator.IsActive = true
	creator.Categories = pq.StringArray{"fashion", "lifestyle"}
	creator.Languages = pq.StringArray{"en"}
	creator.Locations = pq.StringArray{"US"}

	creator.SetPlatforms([]models.PlatformPresence{{
		Platform:       "instagram",
		Followers:      followers,
		EngagementRate: engagementRate,
		Verified:       true,
	}})
	creator.SetAudience(models.AudienceProfile{
		TotalReach: followers,
		Demographics: models.Demographics{
			AgeRanges: map[string]float64{"18-24": 0.4, "25-34": 0.4},
			Locations: []string{"US"},
		},
		Interests:         []string{"fashion", "beauty"},
		AuthenticityScore: 80,
		QualityScore:      75,
	})
	creator.SetContent(models.ContentProfile{
		PrimaryCategories: []string{"fashion"},
		QualityScore:      80,
		PostingFrequency:  1.5,
		OriginalityScore:  70,
		BrandSafetyScore:  90,
	})
	creator.SetPerformance(models.PerformanceHistory{
		CampaignsCompleted: 12,
		AverageROI:         3.2,
		CompletionRate:     95,
		ClientSatisfaction: 90,
		Specialties:        []string{"fashion"},
	})
	return creator
}

func testBrand(id string) *models.BrandProfile {
	brand := &models.BrandProfile{}
	brand.ID = id
	brand.Name = "brand-" + id
	brand.Industry = "fashion"
	brand.Values = pq.StringArray{"fashion", "sustainability"}
	brand.Categories = pq.StringArray{"fashion"}
	brand.TargetMarkets = pq.StringArray{"US"}
	brand.RequiredPlatforms = pq.StringArray{"instagram"}
	brand.ContentStyle = pq.StringArray{"fashion"}
	brand.BudgetMin = 1000
	brand.BudgetMax = 50000
	brand.SetTargetAudience(models.BrandTargetAudience{
		AgeRanges: []string{"18-24"},
		Locations: []string{"US"},
		Interests: []string{"fashion"},
	})
	return brand
}
