package services

import (
	"context"
	"errors"
	"math"

	"influmatch_backend/internal/algorithms"
	"influmatch_backend/internal/models"
	"influmatch_backend/internal/repositories"
	"influmatch_backend/internal/services/dto"
	"influmatch_backend/pkg/apperrors"
)

type CompatibilityService interface {
	AnalyzeCompatibility(ctx context.Context, brandID, creatorID string) (*dto.CompatibilityReport, error)
}

type compatibilityService struct {
	profileRepo repositories.ProfileRepository
	cost        algorithms.CostEstimator
}

func NewCompatibilityService(profileRepo repositories.ProfileRepository) CompatibilityService {
	return &compatibilityService{
		profileRepo: profileRepo,
		cost:        algorithms.DefaultCostEstimator(),
	}
}

// AnalyzeCompatibility строит отчет по восьми факторам. Порядок факторов
// фиксирован, итог - невзвешенное среднее.
func (s *compatibilityService) AnalyzeCompatibility(ctx context.Context, brandID, creatorID string) (*dto.CompatibilityReport, error) {
	brand, err := s.profileRepo.FindBrandByID(brandID)
	if err != nil {
		if errors.Is(err, repositories.ErrBrandNotFound) {
			return nil, apperrors.ErrBrandNotFound(err, brandID)
		}
		return nil, apperrors.ErrDatabase(err, "compatibility")
	}

	creator, err := s.profileRepo.FindCreatorByID(creatorID)
	if err != nil {
		if errors.Is(err, repositories.ErrCreatorNotFound) {
			return nil, apperrors.ErrCreatorNotFound(err, creatorID)
		}
		return nil, apperrors.ErrDatabase(err, "compatibility")
	}

	factors := []dto.CompatibilityFactor{
		s.valuesAlignment(brand, creator),
		s.audienceFit(brand, creator),
		s.contentStyle(brand, creator),
		s.geographicCoverage(brand, creator),
		s.pastPerformance(brand, creator),
		s.platformCoverage(brand, creator),
		s.pricingCompatibility(brand, creator),
		s.communicationStyle(creator),
	}

	overall := 0.0
	for _, f := range factors {
		overall += f.Score
	}
	overall /= float64(len(factors))

	return &dto.CompatibilityReport{
		BrandID:        brandID,
		CreatorID:      creatorID,
		OverallScore:   overall,
		Factors:        factors,
		Recommendation: compatibilityVerdict(overall, factors),
	}, nil
}

// -------------------------------
// Факторы
// -------------------------------

func (s *compatibilityService) valuesAlignment(brand *models.BrandProfile, creator *models.CreatorProfile) dto.CompatibilityFactor {
	score := 50.0
	if len(brand.Values) > 0 {
		overlap := ratioOf(brand.Values, creator.GetAudience().Interests)
		score = 30 + 70*overlap
	}
	return factor(dto.FactorValuesAlignment, score,
		"Overlap between declared brand values and the creator's audience interests")
}

func (s *compatibilityService) audienceFit(brand *models.BrandProfile, creator *models.CreatorProfile) dto.CompatibilityFactor {
	target := brand.GetTargetAudience()
	audience := creator.GetAudience()

	var ratios []float64
	if len(target.AgeRanges) > 0 && len(audience.Demographics.AgeRanges) > 0 {
		hits := 0
		for _, ageRange := range target.AgeRanges {
			if audience.Demographics.AgeRanges[ageRange] > 0 {
				hits++
			}
		}
		ratios = append(ratios, float64(hits)/float64(len(target.AgeRanges)))
	}
	if len(target.Locations) > 0 {
		ratios = append(ratios, ratioOf(target.Locations, audience.Demographics.Locations))
	}
	if len(target.Interests) > 0 {
		ratios = append(ratios, ratioOf(target.Interests, audience.Interests))
	}

	score := 50.0
	if len(ratios) > 0 {
		score = 0
		for _, r := range ratios {
			score += r
		}
		score = score / float64(len(ratios)) * 100
	}
	return factor(dto.FactorAudienceFit, score,
		"Demographic and interest match between the brand's target audience and the creator's followers")
}

func (s *compatibilityService) contentStyle(brand *models.BrandProfile, creator *models.CreatorProfile) dto.CompatibilityFactor {
	content := creator.GetContent()
	score := content.QualityScore
	if len(brand.ContentStyle) > 0 {
		overlap := ratioOf(brand.ContentStyle, content.PrimaryCategories)
		score = 0.5*content.QualityScore + 50*overlap
	}
	return factor(dto.FactorContentStyle, score,
		"Creator content quality weighted by the brand's preferred content styles")
}

func (s *compatibilityService) geographicCoverage(brand *models.BrandProfile, creator *models.CreatorProfile) dto.CompatibilityFactor {
	score := 50.0
	if len(brand.TargetMarkets) > 0 {
		score = 100 * ratioOf(brand.TargetMarkets, creator.Locations)
	}
	return factor(dto.FactorGeographicCoverage, score,
		"Share of the brand's target markets covered by the creator's locations")
}

// pastPerformance - средний результат прошлых коллабораций в категориях
// бренда; без таких коллабораций откатываемся на общие метрики кампаний.
func (s *compatibilityService) pastPerformance(brand *models.BrandProfile, creator *models.CreatorProfile) dto.CompatibilityFactor {
	brandCategories := make(map[string]bool, len(brand.Categories))
	for _, category := range brand.Categories {
		brandCategories[category] = true
	}

	sum, relevant := 0.0, 0
	for _, collab := range creator.GetCollaborations() {
		if brandCategories[collab.Category] {
			sum += collab.Performance
			relevant++
		}
	}
	if relevant > 0 {
		return factor(dto.FactorPastPerformance, sum/float64(relevant),
			"Average performance across past collaborations in the brand's categories")
	}

	performance := creator.GetPerformance()
	score := 50.0
	if performance.CampaignsCompleted > 0 {
		// завершаемость и удовлетворенность клиентов, поровну
		score = 0.5*performance.CompletionRate + 0.5*performance.ClientSatisfaction
	}
	return factor(dto.FactorPastPerformance, score,
		"Completion rate and client satisfaction across past campaigns")
}

func (s *compatibilityService) platformCoverage(brand *models.BrandProfile, creator *models.CreatorProfile) dto.CompatibilityFactor {
	score := 100.0
	if len(brand.RequiredPlatforms) > 0 {
		covered := 0
		for _, platform := range brand.RequiredPlatforms {
			if creator.HasPlatform(platform) {
				covered++
			}
		}
		score = 100 * float64(covered) / float64(len(brand.RequiredPlatforms))
	}
	return factor(dto.FactorPlatformCoverage, score,
		"Share of the brand's required platforms where the creator is present")
}

// pricingCompatibility - треугольный профиль: 100 внутри бюджетной вилки,
// 80 ниже минимума (дешевле ожидаемого), линейный спад выше максимума.
func (s *compatibilityService) pricingCompatibility(brand *models.BrandProfile, creator *models.CreatorProfile) dto.CompatibilityFactor {
	cost := s.cost.EstimateCost(creator)

	score := 50.0
	if brand.BudgetMax > 0 {
		switch {
		case cost < brand.BudgetMin:
			score = 80
		case cost <= brand.BudgetMax:
			score = 100
		default:
			over := (cost - brand.BudgetMax) / brand.BudgetMax
			score = math.Max(0, 100-over*100)
		}
	}
	return factor(dto.FactorPricing, score,
		"Estimated collaboration cost against the brand's budget range")
}

func (s *compatibilityService) communicationStyle(creator *models.CreatorProfile) dto.CompatibilityFactor {
	content := creator.GetContent()
	// прокси: оригинальность и brand safety говорят о тоне коммуникации
	score := 0.5*content.OriginalityScore + 0.5*content.BrandSafetyScore
	if content.OriginalityScore == 0 && content.BrandSafetyScore == 0 {
		score = 50
	}
	return factor(dto.FactorCommunicationStyle, score,
		"Originality and brand safety as a proxy for communication tone")
}

// -------------------------------
// Helpers
// -------------------------------

func factor(name string, score float64, description string) dto.CompatibilityFactor {
	score = math.Max(0, math.Min(100, score))
	return dto.CompatibilityFactor{
		Name:        name,
		Score:       score,
		Impact:      impactOf(score),
		Description: description,
	}
}

// impactOf: >70 positive, <40 negative, иначе neutral
func impactOf(score float64) models.ImpactLevel {
	switch {
	case score > 70:
		return models.ImpactPositive
	case score < 40:
		return models.ImpactNegative
	default:
		return models.ImpactNeutral
	}
}

// compatibilityVerdict: высший вердикт требует не только среднего >= 80,
// но и отсутствия негативных факторов; ниже 50 - not recommended.
func compatibilityVerdict(overall float64, factors []dto.CompatibilityFactor) string {
	hasNegative := false
	for _, f := range factors {
		if f.Impact == models.ImpactNegative {
			hasNegative = true
			break
		}
	}

	switch {
	case overall >= 80 && !hasNegative:
		return "Excellent compatibility: highly recommended for a long-term collaboration"
	case overall >= 60:
		return "Good compatibility: suitable for campaign-level engagement"
	case overall >= 50:
		return "Moderate compatibility: review the negative factors before engaging"
	default:
		return "Poor compatibility: not recommended for this brand"
	}
}

// ratioOf - доля элементов a, встречающихся в b
func ratioOf(a []string, b []string) float64 {
	if len(a) == 0 {
		return 0
	}
	set := make(map[string]bool, len(b))
	for _, v := range b {
		set[v] = true
	}
	hits := 0
	for _, v := range a {
		if set[v] {
			hits++
		}
	}
	return float64(hits) / float64(len(a))
}
