package dto

// ========================
// Compatibility DTOs
// ========================

// CompatibilityReport - многофакторный отчет по паре бренд/креатор.
// Считается независимо от гибридного скора: это материал для ручного
// due diligence, а не вход оптимизатора.
type CompatibilityReport struct {
	BrandID        string                `json:"brand_id"`
	CreatorID      string                `json:"creator_id"`
	OverallScore   float64               `json:"overall_score"` // 0-100, невзвешенное среднее факторов
	Factors        []CompatibilityFactor `json:"factors"`
	Recommendation string                `json:"recommendation"`
}

// Имена восьми факторов отчета. Порядок фиксирован - он же порядок в выдаче.
const (
	FactorValuesAlignment    = "values_alignment"
	FactorAudienceFit        = "audience_fit"
	FactorContentStyle       = "content_style"
	FactorGeographicCoverage = "geographic_coverage"
	FactorPastPerformance    = "past_performance"
	FactorPlatformCoverage   = "platform_coverage"
	FactorPricing            = "pricing_compatibility"
	FactorCommunicationStyle = "communication_style"
)
