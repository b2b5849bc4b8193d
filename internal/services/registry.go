package services

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	MatchingService      MatchingService
	CompatibilityService CompatibilityService
	PortfolioService     PortfolioService
}
