package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	MatchingHandler  *MatchingHandler
	PortfolioHandler *PortfolioHandler
}
