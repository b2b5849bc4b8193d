package handlers

import (
	"net/http"

	"influmatch_backend/internal/middleware"
	"influmatch_backend/internal/services"
	"influmatch_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PortfolioHandler struct {
	*BaseHandler
	portfolioService services.PortfolioService
}

func NewPortfolioHandler(base *BaseHandler, portfolioService services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		BaseHandler:      base,
		portfolioService: portfolioService,
	}
}

func (h *PortfolioHandler) RegisterRoutes(r *gin.RouterGroup) {
	portfolio := r.Group("/portfolio")
	portfolio.Use(middleware.AuthMiddleware(), middleware.BrandContextMiddleware())
	{
		portfolio.POST("/optimize", h.OptimizePortfolio)
	}
}

func (h *PortfolioHandler) OptimizePortfolio(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.OptimizationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.portfolioService.OptimizePortfolio(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
