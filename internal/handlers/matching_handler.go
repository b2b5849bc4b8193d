package handlers

import (
	"net/http"

	"influmatch_backend/internal/middleware"
	"influmatch_backend/internal/models"
	"influmatch_backend/internal/services"
	"influmatch_backend/internal/services/dto"
	"influmatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type MatchingHandler struct {
	*BaseHandler
	matchingService      services.MatchingService
	compatibilityService services.CompatibilityService
}

func NewMatchingHandler(
	base *BaseHandler,
	matchingService services.MatchingService,
	compatibilityService services.CompatibilityService,
) *MatchingHandler {
	return &MatchingHandler{
		BaseHandler:          base,
		matchingService:      matchingService,
		compatibilityService: compatibilityService,
	}
}

func (h *MatchingHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Protected routes - all authenticated users
	matching := r.Group("/matching")
	matching.Use(middleware.AuthMiddleware(), middleware.BrandContextMiddleware())
	{
		matching.POST("/brands/:brandId/matches", h.FindMatches)
		matching.GET("/brands/:brandId/creators/:creatorId", h.GetMatch)
		matching.GET("/brands/:brandId/recommendations", h.RecommendCreators)
		matching.GET("/brands/:brandId/insights", h.GetMatchingInsights)
		matching.GET("/creators/:creatorId/similar", h.FindSimilarCreators)
		matching.GET("/compatibility", h.AnalyzeCompatibility)
		matching.POST("/matches/:matchId/feedback", h.UpdateMatchScore)
		matching.GET("/weights", h.GetWeights)
	}

	// Admin routes
	admin := r.Group("/admin/matching")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.PUT("/weights", h.UpdateWeights)
		admin.GET("/logs", h.GetMatchingLogs)
		admin.POST("/batch", h.BatchMatch)
		admin.POST("/retrain", h.Retrain)
	}
}

// --- Core matching handlers ---

func (h *MatchingHandler) FindMatches(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var criteria dto.MatchingCriteria
	if !h.BindAndValidate_JSON(c, &criteria) {
		return
	}
	criteria.BrandID = c.Param("brandId")

	matches, err := h.matchingService.FindMatches(c.Request.Context(), &criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"total":   len(matches),
	})
}

func (h *MatchingHandler) GetMatch(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	// критерии опциональны: без тела запроса сервис строит их из профиля бренда
	var criteria *dto.MatchingCriteria
	if c.Request.ContentLength > 0 {
		var body dto.MatchingCriteria
		if !h.BindAndValidate_JSON(c, &body) {
			return
		}
		criteria = &body
	}

	match, err := h.matchingService.GetMatch(c.Request.Context(), c.Param("brandId"), c.Param("creatorId"), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, match)
}

func (h *MatchingHandler) UpdateMatchScore(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	var req dto.FeedbackRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	err := h.matchingService.UpdateMatchScore(c.Request.Context(), c.Param("matchId"), req.Feedback)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "accepted"})
}

// --- Advanced matching handlers ---

func (h *MatchingHandler) FindSimilarCreators(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	similar, err := h.matchingService.FindSimilarCreators(c.Request.Context(), c.Param("creatorId"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"similar": similar,
		"total":   len(similar),
	})
}

func (h *MatchingHandler) RecommendCreators(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 10)
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	recommendations, err := h.matchingService.RecommendCreators(c.Request.Context(), c.Param("brandId"), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": recommendations,
		"total":           len(recommendations),
	})
}

func (h *MatchingHandler) AnalyzeCompatibility(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	brandID := c.Query("brand_id")
	creatorID := c.Query("creator_id")
	if brandID == "" || creatorID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("brand_id and creator_id query parameters are required"))
		return
	}

	report, err := h.compatibilityService.AnalyzeCompatibility(c.Request.Context(), brandID, creatorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *MatchingHandler) GetMatchingInsights(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	insights, err := h.matchingService.GetMatchingInsights(c.Request.Context(), c.Param("brandId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, insights)
}

func (h *MatchingHandler) GetWeights(c *gin.Context) {
	if _, ok := h.GetAndAuthorizeUserID(c); !ok {
		return
	}

	c.JSON(http.StatusOK, h.matchingService.GetWeights())
}

// --- Admin handlers ---

func (h *MatchingHandler) UpdateWeights(c *gin.Context) {
	var weights dto.MatchingWeights
	if !h.BindAndValidate_JSON(c, &weights) {
		return
	}

	if err := h.matchingService.UpdateWeights(c.Request.Context(), &weights); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (h *MatchingHandler) GetMatchingLogs(c *gin.Context) {
	var criteria dto.MatchingLogCriteria
	if !h.BindAndValidate_Query(c, &criteria) {
		return
	}
	criteria.Page, criteria.PageSize = ParsePagination(c)

	logs, total, err := h.matchingService.GetMatchingLogs(c.Request.Context(), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"total": total,
	})
}

type batchMatchRequest struct {
	BrandIDs []string              `json:"brand_ids" validate:"required,min=1"`
	Criteria *dto.MatchingCriteria `json:"criteria"`
}

func (h *MatchingHandler) BatchMatch(c *gin.Context) {
	var req batchMatchRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	results, err := h.matchingService.BatchMatch(c.Request.Context(), req.BrandIDs, req.Criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   len(results),
	})
}

func (h *MatchingHandler) Retrain(c *gin.Context) {
	if err := h.matchingService.Retrain(c.Request.Context()); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "retrained"})
}
