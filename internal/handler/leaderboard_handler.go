package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prepzone/prepzone-backend/internal/response"
	"github.com/prepzone/prepzone-backend/internal/service"
)

// LeaderboardHandler serves rankings and category statistics.
type LeaderboardHandler struct {
	lbService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(lbService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{lbService: lbService}
}

// Global godoc
// GET /api/v1/leaderboard?limit=
func (h *LeaderboardHandler) Global(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	entries, err := h.lbService.GetGlobal(c.Request.Context(), limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leaderboard": entries})
}

// ByCategory godoc
// GET /api/v1/leaderboard/:category?limit=
func (h *LeaderboardHandler) ByCategory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	category := c.Param("category")

	entries, err := h.lbService.GetByCategory(c.Request.Context(), category, limit)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"category": category, "leaderboard": entries})
}

// CategoryStats godoc
// GET /api/v1/categories/:category/stats
func (h *LeaderboardHandler) CategoryStats(c *gin.Context) {
	category := c.Param("category")

	stats, err := h.lbService.GetCategoryStats(c.Request.Context(), category)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}
