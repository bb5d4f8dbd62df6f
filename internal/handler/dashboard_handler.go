package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepzone/prepzone-backend/internal/response"
	"github.com/prepzone/prepzone-backend/internal/service"
)

// DashboardHandler serves the admin dashboard overview.
type DashboardHandler struct {
	dashService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashService: dashService}
}

// Overview godoc
// GET /api/v1/admin/dashboard
func (h *DashboardHandler) Overview(c *gin.Context) {
	overview, err := h.dashService.GetOverview(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, overview)
}
