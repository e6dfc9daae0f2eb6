package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garudacbt/cbt-backend/internal/response"
	"github.com/garudacbt/cbt-backend/internal/service"
)

// DashboardHandler handles the admin panel landing data.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetSummary godoc
// GET /api/v1/admin/dashboard
// Returns collection totals and the average score per subject.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	summary, err := h.dashboardService.GetSummary(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, summary)
}
