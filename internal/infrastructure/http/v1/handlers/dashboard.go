package handlers

import (
	"github.com/gin-gonic/gin"

	"tillpoint/internal/domain/reports"
)

// DashboardHandler serves the dashboard summary.
type DashboardHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service *reports.Service) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: NewBaseHandler(),
		service:     service,
	}
}

// Summary handles GET /dashboard/summary.
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, summary)
}
