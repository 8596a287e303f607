package handler

import (
	"net/http"

	"github.com/brushworks/fieldops-api/internal/service"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetStats godoc
// @Summary Dashboard statistics
// @Description Aggregate view of the business: monthly profit, pipeline counts, personnel availability, recent activity, and prospects due for follow-up. Recomputed on every request.
// @Tags Dashboard
// @Produce json
// @Success 200 {object} domain.DashboardStats
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /dashboard [get]
func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardService.GetStats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute dashboard stats", zap.Error(err))
		respondServiceError(w, err, "Failed to compute dashboard statistics")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
