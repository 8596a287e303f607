package handler

import (
	"net/http"
	"strconv"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/mapper"
	"github.com/brushworks/fieldops-api/internal/service"
	"go.uber.org/zap"
)

type ActivityHandler struct {
	activityService *service.ActivityService
	logger          *zap.Logger
}

func NewActivityHandler(activityService *service.ActivityService, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		activityService: activityService,
		logger:          logger,
	}
}

// List godoc
// @Summary Recent activity
// @Description Newest audit trail entries. The limit is capped at 100.
// @Tags Activities
// @Produce json
// @Param limit query int false "Max entries" default(10)
// @Success 200 {array} domain.ActivityDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /activities [get]
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	activities, err := h.activityService.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list activities", zap.Error(err))
		respondServiceError(w, err, "Failed to list activities")
		return
	}

	dtos := make([]domain.ActivityDTO, len(activities))
	for i := range activities {
		dtos[i] = mapper.ToActivityDTO(&activities[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}
