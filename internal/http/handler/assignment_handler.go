package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/mapper"
	"github.com/brushworks/fieldops-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
	logger            *zap.Logger
}

func NewAssignmentHandler(assignmentService *service.AssignmentService, logger *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

// ListByProject godoc
// @Summary List project assignments
// @Tags Assignments
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/assignments [get]
func (h *AssignmentHandler) ListByProject(w http.ResponseWriter, r *http.Request) {
	projectID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	assignments, err := h.assignmentService.ListByProject(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list assignments", zap.Error(err))
		respondServiceError(w, err, "Failed to list assignments")
		return
	}

	dtos := make([]domain.AssignmentDTO, len(assignments))
	for i := range assignments {
		dtos[i] = mapper.ToAssignmentDTO(&assignments[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Assign personnel
// @Description Assign a person to a project. Omitting endDate leaves the assignment open-ended, marking the person occupied.
// @Tags Assignments
// @Accept json
// @Produce json
// @Param request body domain.CreateAssignmentRequest true "Assignment details"
// @Success 201 {object} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /assignments [post]
func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	assignment, err := h.assignmentService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create assignment")
		return
	}
	respondJSON(w, http.StatusCreated, mapper.ToAssignmentDTO(assignment))
}

// Update godoc
// @Summary Update assignment
// @Description Reschedule or close an assignment. Setting endDate frees the person.
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param request body domain.UpdateAssignmentRequest true "Fields to update"
// @Success 200 {object} domain.AssignmentDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /assignments/{id} [put]
func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	var req domain.UpdateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	assignment, err := h.assignmentService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update assignment")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToAssignmentDTO(assignment))
}

// Delete godoc
// @Summary Remove assignment
// @Tags Assignments
// @Param id path string true "Assignment ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /assignments/{id} [delete]
func (h *AssignmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid assignment ID")
		return
	}

	if err := h.assignmentService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete assignment")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
