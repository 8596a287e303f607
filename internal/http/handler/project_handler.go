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

type ProjectHandler struct {
	projectService  *service.ProjectService
	activityService *service.ActivityService
	logger          *zap.Logger
}

func NewProjectHandler(projectService *service.ProjectService, activityService *service.ActivityService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{
		projectService:  projectService,
		activityService: activityService,
		logger:          logger,
	}
}

// List godoc
// @Summary List projects
// @Description Get all projects, optionally filtered by pipeline status
// @Tags Projects
// @Produce json
// @Param status query string false "Filter by status" Enums(pending_visit, quote_sent, quote_approved, in_preparation, in_progress, final_review, completed, archived)
// @Success 200 {array} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [get]
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	var status *domain.ProjectStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.ProjectStatus(s)
		status = &st
	}

	projects, err := h.projectService.List(r.Context(), status)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		respondServiceError(w, err, "Failed to list projects")
		return
	}

	dtos := make([]domain.ProjectDTO, len(projects))
	for i := range projects {
		dtos[i] = mapper.ToProjectDTO(&projects[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create project
// @Description Create a project. New projects always enter the pipeline at pending_visit.
// @Tags Projects
// @Accept json
// @Produce json
// @Param request body domain.CreateProjectRequest true "Project details"
// @Success 201 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects [post]
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create project")
		return
	}
	respondJSON(w, http.StatusCreated, mapper.ToProjectDTO(project))
}

// GetByID godoc
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} domain.ProjectDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *ProjectHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.projectService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get project")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToProjectDTO(project))
}

// Update godoc
// @Summary Update project
// @Description Partially update project fields. Status changes must go through the status endpoint.
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [put]
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update project")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToProjectDTO(project))
}

// UpdateStatus godoc
// @Summary Change pipeline status
// @Description Move a project to another pipeline stage and record the transition
// @Tags Projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param request body domain.UpdateProjectStatusRequest true "Target status"
// @Success 200 {object} domain.ProjectDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/status [patch]
func (h *ProjectHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	var req domain.UpdateProjectStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	project, err := h.projectService.UpdateStatus(r.Context(), id, domain.ProjectStatus(req.Status))
	if err != nil {
		respondServiceError(w, err, "Failed to update project status")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToProjectDTO(project))
}

// Delete godoc
// @Summary Delete project
// @Tags Projects
// @Param id path string true "Project ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := h.projectService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete project")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// GetActivities godoc
// @Summary Project activity history
// @Description Activity entries recorded against a project, newest first
// @Tags Projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {array} domain.ActivityDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /projects/{id}/activities [get]
func (h *ProjectHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid project ID")
		return
	}

	activities, err := h.activityService.ListByRelated(r.Context(), id, 50)
	if err != nil {
		respondServiceError(w, err, "Failed to list activities")
		return
	}

	dtos := make([]domain.ActivityDTO, len(activities))
	for i := range activities {
		dtos[i] = mapper.ToActivityDTO(&activities[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}
