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

type PersonnelHandler struct {
	personnelService *service.PersonnelService
	logger           *zap.Logger
}

func NewPersonnelHandler(personnelService *service.PersonnelService, logger *zap.Logger) *PersonnelHandler {
	return &PersonnelHandler{
		personnelService: personnelService,
		logger:           logger,
	}
}

// List godoc
// @Summary List personnel
// @Description Get the full roster, employees and subcontractors
// @Tags Personnel
// @Produce json
// @Success 200 {array} domain.PersonnelDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /personnel [get]
func (h *PersonnelHandler) List(w http.ResponseWriter, r *http.Request) {
	personnel, err := h.personnelService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list personnel", zap.Error(err))
		respondServiceError(w, err, "Failed to list personnel")
		return
	}

	dtos := make([]domain.PersonnelDTO, len(personnel))
	for i := range personnel {
		dtos[i] = mapper.ToPersonnelDTO(&personnel[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Add personnel
// @Tags Personnel
// @Accept json
// @Produce json
// @Param request body domain.CreatePersonnelRequest true "Roster details"
// @Success 201 {object} domain.PersonnelDTO
// @Failure 400 {object} domain.APIError
// @Security BearerAuth
// @Router /personnel [post]
func (h *PersonnelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreatePersonnelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	person, err := h.personnelService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create personnel")
		return
	}
	respondJSON(w, http.StatusCreated, mapper.ToPersonnelDTO(person))
}

// GetByID godoc
// @Summary Get personnel
// @Tags Personnel
// @Produce json
// @Param id path string true "Personnel ID"
// @Success 200 {object} domain.PersonnelDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /personnel/{id} [get]
func (h *PersonnelHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid personnel ID")
		return
	}

	person, err := h.personnelService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get personnel")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToPersonnelDTO(person))
}

// Update godoc
// @Summary Update personnel
// @Description Partially update roster details. Deactivating removes the person from availability counts.
// @Tags Personnel
// @Accept json
// @Produce json
// @Param id path string true "Personnel ID"
// @Param request body domain.UpdatePersonnelRequest true "Fields to update"
// @Success 200 {object} domain.PersonnelDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /personnel/{id} [put]
func (h *PersonnelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid personnel ID")
		return
	}

	var req domain.UpdatePersonnelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	person, err := h.personnelService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update personnel")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToPersonnelDTO(person))
}
