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

type ClientHandler struct {
	clientService *service.ClientService
	logger        *zap.Logger
}

func NewClientHandler(clientService *service.ClientService, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{
		clientService: clientService,
		logger:        logger,
	}
}

// List godoc
// @Summary List clients
// @Description Get all clients and prospects
// @Tags Clients
// @Produce json
// @Success 200 {array} domain.ClientDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /clients [get]
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list clients", zap.Error(err))
		respondServiceError(w, err, "Failed to list clients")
		return
	}

	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = mapper.ToClientDTO(&clients[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}

// FollowUps godoc
// @Summary Prospects requiring follow-up
// @Description List prospects whose next follow-up date has passed
// @Tags Clients
// @Produce json
// @Success 200 {array} domain.ClientDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/follow-ups [get]
func (h *ClientHandler) FollowUps(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clientService.ListRequiringFollowUp(r.Context())
	if err != nil {
		h.logger.Error("failed to list follow-ups", zap.Error(err))
		respondServiceError(w, err, "Failed to list follow-ups")
		return
	}

	dtos := make([]domain.ClientDTO, len(clients))
	for i := range clients {
		dtos[i] = mapper.ToClientDTO(&clients[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create client
// @Description Create a client or prospect. Prospects get follow-up defaults when the dates are omitted.
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body domain.CreateClientRequest true "Client details"
// @Success 201 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /clients [post]
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create client")
		return
	}
	respondJSON(w, http.StatusCreated, mapper.ToClientDTO(client))
}

// GetByID godoc
// @Summary Get client
// @Description Get a client with its projects
// @Tags Clients
// @Produce json
// @Param id path string true "Client ID"
// @Success 200 {object} domain.ClientDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [get]
func (h *ClientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	client, err := h.clientService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get client")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToClientDTO(client))
}

// Update godoc
// @Summary Update client
// @Description Partially update a client. Turning off isProspect records a conversion.
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path string true "Client ID"
// @Param request body domain.UpdateClientRequest true "Fields to update"
// @Success 200 {object} domain.ClientDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	var req domain.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	client, err := h.clientService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update client")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToClientDTO(client))
}

// Delete godoc
// @Summary Delete client
// @Description Delete a client. Rejected while the client still has projects.
// @Tags Clients
// @Param id path string true "Client ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid client ID")
		return
	}

	if err := h.clientService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete client")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
