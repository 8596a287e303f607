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

type QuoteHandler struct {
	quoteService *service.QuoteService
	logger       *zap.Logger
}

func NewQuoteHandler(quoteService *service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// List godoc
// @Summary List quotes
// @Description Get all quotes, optionally filtered by project
// @Tags Quotes
// @Produce json
// @Param projectId query string false "Filter by project ID"
// @Success 200 {array} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes [get]
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	var projectID *uuid.UUID
	if p := r.URL.Query().Get("projectId"); p != "" {
		id, err := uuid.Parse(p)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid project ID")
			return
		}
		projectID = &id
	}

	quotes, err := h.quoteService.List(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list quotes", zap.Error(err))
		respondServiceError(w, err, "Failed to list quotes")
		return
	}

	dtos := make([]domain.QuoteDTO, len(quotes))
	for i := range quotes {
		dtos[i] = mapper.ToQuoteDTO(&quotes[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create quote
// @Description Create a quote for a project. The total is computed server-side from costs and margin; a submitted total is ignored.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param request body domain.CreateQuoteRequest true "Quote details"
// @Success 201 {object} domain.QuoteDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes [post]
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	quote, err := h.quoteService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create quote")
		return
	}
	respondJSON(w, http.StatusCreated, mapper.ToQuoteDTO(quote))
}

// GetByID godoc
// @Summary Get quote
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get quote")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToQuoteDTO(quote))
}

// Approve godoc
// @Summary Approve quote
// @Description Mark a quote approved and advance the project to quote_approved. Approving an already approved quote is a no-op.
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} domain.QuoteDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /quotes/{id}/approve [post]
func (h *QuoteHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.Approve(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to approve quote")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToQuoteDTO(quote))
}
