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

type ServiceOrderHandler struct {
	orderService *service.ServiceOrderService
	logger       *zap.Logger
}

func NewServiceOrderHandler(orderService *service.ServiceOrderService, logger *zap.Logger) *ServiceOrderHandler {
	return &ServiceOrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// List godoc
// @Summary List service orders
// @Description Get all work orders, optionally filtered by project
// @Tags ServiceOrders
// @Produce json
// @Param projectId query string false "Filter by project ID"
// @Success 200 {array} domain.ServiceOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /service-orders [get]
func (h *ServiceOrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var projectID *uuid.UUID
	if p := r.URL.Query().Get("projectId"); p != "" {
		id, err := uuid.Parse(p)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid project ID")
			return
		}
		projectID = &id
	}

	orders, err := h.orderService.List(r.Context(), projectID)
	if err != nil {
		h.logger.Error("failed to list service orders", zap.Error(err))
		respondServiceError(w, err, "Failed to list service orders")
		return
	}

	dtos := make([]domain.ServiceOrderDTO, len(orders))
	for i := range orders {
		dtos[i] = mapper.ToServiceOrderDTO(&orders[i])
	}
	respondJSON(w, http.StatusOK, dtos)
}

// Create godoc
// @Summary Create service order
// @Description Create a work order for a project and move the project to in_preparation
// @Tags ServiceOrders
// @Accept json
// @Produce json
// @Param request body domain.CreateServiceOrderRequest true "Order details"
// @Success 201 {object} domain.ServiceOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /service-orders [post]
func (h *ServiceOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateServiceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create service order")
		return
	}
	respondJSON(w, http.StatusCreated, mapper.ToServiceOrderDTO(order))
}

// GetByID godoc
// @Summary Get service order
// @Tags ServiceOrders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.ServiceOrderDTO
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Router /service-orders/{id} [get]
func (h *ServiceOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to get service order")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToServiceOrderDTO(order))
}

// Update godoc
// @Summary Update service order
// @Description Update an order that has not started yet
// @Tags ServiceOrders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body domain.UpdateServiceOrderRequest true "Fields to update"
// @Success 200 {object} domain.ServiceOrderDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /service-orders/{id} [put]
func (h *ServiceOrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req domain.UpdateServiceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	order, err := h.orderService.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update service order")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToServiceOrderDTO(order))
}

// Start godoc
// @Summary Start work
// @Description Record the on-site start, capture the signature, and move the project to in_progress
// @Tags ServiceOrders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body domain.SignoffRequest true "Start signature"
// @Success 200 {object} domain.ServiceOrderDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /service-orders/{id}/start [post]
func (h *ServiceOrderHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req domain.SignoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.Start(r.Context(), id, req.Signature)
	if err != nil {
		respondServiceError(w, err, "Failed to start service order")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToServiceOrderDTO(order))
}

// Complete godoc
// @Summary Complete work
// @Description Record completion, capture the signature, and move the project to completed
// @Tags ServiceOrders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body domain.SignoffRequest true "Completion signature"
// @Success 200 {object} domain.ServiceOrderDTO
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /service-orders/{id}/complete [post]
func (h *ServiceOrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	var req domain.SignoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order, err := h.orderService.Complete(r.Context(), id, req.Signature)
	if err != nil {
		respondServiceError(w, err, "Failed to complete service order")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToServiceOrderDTO(order))
}

// Delete godoc
// @Summary Delete service order
// @Description Delete an order that has not started yet
// @Tags ServiceOrders
// @Param id path string true "Order ID"
// @Success 204 "No Content"
// @Failure 404 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /service-orders/{id} [delete]
func (h *ServiceOrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete service order")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
