package handler

import (
	"encoding/json"
	"net/http"

	"github.com/brushworks/fieldops-api/internal/auth"
	"github.com/brushworks/fieldops-api/internal/domain"
	"github.com/brushworks/fieldops-api/internal/mapper"
	"github.com/brushworks/fieldops-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService *service.UserService
	logger      *zap.Logger
}

func NewAuthHandler(userService *service.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// Login godoc
// @Summary Sign in
// @Description Exchange username and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationError(w, err)
		return
	}

	resp, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to sign in")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Logout godoc
// @Summary Sign out
// @Description Tokens are stateless, so signing out is the client dropping its token; the endpoint exists so clients have an explicit call to make.
// @Tags Auth
// @Success 204 "No Content"
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if userCtx, ok := auth.FromContext(r.Context()); ok {
		h.logger.Info("user logged out",
			zap.String("user_id", userCtx.UserID.String()),
			zap.String("username", userCtx.Username),
		)
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me godoc
// @Summary Current user
// @Description Return the authenticated user's identity from the token
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.UserDTO
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	user, err := h.userService.GetByID(r.Context(), userCtx.UserID)
	if err != nil {
		respondServiceError(w, err, "Failed to load user")
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToUserDTO(user))
}
