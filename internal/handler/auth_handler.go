package handler

import (
	"net/http"

	"urban-turban/internal/auth"
	"urban-turban/internal/model"
	"urban-turban/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AuthHandler handles registration, login and session endpoints.
type AuthHandler struct {
	authService service.AuthService
	tokens      *auth.TokenManager
	logger      zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, tokens *auth.TokenManager, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
		logger:      logger.With().Str("handler", "auth").Logger(),
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.tokens.IssueSession(w, user.ID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	var guestCartID *uuid.UUID
	if cartID, ok := h.tokens.CartID(r); ok {
		guestCartID = &cartID
	}

	user, err := h.authService.Login(r.Context(), &req, guestCartID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.tokens.IssueSession(w, user.ID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.tokens.ClearSession(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized, h.logger)
		return
	}

	user, err := h.authService.GetUser(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
