package handler

import (
	"net/http"

	"urban-turban/internal/auth"
	"urban-turban/internal/model"
	"urban-turban/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AdminHandler handles staff-only order management and user administration.
// The router guards order routes with the manage_orders action and user
// routes with manage_users.
type AdminHandler struct {
	orderService service.OrderService
	userService  service.UserService
	logger       zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(orderService service.OrderService, userService service.UserService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		orderService: orderService,
		userService:  userService,
		logger:       logger.With().Str("handler", "admin").Logger(),
	}
}

// ListOrders handles GET /api/admin/orders.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListAll(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus handles PATCH /api/admin/orders/{id}/status.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), orderID, req.Status, req.TrackingNumber)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListUsers handles GET /api/users.
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, users)
}

// CreateUser handles POST /api/users.
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	user, err := h.userService.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// DeleteUser handles DELETE /api/users/{id}.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized, h.logger)
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.ErrUserNotFound, h.logger)
		return
	}

	if err := h.userService.Delete(r.Context(), identity.UserID, targetID); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}
