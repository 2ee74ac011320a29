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

// OrderHandler handles customer order endpoints. All of them require a
// session; the identity middleware guarantees one is present.
type OrderHandler struct {
	orderService service.OrderService
	cartService  service.CartService
	logger       zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService, cartService service.CartService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		cartService:  cartService,
		logger:       logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders: checkout of the caller's current cart.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized, h.logger)
		return
	}

	var req model.CreateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.cartService.ResolveCart(r.Context(), &identity.UserID, nil)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	order, err := h.orderService.Create(r.Context(), identity.UserID, cart.ID, req.PaymentProvider)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized, h.logger)
		return
	}

	orders, err := h.orderService.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized, h.logger)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	order, err := h.orderService.Get(r.Context(), identity.UserID, orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Cancel handles POST /api/orders/{id}/cancel.
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFrom(r.Context())
	if !ok {
		writeError(w, model.ErrUnauthorized, h.logger)
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.ErrOrderNotFound, h.logger)
		return
	}

	// An empty or absent body means no reason was given.
	var req model.CancelOrderRequest
	_ = decodeJSON(r, &req)

	order, err := h.orderService.Cancel(r.Context(), identity.UserID, orderID, req.Reason)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
