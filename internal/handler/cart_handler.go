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

// CartHandler handles cart endpoints. Carts work for both authenticated
// users and guests; guests are correlated via the signed cart cookie.
type CartHandler struct {
	cartService service.CartService
	tokens      *auth.TokenManager
	logger      zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService, tokens *auth.TokenManager, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		tokens:      tokens,
		logger:      logger.With().Str("handler", "cart").Logger(),
	}
}

// resolveCart finds or creates the caller's cart and refreshes the guest
// cookie when a new guest cart was minted.
func (h *CartHandler) resolveCart(w http.ResponseWriter, r *http.Request) (*model.Cart, error) {
	var userID *uuid.UUID
	if identity, ok := auth.IdentityFrom(r.Context()); ok {
		userID = &identity.UserID
	}

	var sessionCartID *uuid.UUID
	if cartID, ok := h.tokens.CartID(r); ok {
		sessionCartID = &cartID
	}

	cart, err := h.cartService.ResolveCart(r.Context(), userID, sessionCartID)
	if err != nil {
		return nil, err
	}

	if userID == nil && (sessionCartID == nil || *sessionCartID != cart.ID) {
		if err := h.tokens.IssueCart(w, cart.ID); err != nil {
			return nil, err
		}
	}

	return cart, nil
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.resolveCart(w, r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	view, err := h.cartService.GetCart(r.Context(), cart.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.VariantID == uuid.Nil {
		writeError(w, model.NewValidationError("Variant ID is required", "variantId"), h.logger)
		return
	}

	cart, err := h.resolveCart(w, r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	view, err := h.cartService.AddItem(r.Context(), cart.ID, req.VariantID, req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// UpdateItem handles PATCH /api/cart/items/{id}.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewValidationError("Invalid cart item ID", "id"), h.logger)
		return
	}

	var req model.UpdateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}

	cart, err := h.resolveCart(w, r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	view, err := h.cartService.SetItemQuantity(r.Context(), cart.ID, itemID, req.Quantity)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, model.NewValidationError("Invalid cart item ID", "id"), h.logger)
		return
	}

	cart, err := h.resolveCart(w, r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	view, err := h.cartService.RemoveItem(r.Context(), cart.ID, itemID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// Clear handles POST /api/cart/clear (and DELETE /api/cart as an alias).
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	cart, err := h.resolveCart(w, r)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	view, err := h.cartService.Clear(r.Context(), cart.ID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
