package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"urban-turban/internal/auth"
	"urban-turban/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func cartRouter(cartService *MockCartService, tokens *auth.TokenManager) chi.Router {
	logger := zerolog.Nop()
	h := NewCartHandler(cartService, tokens, logger)

	r := chi.NewRouter()
	r.Get("/api/cart", h.Get)
	r.Post("/api/cart/clear", h.Clear)
	r.Delete("/api/cart", h.Clear)
	r.Post("/api/cart/items", h.AddItem)
	r.Patch("/api/cart/items/{id}", h.UpdateItem)
	r.Delete("/api/cart/items/{id}", h.RemoveItem)
	return r
}

func TestCartHandler_Get_GuestGetsCookie(t *testing.T) {
	cart := &model.Cart{ID: uuid.New()}
	view := &model.CartView{ID: cart.ID, Items: []model.CartItemView{}, Total: decimal.Zero}

	mockCartService := new(MockCartService)
	mockCartService.On("ResolveCart", mock.Anything, (*uuid.UUID)(nil), (*uuid.UUID)(nil)).Return(cart, nil)
	mockCartService.On("GetCart", mock.Anything, cart.ID).Return(view, nil)

	tokens := newTokenManager(t)
	r := cartRouter(mockCartService, tokens)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var issued *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == auth.CartCookie {
			issued = c
		}
	}
	require.NotNil(t, issued, "guest should receive a cart cookie")
	assert.True(t, issued.HttpOnly)
}

func TestCartHandler_Get_ReturningGuestKeepsCart(t *testing.T) {
	cartID := uuid.New()
	cart := &model.Cart{ID: cartID}
	view := &model.CartView{ID: cartID, Items: []model.CartItemView{}, Total: decimal.Zero}

	tokens := newTokenManager(t)

	// Capture the cookie the first response issues.
	cookieRec := httptest.NewRecorder()
	require.NoError(t, tokens.IssueCart(cookieRec, cartID))
	cookie := cookieRec.Result().Cookies()[0]

	mockCartService := new(MockCartService)
	mockCartService.On("ResolveCart", mock.Anything, (*uuid.UUID)(nil), &cartID).Return(cart, nil)
	mockCartService.On("GetCart", mock.Anything, cartID).Return(view, nil)

	r := cartRouter(mockCartService, tokens)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// Same cart came back, so no new cookie is minted.
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, auth.CartCookie, c.Name)
	}
	mockCartService.AssertExpectations(t)
}

func TestCartHandler_AddItem(t *testing.T) {
	cart := &model.Cart{ID: uuid.New()}
	variantID := uuid.New()
	view := &model.CartView{
		ID: cart.ID,
		Items: []model.CartItemView{
			{
				CartItem: model.CartItem{
					ID:               uuid.New(),
					CartID:           cart.ID,
					ProductVariantID: variantID,
					Quantity:         2,
				},
				UnitPrice: decimal.NewFromFloat(799.00),
			},
		},
		Total: decimal.NewFromFloat(1598.00),
	}

	mockCartService := new(MockCartService)
	mockCartService.On("ResolveCart", mock.Anything, (*uuid.UUID)(nil), (*uuid.UUID)(nil)).Return(cart, nil)
	mockCartService.On("AddItem", mock.Anything, cart.ID, variantID, 2).Return(view, nil)

	r := cartRouter(mockCartService, newTokenManager(t))

	body, _ := json.Marshal(model.AddCartItemRequest{VariantID: variantID, Quantity: 2})
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.CartView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)
	mockCartService.AssertExpectations(t)
}

func TestCartHandler_AddItem_MissingVariant(t *testing.T) {
	mockCartService := new(MockCartService)

	r := cartRouter(mockCartService, newTokenManager(t))

	body, _ := json.Marshal(model.AddCartItemRequest{Quantity: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
	assert.Equal(t, "variantId", errResp.Field)
	mockCartService.AssertNotCalled(t, "AddItem")
}

func TestCartHandler_AddItem_InvalidBody(t *testing.T) {
	mockCartService := new(MockCartService)

	r := cartRouter(mockCartService, newTokenManager(t))

	req := httptest.NewRequest(http.MethodPost, "/api/cart/items", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	mockCartService.AssertNotCalled(t, "AddItem")
}

func TestCartHandler_UpdateItem_ZeroQuantity(t *testing.T) {
	cart := &model.Cart{ID: uuid.New()}
	itemID := uuid.New()
	view := &model.CartView{ID: cart.ID, Items: []model.CartItemView{}, Total: decimal.Zero}

	mockCartService := new(MockCartService)
	mockCartService.On("ResolveCart", mock.Anything, (*uuid.UUID)(nil), (*uuid.UUID)(nil)).Return(cart, nil)
	mockCartService.On("SetItemQuantity", mock.Anything, cart.ID, itemID, 0).Return(view, nil)

	r := cartRouter(mockCartService, newTokenManager(t))

	body, _ := json.Marshal(model.UpdateCartItemRequest{Quantity: 0})
	req := httptest.NewRequest(http.MethodPatch, "/api/cart/items/"+itemID.String(), bytes.NewReader(body))
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	mockCartService.AssertExpectations(t)
}

func TestCartHandler_Clear(t *testing.T) {
	cartID := uuid.New()
	cart := &model.Cart{ID: cartID}
	view := &model.CartView{ID: cartID, Items: []model.CartItemView{}, Total: decimal.Zero}

	tokens := newTokenManager(t)

	cookieRec := httptest.NewRecorder()
	require.NoError(t, tokens.IssueCart(cookieRec, cartID))
	cookie := cookieRec.Result().Cookies()[0]

	mockCartService := new(MockCartService)
	mockCartService.On("ResolveCart", mock.Anything, (*uuid.UUID)(nil), &cartID).Return(cart, nil)
	mockCartService.On("Clear", mock.Anything, cartID).Return(view, nil)

	r := cartRouter(mockCartService, tokens)

	req := httptest.NewRequest(http.MethodPost, "/api/cart/clear", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got model.CartView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Empty(t, got.Items)
	mockCartService.AssertExpectations(t)
}

func TestCartHandler_RemoveItem_MalformedID(t *testing.T) {
	mockCartService := new(MockCartService)

	r := cartRouter(mockCartService, newTokenManager(t))

	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/garbage", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	mockCartService.AssertNotCalled(t, "RemoveItem")
}
