package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart is the mutable pre-order container. UserID is nil for guest carts,
// which are correlated via the signed cart cookie instead.
type Cart struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    *uuid.UUID `json:"userId,omitempty" db:"user_id"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// CartItem is a single (variant, quantity) line. At most one line exists per
// (cart, variant) pair; adding an existing variant increments the quantity.
type CartItem struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CartID           uuid.UUID `json:"cartId" db:"cart_id"`
	ProductVariantID uuid.UUID `json:"variantId" db:"product_variant_id"`
	Quantity         int       `json:"quantity" db:"quantity"`
}

// CartItemView is a cart line joined with its variant and product snapshot.
// The cart never stores a price; UnitPrice is always the product's current
// list price at read time.
type CartItemView struct {
	CartItem
	Color           string          `json:"color"`
	SKU             string          `json:"sku"`
	StockQuantity   int             `json:"stockQuantity"`
	ProductID       uuid.UUID       `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductSlug     string          `json:"productSlug"`
	ProductIsActive bool            `json:"productIsActive"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	ProductImages   []string        `json:"productImages"`
}

// LineTotal is the line's contribution to the cart total.
func (v CartItemView) LineTotal() decimal.Decimal {
	return v.UnitPrice.Mul(decimal.NewFromInt(int64(v.Quantity)))
}

// CartView is the API shape for GET /api/cart.
type CartView struct {
	ID    uuid.UUID       `json:"id"`
	Items []CartItemView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartTotal sums the line totals over the given views.
func CartTotal(items []CartItemView) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal())
	}
	return total
}

// AddCartItemRequest is the payload for POST /api/cart/items.
type AddCartItemRequest struct {
	VariantID uuid.UUID `json:"variantId"`
	Quantity  int       `json:"quantity"`
}

// UpdateCartItemRequest is the payload for PATCH /api/cart/items/{id}.
// Quantity 0 removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}
