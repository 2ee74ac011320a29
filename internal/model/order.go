package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the order lifecycle state.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid reports whether s is a known status.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// orderTransitions is the full lifecycle graph. delivered and cancelled are
// terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped},
	OrderStatusShipped:    {OrderStatusDelivered},
}

// CanTransitionTo reports whether the lifecycle permits moving from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable reports whether an order in state s may still be cancelled.
// Once fulfillment starts (processing) cancellation is rejected.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusPending || s == OrderStatusPaid
}

// RefundStatus tracks the money side of a cancellation.
type RefundStatus string

const (
	RefundStatusNone       RefundStatus = "none"
	RefundStatusProcessing RefundStatus = "processing"
)

// PaymentStatus is the mock gateway outcome recorded on a Payment row.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
	PaymentStatusPending PaymentStatus = "pending"
)

// Order is created atomically from a non-empty cart. TotalAmount is captured
// at creation and immutable thereafter.
type Order struct {
	ID                 uuid.UUID       `json:"id" db:"id"`
	UserID             uuid.UUID       `json:"userId" db:"user_id"`
	Status             OrderStatus     `json:"status" db:"status"`
	TotalAmount        decimal.Decimal `json:"totalAmount" db:"total_amount"`
	PaymentProvider    string          `json:"paymentProvider" db:"payment_provider"`
	TrackingNumber     *string         `json:"trackingNumber,omitempty" db:"tracking_number"`
	CancellationReason *string         `json:"cancellationReason,omitempty" db:"cancellation_reason"`
	RefundStatus       *RefundStatus   `json:"refundStatus,omitempty" db:"refund_status"`
	CreatedAt          time.Time       `json:"createdAt" db:"created_at"`
}

// OrderItem is a permanent line item. PriceAtPurchase is the product price
// snapshot taken at order time; later price changes never touch it.
type OrderItem struct {
	ID               uuid.UUID       `json:"id" db:"id"`
	OrderID          uuid.UUID       `json:"orderId" db:"order_id"`
	ProductVariantID uuid.UUID       `json:"variantId" db:"product_variant_id"`
	Quantity         int             `json:"quantity" db:"quantity"`
	PriceAtPurchase  decimal.Decimal `json:"priceAtPurchase" db:"price_at_purchase"`
}

// OrderItemView is an order line joined with variant and product detail for
// display.
type OrderItemView struct {
	OrderItem
	Color       string    `json:"color"`
	SKU         string    `json:"sku"`
	ProductID   uuid.UUID `json:"productId"`
	ProductName string    `json:"productName"`
	ProductSlug string    `json:"productSlug"`
}

// Payment records the mock gateway result for prepaid providers. COD orders
// have no payment row.
type Payment struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	OrderID    uuid.UUID     `json:"orderId" db:"order_id"`
	Provider   string        `json:"provider" db:"provider"`
	Status     PaymentStatus `json:"status" db:"status"`
	ExternalID *string       `json:"externalId,omitempty" db:"external_id"`
	CreatedAt  time.Time     `json:"createdAt" db:"created_at"`
}

// OrderDetail is the API shape for a single order with its lines.
type OrderDetail struct {
	Order
	Items []OrderItemView `json:"items"`
}

// CreateOrderRequest is the payload for POST /api/orders.
type CreateOrderRequest struct {
	PaymentProvider string `json:"paymentProvider"`
}

// CancelOrderRequest is the payload for POST /api/orders/{id}/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// UpdateOrderStatusRequest is the admin payload for
// PATCH /api/admin/orders/{id}/status.
type UpdateOrderStatusRequest struct {
	Status         OrderStatus `json:"status"`
	TrackingNumber *string     `json:"trackingNumber,omitempty"`
}
