package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"pending to processing", OrderStatusPending, OrderStatusProcessing, true},
		{"pending to paid", OrderStatusPending, OrderStatusPaid, true},
		{"pending to cancelled", OrderStatusPending, OrderStatusCancelled, true},
		{"pending to shipped", OrderStatusPending, OrderStatusShipped, false},
		{"pending to delivered", OrderStatusPending, OrderStatusDelivered, false},
		{"paid to processing", OrderStatusPaid, OrderStatusProcessing, true},
		{"paid to cancelled", OrderStatusPaid, OrderStatusCancelled, true},
		{"paid to shipped", OrderStatusPaid, OrderStatusShipped, false},
		{"paid to pending", OrderStatusPaid, OrderStatusPending, false},
		{"processing to shipped", OrderStatusProcessing, OrderStatusShipped, true},
		{"processing to cancelled", OrderStatusProcessing, OrderStatusCancelled, false},
		{"processing to delivered", OrderStatusProcessing, OrderStatusDelivered, false},
		{"shipped to delivered", OrderStatusShipped, OrderStatusDelivered, true},
		{"shipped to cancelled", OrderStatusShipped, OrderStatusCancelled, false},
		{"delivered is terminal", OrderStatusDelivered, OrderStatusCancelled, false},
		{"cancelled is terminal", OrderStatusCancelled, OrderStatusPending, false},
		{"no self transition", OrderStatusPending, OrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_Cancellable(t *testing.T) {
	assert.True(t, OrderStatusPending.Cancellable())
	assert.True(t, OrderStatusPaid.Cancellable())
	assert.False(t, OrderStatusProcessing.Cancellable())
	assert.False(t, OrderStatusShipped.Cancellable())
	assert.False(t, OrderStatusDelivered.Cancellable())
	assert.False(t, OrderStatusCancelled.Cancellable())
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusShipped.IsValid())
	assert.False(t, OrderStatus("refunded").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
