package service

import (
	"context"
	"fmt"
	"time"

	"urban-turban/internal/metrics"
	"urban-turban/internal/model"
	"urban-turban/internal/notify"
	"urban-turban/internal/payment"
	"urban-turban/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultCancellationReason = "Cancelled by customer"

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	userRepo  repository.UserRepository
	notifier  notify.Notifier
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	userRepo repository.UserRepository,
	notifier notify.Notifier,
	m *metrics.Metrics,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		metrics:   m,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// Create converts the cart into an order in one transaction: the cart row is
// locked, lines are read and priced, the order, its items and any payment
// record are inserted, and the cart is emptied. Concurrent checkouts of the
// same cart serialize on the cart lock, so the loser finds an empty cart.
func (s *orderService) Create(ctx context.Context, userID, cartID uuid.UUID, paymentProvider string) (*model.OrderDetail, error) {
	outcome, err := payment.Resolve(paymentProvider)
	if err != nil {
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	items, err := s.cartRepo.LockItemViews(ctx, tx, cartID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		err = model.ErrCartEmpty
		return nil, err
	}
	for _, it := range items {
		if !it.ProductIsActive {
			err = model.NewValidationError(
				fmt.Sprintf("Product %q is no longer available", it.ProductName), "")
			return nil, err
		}
	}

	order := &model.Order{
		ID:              uuid.New(),
		UserID:          userID,
		Status:          outcome.OrderStatus,
		TotalAmount:     model.CartTotal(items),
		PaymentProvider: paymentProvider,
		CreatedAt:       time.Now(),
	}
	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		err = fmt.Errorf("failed to create order: %w", err)
		return nil, err
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, model.OrderItem{
			ID:               uuid.New(),
			OrderID:          order.ID,
			ProductVariantID: it.ProductVariantID,
			Quantity:         it.Quantity,
			PriceAtPurchase:  it.UnitPrice,
		})
	}
	if err = s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
		err = fmt.Errorf("failed to create order items: %w", err)
		return nil, err
	}

	if outcome.RecordPayment {
		ref := outcome.NewExternalID()
		pay := &model.Payment{
			ID:         uuid.New(),
			OrderID:    order.ID,
			Provider:   paymentProvider,
			Status:     outcome.PaymentStatus,
			ExternalID: &ref,
			CreatedAt:  time.Now(),
		}
		if err = s.orderRepo.CreatePayment(ctx, tx, pay); err != nil {
			err = fmt.Errorf("failed to create payment: %w", err)
			return nil, err
		}
	}

	if err = s.cartRepo.ClearTx(ctx, tx, cartID); err != nil {
		err = fmt.Errorf("failed to clear cart: %w", err)
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = fmt.Errorf("failed to commit transaction: %w", err)
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Str("provider", paymentProvider).
		Str("total", order.TotalAmount.StringFixed(2)).
		Msg("order created")
	s.metrics.ObserveOrderCreated(paymentProvider)

	s.notifyConfirmed(ctx, userID, order)

	return s.detail(ctx, order)
}

// notifyConfirmed sends the post-commit confirmation. Failures here never
// affect the already-committed order.
func (s *orderService) notifyConfirmed(ctx context.Context, userID uuid.UUID, order *model.Order) {
	if s.notifier == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil || user == nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("skipping order confirmation")
		return
	}
	s.notifier.OrderConfirmed(ctx, user, order)
}

// List returns the user's orders with their lines, newest first.
func (s *orderService) List(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return s.details(ctx, orders)
}

// Get returns one order owned by the user. Another user's order reports
// NotFound rather than Forbidden so order IDs are not probeable.
func (s *orderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*model.OrderDetail, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.UserID != userID {
		return nil, model.ErrOrderNotFound
	}
	return s.detail(ctx, order)
}

// Cancel cancels an owned order still in a cancellable state. A paid order
// gets its refund marked as processing; a pending one records "none" since no
// money moved.
func (s *orderService) Cancel(ctx context.Context, userID, orderID uuid.UUID, reason string) (*model.OrderDetail, error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetForUpdate(ctx, tx, orderID)
	if err != nil {
		err = fmt.Errorf("failed to get order: %w", err)
		return nil, err
	}
	if order == nil || order.UserID != userID {
		err = model.ErrOrderNotFound
		return nil, err
	}
	if !order.Status.Cancellable() {
		err = model.NewInvalidStateError(
			fmt.Sprintf("Order in status %q cannot be cancelled", order.Status))
		return nil, err
	}

	wasPaid := order.Status == model.OrderStatusPaid

	if reason == "" {
		reason = defaultCancellationReason
	}
	order.Status = model.OrderStatusCancelled
	order.CancellationReason = &reason
	refund := model.RefundStatusNone
	if wasPaid {
		refund = model.RefundStatusProcessing
	}
	order.RefundStatus = &refund

	if err = s.orderRepo.UpdateStatus(ctx, tx, order); err != nil {
		err = fmt.Errorf("failed to cancel order: %w", err)
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = fmt.Errorf("failed to commit transaction: %w", err)
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Bool("refund", wasPaid).
		Msg("order cancelled")
	s.metrics.ObserveOrderCancelled()

	return s.detail(ctx, order)
}

// ListAll returns every order with its lines, newest first.
func (s *orderService) ListAll(ctx context.Context) ([]model.OrderDetail, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return s.details(ctx, orders)
}

// UpdateStatus performs an administrative lifecycle transition. Illegal
// targets and transitions are rejected without touching the row.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus, trackingNumber *string) (*model.OrderDetail, error) {
	if !status.IsValid() {
		return nil, model.NewValidationError(
			fmt.Sprintf("Unknown order status: %s", status), "status")
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetForUpdate(ctx, tx, orderID)
	if err != nil {
		err = fmt.Errorf("failed to get order: %w", err)
		return nil, err
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		err = model.NewInvalidStateError(
			fmt.Sprintf("Cannot transition order from %q to %q", order.Status, status))
		return nil, err
	}

	order.Status = status
	if trackingNumber != nil {
		order.TrackingNumber = trackingNumber
	}

	if err = s.orderRepo.UpdateStatus(ctx, tx, order); err != nil {
		err = fmt.Errorf("failed to update order status: %w", err)
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = fmt.Errorf("failed to commit transaction: %w", err)
		return nil, err
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("status", string(status)).
		Msg("order status updated")

	return s.detail(ctx, order)
}

func (s *orderService) detail(ctx context.Context, order *model.Order) (*model.OrderDetail, error) {
	items, err := s.orderRepo.GetItemViews(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	return &model.OrderDetail{Order: *order, Items: items}, nil
}

func (s *orderService) details(ctx context.Context, orders []model.Order) ([]model.OrderDetail, error) {
	details := make([]model.OrderDetail, 0, len(orders))
	for i := range orders {
		d, err := s.detail(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}
