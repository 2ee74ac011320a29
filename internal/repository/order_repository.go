package repository

import (
	"context"
	"errors"
	"fmt"

	"urban-turban/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const orderColumns = `id, user_id, status, total_amount, payment_provider,
	tracking_number, cancellation_reason, refund_status, created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.PaymentProvider,
		&o.TrackingNumber, &o.CancellationReason, &o.RefundStatus, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, status, total_amount, payment_provider,
			tracking_number, cancellation_reason, refund_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := tx.Exec(ctx, query,
		order.ID, order.UserID, order.Status, order.TotalAmount, order.PaymentProvider,
		order.TrackingNumber, order.CancellationReason, order.RefundStatus, order.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("order created")

	return nil
}

// CreateOrderItems inserts order items within the provided transaction.
func (r *orderRepository) CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_variant_id, quantity, price_at_purchase)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query, item.ID, item.OrderID, item.ProductVariantID, item.Quantity, item.PriceAtPurchase)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(items); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().Err(err).
				Str("order_id", items[i].OrderID.String()).
				Str("variant_id", items[i].ProductVariantID.String()).
				Msg("failed to create order item")
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	r.logger.Debug().Int("count", len(items)).Msg("order items created")

	return nil
}

// CreatePayment inserts a payment record within the provided transaction.
func (r *orderRepository) CreatePayment(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	query := `
		INSERT INTO payments (id, order_id, provider, status, external_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		payment.ID, payment.OrderID, payment.Provider, payment.Status,
		payment.ExternalID, payment.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", payment.OrderID.String()).Msg("failed to create payment")
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetByID retrieves an order by ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// GetForUpdate retrieves an order under a row lock within the transaction.
func (r *orderRepository) GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 FOR UPDATE`

	order, err := scanOrder(tx.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to lock order")
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	return order, nil
}

// GetItemViews retrieves an order's lines joined with variant and product data.
func (r *orderRepository) GetItemViews(ctx context.Context, orderID uuid.UUID) ([]model.OrderItemView, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_variant_id, oi.quantity, oi.price_at_purchase,
		       v.color, v.sku,
		       p.id, p.name, p.slug
		FROM order_items oi
		JOIN product_variants v ON v.id = oi.product_variant_id
		JOIN products p ON p.id = v.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var views []model.OrderItemView
	for rows.Next() {
		var v model.OrderItemView
		err := rows.Scan(
			&v.ID, &v.OrderID, &v.ProductVariantID, &v.Quantity, &v.PriceAtPurchase,
			&v.Color, &v.SKU,
			&v.ProductID, &v.ProductName, &v.ProductSlug,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return views, nil
}

// GetPayment retrieves the payment row for an order.
func (r *orderRepository) GetPayment(ctx context.Context, orderID uuid.UUID) (*model.Payment, error) {
	query := `
		SELECT id, order_id, provider, status, external_id, created_at
		FROM payments
		WHERE order_id = $1
	`

	var p model.Payment
	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&p.ID, &p.OrderID, &p.Provider, &p.Status, &p.ExternalID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query payment")
		return nil, fmt.Errorf("failed to query payment: %w", err)
	}

	return &p, nil
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.TotalAmount, &o.PaymentProvider,
			&o.TrackingNumber, &o.CancellationReason, &o.RefundStatus, &o.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`
	return r.listOrders(ctx, query, userID)
}

// ListAll retrieves every order, newest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.listOrders(ctx, query)
}

// UpdateStatus persists the order's status and lifecycle fields within the
// provided transaction.
func (r *orderRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET status = $1, tracking_number = $2, cancellation_reason = $3, refund_status = $4
		WHERE id = $5
	`

	_, err := tx.Exec(ctx, query,
		order.Status, order.TrackingNumber, order.CancellationReason, order.RefundStatus, order.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order status")
		return fmt.Errorf("failed to update order status: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("order status updated")

	return nil
}
