package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"urban-turban/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetByID retrieves a cart by ID.
func (r *cartRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Cart, error) {
	query := `SELECT id, user_id, created_at FROM carts WHERE id = $1`

	var cart model.Cart
	err := r.pool.QueryRow(ctx, query, id).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("cart_id", id.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return &cart, nil
}

// GetByUser retrieves the user's most recent cart.
func (r *cartRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error) {
	query := `
		SELECT id, user_id, created_at
		FROM carts
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	var cart model.Cart
	err := r.pool.QueryRow(ctx, query, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query user cart")
		return nil, fmt.Errorf("failed to query user cart: %w", err)
	}

	return &cart, nil
}

// Create inserts a new cart.
func (r *cartRepository) Create(ctx context.Context, userID *uuid.UUID) (*model.Cart, error) {
	cart := &model.Cart{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	query := `INSERT INTO carts (id, user_id, created_at) VALUES ($1, $2, $3)`

	if _, err := r.pool.Exec(ctx, query, cart.ID, cart.UserID, cart.CreatedAt); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("failed to create cart")
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug().Str("cart_id", cart.ID.String()).Msg("cart created")

	return cart, nil
}

// AssignToUser attaches a guest cart to a user.
func (r *cartRepository) AssignToUser(ctx context.Context, cartID, userID uuid.UUID) error {
	query := `UPDATE carts SET user_id = $1 WHERE id = $2 AND user_id IS NULL`

	if _, err := r.pool.Exec(ctx, query, userID, cartID); err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", cartID.String()).
			Str("user_id", userID.String()).
			Msg("failed to assign cart to user")
		return fmt.Errorf("failed to assign cart to user: %w", err)
	}

	return nil
}

const cartItemViewQuery = `
	SELECT ci.id, ci.cart_id, ci.product_variant_id, ci.quantity,
	       v.color, v.sku, v.stock_quantity,
	       p.id, p.name, p.slug, p.is_active, p.price, p.images
	FROM cart_items ci
	JOIN product_variants v ON v.id = ci.product_variant_id
	JOIN products p ON p.id = v.product_id
	WHERE ci.cart_id = $1
	ORDER BY ci.id
`

func queryCartItemViews(ctx context.Context, q querier, cartID uuid.UUID) ([]model.CartItemView, error) {
	rows, err := q.Query(ctx, cartItemViewQuery, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var views []model.CartItemView
	for rows.Next() {
		var v model.CartItemView
		err := rows.Scan(
			&v.ID, &v.CartID, &v.ProductVariantID, &v.Quantity,
			&v.Color, &v.SKU, &v.StockQuantity,
			&v.ProductID, &v.ProductName, &v.ProductSlug, &v.ProductIsActive, &v.UnitPrice, &v.ProductImages,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return views, nil
}

// GetItemViews retrieves the cart lines joined with variant and product data.
func (r *cartRepository) GetItemViews(ctx context.Context, cartID uuid.UUID) ([]model.CartItemView, error) {
	views, err := queryCartItemViews(ctx, r.pool, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to load cart items")
		return nil, err
	}
	return views, nil
}

// UpsertItem atomically inserts a line or increments the existing one. The
// unique constraint on (cart_id, product_variant_id) makes concurrent adds
// for the same variant converge on a single line.
func (r *cartRepository) UpsertItem(ctx context.Context, cartID, variantID uuid.UUID, quantity int) error {
	query := `
		INSERT INTO cart_items (id, cart_id, product_variant_id, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cart_id, product_variant_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	if _, err := r.pool.Exec(ctx, query, uuid.New(), cartID, variantID, quantity); err != nil {
		r.logger.Error().Err(err).
			Str("cart_id", cartID.String()).
			Str("variant_id", variantID.String()).
			Msg("failed to upsert cart item")
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// SetItemQuantity overwrites a line's quantity.
func (r *cartRepository) SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE cart_items SET quantity = $1 WHERE id = $2`, quantity, itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to update cart item")
		return false, fmt.Errorf("failed to update cart item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// RemoveItem deletes a line unconditionally.
func (r *cartRepository) RemoveItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE id = $1`, itemID); err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to remove cart item")
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// Clear deletes all lines for a cart.
func (r *cartRepository) Clear(ctx context.Context, cartID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// LockItemViews locks the cart row and returns its lines.
func (r *cartRepository) LockItemViews(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) ([]model.CartItemView, error) {
	var locked uuid.UUID
	err := tx.QueryRow(ctx, `SELECT id FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCartNotFound
		}
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to lock cart")
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}

	views, err := queryCartItemViews(ctx, tx, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to load cart items in transaction")
		return nil, err
	}

	return views, nil
}

// ClearTx deletes all lines for a cart within the transaction.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error {
	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to clear cart in transaction")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
