package repository

import (
	"context"

	"urban-turban/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns nil when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// GetByEmail retrieves a user by email. Returns nil when missing.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error

	// List retrieves all users.
	List(ctx context.Context) ([]model.User, error)

	// Delete removes a user. Returns false when no row existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ProductRepository defines the interface for catalog data access operations.
type ProductRepository interface {
	// ListActive retrieves all active products with their variants.
	ListActive(ctx context.Context) ([]model.ProductWithVariants, error)

	// GetBySlug retrieves a product with variants by slug. Returns nil when
	// missing.
	GetBySlug(ctx context.Context, slug string) (*model.ProductWithVariants, error)

	// GetVariantDetail retrieves a variant joined with its product. Returns
	// nil when missing.
	GetVariantDetail(ctx context.Context, variantID uuid.UUID) (*model.VariantDetail, error)
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// GetByID retrieves a cart by ID. Returns nil when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Cart, error)

	// GetByUser retrieves the user's most recent cart. Returns nil when the
	// user has none.
	GetByUser(ctx context.Context, userID uuid.UUID) (*model.Cart, error)

	// Create inserts a new cart, optionally owned by a user.
	Create(ctx context.Context, userID *uuid.UUID) (*model.Cart, error)

	// AssignToUser attaches a guest cart to a user.
	AssignToUser(ctx context.Context, cartID, userID uuid.UUID) error

	// GetItemViews retrieves the cart lines joined with variant and product
	// data.
	GetItemViews(ctx context.Context, cartID uuid.UUID) ([]model.CartItemView, error)

	// UpsertItem atomically inserts a line or increments the existing line's
	// quantity for the same variant.
	UpsertItem(ctx context.Context, cartID, variantID uuid.UUID, quantity int) error

	// SetItemQuantity overwrites a line's quantity. Returns false when no
	// such line exists.
	SetItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) (bool, error)

	// RemoveItem deletes a line unconditionally; removing a missing line is
	// not an error.
	RemoveItem(ctx context.Context, itemID uuid.UUID) error

	// Clear deletes all lines for a cart.
	Clear(ctx context.Context, cartID uuid.UUID) error

	// LockItemViews locks the cart row within the transaction and returns
	// its lines; concurrent checkouts of the same cart serialize here.
	// Returns ErrCartNotFound when the cart does not exist.
	LockItemViews(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) ([]model.CartItemView, error)

	// ClearTx deletes all lines for a cart within the transaction.
	ClearTx(ctx context.Context, tx pgx.Tx, cartID uuid.UUID) error
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// CreatePayment inserts a payment record within the provided transaction.
	CreatePayment(ctx context.Context, tx pgx.Tx, payment *model.Payment) error

	// GetByID retrieves an order by ID. Returns nil when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetForUpdate retrieves an order under a row lock within the
	// transaction. Returns nil when missing.
	GetForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)

	// GetItemViews retrieves an order's lines joined with variant and
	// product data.
	GetItemViews(ctx context.Context, orderID uuid.UUID) ([]model.OrderItemView, error)

	// GetPayment retrieves the payment row for an order. Returns nil when
	// the order has none (COD).
	GetPayment(ctx context.Context, orderID uuid.UUID) (*model.Payment, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves every order, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// UpdateStatus persists the order's status and cancellation/tracking/
	// refund fields within the provided transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, order *model.Order) error
}
