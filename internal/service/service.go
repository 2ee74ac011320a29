package service

import (
	"context"

	"urban-turban/internal/model"

	"github.com/google/uuid"
)

// AuthService defines account registration and credential verification.
type AuthService interface {
	// Register creates a customer account. The email must be unused.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)

	// Login verifies credentials. When the caller carried a guest cart and
	// the user has no cart of their own, the guest cart is adopted.
	Login(ctx context.Context, req *model.LoginRequest, guestCartID *uuid.UUID) (*model.User, error)

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// CartService defines cart resolution and line-item mutation.
type CartService interface {
	// ResolveCart returns the current cart for the identity: the user's cart
	// (lazily created) when authenticated, otherwise the session cart or a
	// fresh guest cart.
	ResolveCart(ctx context.Context, userID, sessionCartID *uuid.UUID) (*model.Cart, error)

	// GetCart returns the cart with joined line detail and the live total.
	GetCart(ctx context.Context, cartID uuid.UUID) (*model.CartView, error)

	// AddItem adds quantity of a variant, incrementing any existing line.
	AddItem(ctx context.Context, cartID, variantID uuid.UUID, quantity int) (*model.CartView, error)

	// SetItemQuantity overwrites a line's quantity; zero removes the line.
	SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*model.CartView, error)

	// RemoveItem deletes a line; removing a missing line succeeds.
	RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (*model.CartView, error)

	// Clear removes every line from the cart.
	Clear(ctx context.Context, cartID uuid.UUID) (*model.CartView, error)
}

// OrderService defines the cart-to-order engine and the order lifecycle.
type OrderService interface {
	// Create converts the cart into an order exactly once, atomically.
	Create(ctx context.Context, userID, cartID uuid.UUID, paymentProvider string) (*model.OrderDetail, error)

	// List returns the user's orders, newest first.
	List(ctx context.Context, userID uuid.UUID) ([]model.OrderDetail, error)

	// Get returns one order; orders of other users report NotFound.
	Get(ctx context.Context, userID, orderID uuid.UUID) (*model.OrderDetail, error)

	// Cancel cancels an owned order still in a cancellable state.
	Cancel(ctx context.Context, userID, orderID uuid.UUID, reason string) (*model.OrderDetail, error)

	// ListAll returns every order; administrative use only.
	ListAll(ctx context.Context) ([]model.OrderDetail, error)

	// UpdateStatus performs a lifecycle transition; administrative use only.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus, trackingNumber *string) (*model.OrderDetail, error)
}

// ProductService defines read-only catalog access.
type ProductService interface {
	// List returns all active products with variants.
	List(ctx context.Context) ([]model.ProductWithVariants, error)

	// GetBySlug returns one product with variants.
	GetBySlug(ctx context.Context, slug string) (*model.ProductWithVariants, error)
}

// UserService defines administrative account management.
type UserService interface {
	// Create creates an account with an explicit role.
	Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error)

	// List returns all accounts.
	List(ctx context.Context) ([]model.User, error)

	// Delete removes an employee account. Admin and customer accounts are
	// refused, as is self-deletion.
	Delete(ctx context.Context, actorID, targetID uuid.UUID) error
}
