package service

import (
	"context"
	"fmt"

	"urban-turban/internal/model"
	"urban-turban/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// ResolveCart returns the caller's current cart. Authenticated users get
// their own cart, created on first use; anonymous callers get the session
// cart when it still exists and is unowned, otherwise a fresh guest cart.
func (s *cartService) ResolveCart(ctx context.Context, userID, sessionCartID *uuid.UUID) (*model.Cart, error) {
	if userID != nil {
		cart, err := s.cartRepo.GetByUser(ctx, *userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user cart: %w", err)
		}
		if cart != nil {
			return cart, nil
		}

		cart, err = s.cartRepo.Create(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to create user cart: %w", err)
		}
		s.logger.Debug().Str("cart_id", cart.ID.String()).Msg("created user cart")
		return cart, nil
	}

	if sessionCartID != nil {
		cart, err := s.cartRepo.GetByID(ctx, *sessionCartID)
		if err != nil {
			return nil, fmt.Errorf("failed to get session cart: %w", err)
		}
		// A cart claimed by a user is no longer reachable anonymously.
		if cart != nil && cart.UserID == nil {
			return cart, nil
		}
	}

	cart, err := s.cartRepo.Create(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create guest cart: %w", err)
	}
	s.logger.Debug().Str("cart_id", cart.ID.String()).Msg("created guest cart")
	return cart, nil
}

// GetCart returns the cart with joined line detail and the live total.
func (s *cartService) GetCart(ctx context.Context, cartID uuid.UUID) (*model.CartView, error) {
	return s.view(ctx, cartID)
}

// AddItem adds quantity of a variant to the cart. Adding a variant already
// in the cart increments the existing line; the upsert is atomic, so
// concurrent adds of the same variant never produce duplicate lines.
func (s *cartService) AddItem(ctx context.Context, cartID, variantID uuid.UUID, quantity int) (*model.CartView, error) {
	if quantity < 1 {
		return nil, model.ErrInvalidQuantity
	}

	variant, err := s.productRepo.GetVariantDetail(ctx, variantID)
	if err != nil {
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}
	if variant == nil {
		return nil, model.ErrVariantNotFound
	}
	if !variant.ProductIsActive {
		return nil, model.ErrProductInactive
	}

	cart, err := s.cartRepo.GetByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if cart == nil {
		return nil, model.ErrCartNotFound
	}

	if err := s.cartRepo.UpsertItem(ctx, cartID, variantID, quantity); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Debug().
		Str("cart_id", cartID.String()).
		Str("variant_id", variantID.String()).
		Int("quantity", quantity).
		Msg("cart item added")

	return s.view(ctx, cartID)
}

// SetItemQuantity overwrites a line's quantity. Quantity zero removes the
// line.
func (s *cartService) SetItemQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*model.CartView, error) {
	if quantity < 0 {
		return nil, model.ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.RemoveItem(ctx, cartID, itemID)
	}

	updated, err := s.cartRepo.SetItemQuantity(ctx, itemID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}
	if !updated {
		return nil, model.ErrCartItemNotFound
	}

	return s.view(ctx, cartID)
}

// RemoveItem deletes a line. Removing a line that is already gone succeeds.
func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID uuid.UUID) (*model.CartView, error) {
	if err := s.cartRepo.RemoveItem(ctx, itemID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	return s.view(ctx, cartID)
}

// Clear removes every line from the cart.
func (s *cartService) Clear(ctx context.Context, cartID uuid.UUID) (*model.CartView, error) {
	if err := s.cartRepo.Clear(ctx, cartID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return s.view(ctx, cartID)
}

func (s *cartService) view(ctx context.Context, cartID uuid.UUID) (*model.CartView, error) {
	items, err := s.cartRepo.GetItemViews(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	return &model.CartView{
		ID:    cartID,
		Items: items,
		Total: model.CartTotal(items),
	}, nil
}
