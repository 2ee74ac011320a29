package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"urban-turban/internal/auth"
	"urban-turban/internal/model"
	"urban-turban/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	cartRepo repository.CartRepository
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo repository.UserRepository,
	cartRepo repository.CartRepository,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		cartRepo: cartRepo,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a customer account.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := validateRegisterRequest(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, model.ErrEmailInUse
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         string(auth.RoleCustomer),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")

	return user, nil
}

// Login verifies credentials and adopts any guest cart the caller carried
// when the user has no cart of their own. Carts are never merged.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest, guestCartID *uuid.UUID) (*model.User, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.ErrInvalidCredentials
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil || !auth.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, model.ErrInvalidCredentials
	}

	if guestCartID != nil {
		if err := s.adoptGuestCart(ctx, user.ID, *guestCartID); err != nil {
			// Cart adoption is a convenience, not part of the login contract.
			s.logger.Warn().Err(err).
				Str("user_id", user.ID.String()).
				Str("cart_id", guestCartID.String()).
				Msg("failed to adopt guest cart")
		}
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user logged in")

	return user, nil
}

func (s *authService) adoptGuestCart(ctx context.Context, userID, guestCartID uuid.UUID) error {
	userCart, err := s.cartRepo.GetByUser(ctx, userID)
	if err != nil {
		return err
	}
	if userCart != nil {
		// The user's own cart stays current; the guest cart is abandoned.
		return nil
	}

	guestCart, err := s.cartRepo.GetByID(ctx, guestCartID)
	if err != nil {
		return err
	}
	if guestCart == nil || guestCart.UserID != nil {
		return nil
	}

	return s.cartRepo.AssignToUser(ctx, guestCartID, userID)
}

// GetUser retrieves a user by ID.
func (s *authService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	return user, nil
}

func validateRegisterRequest(req *model.RegisterRequest) error {
	if req == nil {
		return model.NewValidationError("Request body is required", "")
	}
	if !strings.Contains(req.Email, "@") {
		return model.NewValidationError("A valid email is required", "email")
	}
	if len(req.Password) < 6 {
		return model.NewValidationError("Password must be at least 6 characters", "password")
	}
	if strings.TrimSpace(req.Name) == "" {
		return model.NewValidationError("Name is required", "name")
	}
	return nil
}
