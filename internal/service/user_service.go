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

// userService implements UserService.
type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "user").Logger(),
	}
}

// Create creates an account with an explicit role.
func (s *userService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	if req == nil {
		return nil, model.NewValidationError("Request body is required", "")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, model.NewValidationError("A valid email is required", "email")
	}
	if len(req.Password) < 6 {
		return nil, model.NewValidationError("Password must be at least 6 characters", "password")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, model.NewValidationError("Name is required", "name")
	}
	if !auth.ValidRole(req.Role) {
		return nil, model.NewValidationError(
			fmt.Sprintf("Unknown role: %s", req.Role), "role")
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
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("role", user.Role).
		Msg("user created")

	return user, nil
}

// List returns all accounts.
func (s *userService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Delete removes an employee account. Self-deletion is refused, as is
// deleting admins or customers; customer accounts hold order history.
func (s *userService) Delete(ctx context.Context, actorID, targetID uuid.UUID) error {
	if actorID == targetID {
		return model.NewValidationError("Cannot delete your own account", "")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if target == nil {
		return model.ErrUserNotFound
	}
	if auth.Role(target.Role) != auth.RoleEmployee {
		return model.ErrForbidden
	}

	deleted, err := s.userRepo.Delete(ctx, targetID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if !deleted {
		return model.ErrUserNotFound
	}

	s.logger.Info().Str("user_id", targetID.String()).Msg("user deleted")

	return nil
}
