package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/core/domain"
	"bookloan/internal/pkg/logger"
)

// UserService handles account management behind the authorization gate
type UserService struct {
	userRepo repositories.UserRepository
	gate     *Gate
	hasher   PasswordHasher
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repositories.UserRepository,
	gate *Gate,
	hasher PasswordHasher,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		gate:     gate,
		hasher:   hasher,
	}
}

// UpdateUserInput lists every field a user update may touch. Nil means absent.
type UpdateUserInput struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Password        *string `json:"password"`
	CanCreateBooks  *bool   `json:"canCreateBooks"`
	CanEditBooks    *bool   `json:"canEditBooks"`
	CanDisableBooks *bool   `json:"canDisableBooks"`
	CanEditUsers    *bool   `json:"canEditUsers"`
	CanDisableUsers *bool   `json:"canDisableUsers"`
}

// ChangesCapabilities reports whether any capability flag is present
func (in *UpdateUserInput) ChangesCapabilities() bool {
	return in.CanCreateBooks != nil ||
		in.CanEditBooks != nil ||
		in.CanDisableBooks != nil ||
		in.CanEditUsers != nil ||
		in.CanDisableUsers != nil
}

// GetUser returns a user to themself or to a holder of canEditUsers
func (s *UserService) GetUser(ctx context.Context, actor *domain.Identity, id string) (*models.UserResponse, error) {
	if err := s.gate.CanReadUser(actor, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, userError(err)
	}
	return user.ToResponse(), nil
}

// UpdateUser applies the present fields of input. Blank name and email are ignored.
func (s *UserService) UpdateUser(ctx context.Context, actor *domain.Identity, id string, input *UpdateUserInput) (*models.UserResponse, error) {
	if input == nil {
		input = &UpdateUserInput{}
	}

	// 1. Authorize
	if err := s.gate.CanUpdateUser(actor, id, input.ChangesCapabilities()); err != nil {
		return nil, err
	}

	// 2. Build the update from the allow-listed fields
	fields := repositories.Fields{}
	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		fields[repositories.ColName] = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
		email := strings.TrimSpace(*input.Email)
		owner, err := s.userRepo.GetByEmail(ctx, email)
		switch {
		case err == nil && owner.ID != id:
			return nil, domain.ErrEmailAlreadyExists
		case err != nil && !errors.Is(err, repositories.ErrNotFound):
			return nil, err
		}
		fields[repositories.ColEmail] = email
	}
	if input.Password != nil && *input.Password != "" {
		if err := checkPasswordLength(*input.Password); err != nil {
			return nil, err
		}
		hashed, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields[repositories.ColPassword] = hashed
	}
	setFlag(fields, repositories.ColCanCreateBooks, input.CanCreateBooks)
	setFlag(fields, repositories.ColCanEditBooks, input.CanEditBooks)
	setFlag(fields, repositories.ColCanDisableBooks, input.CanDisableBooks)
	setFlag(fields, repositories.ColCanEditUsers, input.CanEditUsers)
	setFlag(fields, repositories.ColCanDisableUsers, input.CanDisableUsers)

	// 3. Persist
	user, err := s.userRepo.UpdateFields(ctx, id, fields)
	if err != nil {
		return nil, userError(err)
	}

	if input.ChangesCapabilities() {
		logger.With("users").
			WithField("user_id", id).
			WithField("actor_id", actor.UserID).
			Info("user capabilities changed")
	}
	return user.ToResponse(), nil
}

// DeleteUser soft-deletes a user by clearing its active flag
func (s *UserService) DeleteUser(ctx context.Context, actor *domain.Identity, id string) (*models.UserResponse, error) {
	if err := s.gate.CanDisableUser(actor, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateFields(ctx, id, repositories.Fields{repositories.ColActive: false})
	if err != nil {
		return nil, userError(err)
	}

	logger.With("users").WithField("user_id", id).WithField("actor_id", actor.UserID).Info("user disabled")
	return user.ToResponse(), nil
}

func setFlag(fields repositories.Fields, column string, value *bool) {
	if value != nil {
		fields[column] = *value
	}
}

func userError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return domain.ErrUserNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return domain.ErrEmailAlreadyExists
	default:
		return err
	}
}
