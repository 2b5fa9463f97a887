package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/core/domain"
	"bookloan/internal/pkg/logger"
	"bookloan/internal/pkg/metrics"
	"bookloan/internal/pkg/password"
)

// PasswordHasher hashes and verifies account secrets
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// AuthService handles registration and authentication
type AuthService struct {
	userRepo repositories.UserRepository
	tokens   *TokenService
	hasher   PasswordHasher
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	tokens *TokenService,
	hasher PasswordHasher,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		hasher:   hasher,
	}
}

// RegisterInput represents registration input
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput represents login input
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is returned by a successful login or refresh
type AuthResult struct {
	Token     string              `json:"token"`
	ExpiresAt time.Time           `json:"expiresAt"`
	User      *models.UserSummary `json:"user"`
}

// checkPasswordLength rejects passwords bcrypt cannot hash
func checkPasswordLength(pw string) error {
	if len(pw) > password.MaxLength {
		return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrValidation, password.MaxLength)
	}
	return nil
}

// Register creates an active account without capabilities
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*models.UserResponse, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)

	// 1. Validate required fields
	if name == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}
	if err := checkPasswordLength(input.Password); err != nil {
		return nil, err
	}

	// 2. Check if email already exists; the unique index still has the final say
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	// 3. Hash password
	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. Create user
	user := &models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Active:   true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	logger.With("auth").WithField("user_id", user.ID).Info("user registered")
	return user.ToResponse(), nil
}

// Login verifies credentials and issues a token with the user's current permissions
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	result, err := s.login(ctx, input)
	metrics.AuthAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
	return result, err
}

func (s *AuthService) login(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	// 1. Find user by email
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}

	// 3. Verify password
	if !s.hasher.Verify(input.Password, user.Password) {
		return nil, domain.ErrInvalidCredential
	}

	// 4. Issue token
	return s.issue(user)
}

// Refresh re-reads the caller's account and issues a token carrying its live
// permissions. The presented token is revoked.
func (s *AuthService) Refresh(ctx context.Context, identity *domain.Identity) (*AuthResult, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if !user.Active {
		return nil, domain.ErrAccountDisabled
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Revoke(ctx, identity); err != nil {
		return nil, fmt.Errorf("revoke previous token: %w", err)
	}

	return result, nil
}

// Logout revokes the presented token
func (s *AuthService) Logout(ctx context.Context, identity *domain.Identity) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if err := s.tokens.Revoke(ctx, identity); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}

	logger.With("auth").WithField("user_id", identity.UserID).Debug("token revoked")
	return nil
}

func (s *AuthService) issue(user *models.User) (*AuthResult, error) {
	issued, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      user.ToSummary(),
	}, nil
}

func loginOutcome(err error) string {
	switch domain.Kind(err) {
	case nil:
		return "success"
	case domain.ErrValidation:
		return "invalid_request"
	case domain.ErrNotFound:
		return "unknown_user"
	case domain.ErrAccountDisabled:
		return "disabled"
	case domain.ErrInvalidCredential:
		return "bad_password"
	default:
		return "error"
	}
}
