package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/config"
	"bookloan/internal/core/domain"
	"bookloan/internal/pkg/jwt"
)

// TokenService issues and verifies capability tokens
type TokenService struct {
	secret   string
	validity time.Duration
	revoked  repositories.RevokedTokenRepository
	now      func() time.Time
}

// NewTokenService creates a token service. revoked may be nil, in which case
// tokens cannot be revoked before they expire.
func NewTokenService(cfg *config.Config, revoked repositories.RevokedTokenRepository) *TokenService {
	return &TokenService{
		secret:   cfg.JWT.Secret,
		validity: time.Duration(cfg.JWT.TokenValidityDays) * 24 * time.Hour,
		revoked:  revoked,
		now:      time.Now,
	}
}

// WithClock replaces the time source
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	s.now = now
	return s
}

// Validity returns how long issued tokens stay valid
func (s *TokenService) Validity() time.Duration {
	return s.validity
}

// Issue signs a token carrying the user's current permissions
func (s *TokenService) Issue(user *models.User) (*domain.IssuedToken, error) {
	issuedAt := s.now()
	token, tokenID, err := jwt.GenerateAccessToken(jwt.Subject{
		UserID:      user.ID,
		Email:       user.Email,
		Permissions: user.Permissions(),
	}, s.secret, s.validity, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &domain.IssuedToken{
		Token:     token,
		TokenID:   tokenID,
		ExpiresAt: issuedAt.Add(s.validity),
	}, nil
}

// Verify checks signature, expiry and revocation and returns the identity
// embedded in the token. It does not consult the user record.
func (s *TokenService) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	claims, err := jwt.ValidateAccessToken(token, s.secret, s.now())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrTokenInvalid)
	}

	if s.revoked != nil && claims.ID != "" {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, domain.ErrTokenRevoked)
		}
	}

	identity := &domain.Identity{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Permissions: claims.Permissions,
		TokenID:     claims.ID,
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return identity, nil
}

// Revoke denylists the identity's token until it would have expired
func (s *TokenService) Revoke(ctx context.Context, identity *domain.Identity) error {
	if s.revoked == nil || identity == nil || identity.TokenID == "" {
		return nil
	}

	expiresAt := identity.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = s.now().Add(s.validity)
	}

	return s.revoked.Revoke(ctx, &models.RevokedToken{
		TokenID:   identity.TokenID,
		UserID:    identity.UserID,
		ExpiresAt: expiresAt,
	})
}
