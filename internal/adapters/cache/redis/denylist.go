package redis

import (
	"context"
	"time"

	"bookloan/internal/adapters/persistence/models"
)

// KeyRevokedToken prefixes denylisted token IDs
const KeyRevokedToken = "bookloan:revoked:"

// Revoke stores the token ID until the token would have expired. Keys expire
// on their own, so entries for already expired tokens are not written.
func (s *Store) Revoke(ctx context.Context, token *models.RevokedToken) error {
	now := time.Now()
	if token.IsExpired(now) {
		return nil
	}
	ttl := token.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, KeyRevokedToken+token.TokenID, token.UserID, ttl).Err()
}

// IsRevoked checks whether a token ID is denylisted
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, KeyRevokedToken+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteExpired is a no-op: Redis evicts expired keys itself
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}
