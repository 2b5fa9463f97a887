package services

import (
	"context"
	"testing"
	"time"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeRevokedTokens(t *testing.T) {
	stores := testutil.NewStores(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, stores.RevokedTokens.Revoke(ctx, &models.RevokedToken{TokenID: "old", UserID: "u", ExpiresAt: now.Add(-time.Hour)}))
	require.NoError(t, stores.RevokedTokens.Revoke(ctx, &models.RevokedToken{TokenID: "live", UserID: "u", ExpiresAt: now.Add(time.Hour)}))

	cron := NewCronService(stores.RevokedTokens)
	cron.now = func() time.Time { return now }

	n, err := cron.PurgeRevokedTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	revoked, err := stores.RevokedTokens.IsRevoked(ctx, "live")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = stores.RevokedTokens.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestCronStartStop(t *testing.T) {
	cron := NewCronService(nil)
	require.NoError(t, cron.Start())
	cron.Stop()
}
