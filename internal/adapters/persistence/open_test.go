package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/config"
	"bookloan/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	cfg := testutil.Config()
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "bookloan.db")

	backend, err := Open(cfg, true)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	ctx := context.Background()
	require.NoError(t, backend.Stores.Ping(ctx))

	user := &models.User{Name: "Ana", Email: "a@x.com", Password: "hash", Active: true}
	require.NoError(t, backend.Stores.Users.Create(ctx, user))

	got, err := backend.Stores.Users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := testutil.Config()
	cfg.Store = "bolt"

	_, err := Open(cfg, false)
	assert.Error(t, err)
}

func TestOpenRejectsUnreachableRedis(t *testing.T) {
	cfg := testutil.Config()
	cfg.Store = config.DriverSQLite
	cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "bookloan.db")
	cfg.Redis.URL = "redis://127.0.0.1:1/0"

	_, err := Open(cfg, true)
	assert.Error(t, err)
}
