package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/config"
	"bookloan/internal/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_MODE", "dev")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("DEV_SQLITE_PATH", filepath.Join(t.TempDir(), "ctl.db"))
	t.Setenv("DEV_JWT_SECRET", "ctl-secret")
	t.Setenv("REDIS_URL", "")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&bytes.Buffer{})
	RootCmd.SetArgs(args)
	backend = nil

	err := RootCmd.Execute()
	return out.String(), err
}

func TestGrantAndToken(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "done")

	cfg, err := config.Load()
	require.NoError(t, err)
	db, err := config.ConnectDatabase(cfg)
	require.NoError(t, err)
	stores := repositories.NewGormStores(db)
	require.NoError(t, stores.Users.Create(context.Background(), &models.User{Name: "Ana", Email: "a@x.com", Password: "hash", Active: true}))
	require.NoError(t, config.CloseDatabase(db))

	_, err = run(t, "user", "grant", "a@x.com")
	assert.Error(t, err)

	out, err = run(t, "user", "grant", "a@x.com", "--can-edit-books", "--can-edit-users")
	require.NoError(t, err)

	var shown models.UserResponse
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.True(t, shown.Permissions.CanEditBooks)
	assert.True(t, shown.Permissions.CanEditUsers)
	assert.False(t, shown.Permissions.CanCreateBooks)

	out, err = run(t, "token", "a@x.com")
	require.NoError(t, err)

	tokens := services.NewTokenService(cfg, nil)
	identity, err := tokens.Verify(context.Background(), strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, shown.ID, identity.UserID)
	assert.True(t, identity.Permissions.CanEditBooks)

	_, err = run(t, "user", "disable", "a@x.com")
	require.NoError(t, err)

	_, err = run(t, "token", "a@x.com")
	assert.Error(t, err)
}

func TestShowUnknownUser(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "migrate")
	require.NoError(t, err)

	_, err = run(t, "user", "show", "nobody@x.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
