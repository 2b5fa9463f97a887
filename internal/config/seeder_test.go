package config_test

import (
	"context"
	"strings"
	"testing"

	"bookloan/internal/config"
	"bookloan/internal/core/domain"
	"bookloan/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeederCreatesAdmin(t *testing.T) {
	stores := testutil.NewStores(t)
	ctx := context.Background()

	cfg := testutil.Config()
	cfg.Admin = config.AdminConfig{Name: "Root", Email: "root@x.com", Password: "secret"}
	cfg.SeedSampleBooks = true

	require.NoError(t, config.NewSeeder(stores, cfg).Run(ctx))

	admin, err := stores.Users.GetByEmail(ctx, "root@x.com")
	require.NoError(t, err)
	assert.True(t, admin.Active)
	assert.Equal(t, domain.AllPermissions(), admin.Permissions())
	assert.NotEqual(t, "secret", admin.Password)

	_, total, err := stores.Books.ListActive(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	// running again changes nothing
	require.NoError(t, config.NewSeeder(stores, cfg).Run(ctx))
	_, total, err = stores.Books.ListActive(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestSeederSkipsOverlongAdminPassword(t *testing.T) {
	stores := testutil.NewStores(t)
	ctx := context.Background()

	cfg := testutil.Config()
	cfg.Admin = config.AdminConfig{Name: "Root", Email: "root@x.com", Password: strings.Repeat("p", 73)}

	require.NoError(t, config.NewSeeder(stores, cfg).Run(ctx))

	exists, err := stores.Users.ExistsByEmail(ctx, "root@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSeederRestoresAdminCapabilities(t *testing.T) {
	stores := testutil.NewStores(t)
	ctx := context.Background()

	cfg := testutil.Config()
	cfg.Admin = config.AdminConfig{Name: "Root", Email: "root@x.com", Password: "secret"}
	seeder := config.NewSeeder(stores, cfg)
	require.NoError(t, seeder.Run(ctx))

	admin, err := stores.Users.GetByEmail(ctx, "root@x.com")
	require.NoError(t, err)
	_, err = stores.Users.UpdateFields(ctx, admin.ID, map[string]interface{}{"can_edit_users": false})
	require.NoError(t, err)

	require.NoError(t, seeder.Run(ctx))

	admin, err = stores.Users.GetByEmail(ctx, "root@x.com")
	require.NoError(t, err)
	assert.True(t, admin.CanEditUsers)
}

func TestSeederWithoutAdminEmail(t *testing.T) {
	stores := testutil.NewStores(t)
	ctx := context.Background()

	require.NoError(t, config.NewSeeder(stores, testutil.Config()).Run(ctx))

	exists, err := stores.Users.ExistsByEmail(ctx, "root@x.com")
	require.NoError(t, err)
	assert.False(t, exists)
}
