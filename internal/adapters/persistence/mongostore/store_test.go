package mongostore

import (
	"context"
	"os"
	"testing"
	"time"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStore connects to a scratch database, skipping when MongoDB is not running
func testStore(t *testing.T) *repositories.Stores {
	t.Helper()

	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	s, err := NewStore(uri, "bookloan_test")
	if err != nil {
		t.Skipf("MongoDB not available: %v", err)
	}

	ctx := context.Background()
	require.NoError(t, s.db.Drop(ctx))
	require.NoError(t, s.ensureIndexes(ctx))

	t.Cleanup(func() {
		_ = s.db.Drop(context.Background())
		_ = s.Close()
	})
	return s.Stores()
}

func TestUserStore(t *testing.T) {
	stores := testStore(t)
	ctx := context.Background()

	user := &models.User{Name: "Ana", Email: "a@x.com", Password: "hash", Active: true}
	require.NoError(t, stores.Users.Create(ctx, user))
	require.NotEmpty(t, user.ID)

	err := stores.Users.Create(ctx, &models.User{Name: "Other", Email: "a@x.com", Password: "hash"})
	assert.ErrorIs(t, err, repositories.ErrDuplicate)

	exists, err := stores.Users.ExistsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := stores.Users.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	updated, err := stores.Users.UpdateFields(ctx, user.ID, repositories.Fields{
		repositories.ColName:         "Ana Maria",
		repositories.ColCanEditUsers: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.True(t, updated.CanEditUsers)
	assert.Equal(t, "a@x.com", updated.Email)

	_, err = stores.Users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	_, err = stores.Users.UpdateFields(ctx, "missing", repositories.Fields{repositories.ColActive: false})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBookStore(t *testing.T) {
	stores := testStore(t)
	ctx := context.Background()

	var ids []string
	for _, title := range []string{"Dune", "Emma", "Ulysses"} {
		book := &models.Book{Title: title, Author: "A", Available: true, Active: true}
		require.NoError(t, stores.Books.Create(ctx, book))
		ids = append(ids, book.ID)
	}

	disabled, err := stores.Books.UpdateFields(ctx, ids[0], repositories.Fields{repositories.ColActive: false})
	require.NoError(t, err)
	assert.False(t, disabled.Active)
	assert.True(t, disabled.Available)

	books, total, err := stores.Books.ListActive(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, books, 2)

	got, err := stores.Books.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
}

func TestRevokedTokenStore(t *testing.T) {
	stores := testStore(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	token := &models.RevokedToken{TokenID: "jti-1", UserID: "u-1", ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, stores.RevokedTokens.Revoke(ctx, token))
	require.NoError(t, stores.RevokedTokens.Revoke(ctx, token))

	revoked, err := stores.RevokedTokens.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	n, err := stores.RevokedTokens.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
