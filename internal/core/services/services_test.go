package services

import (
	"context"
	"testing"
	"time"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/core/domain"
	"bookloan/internal/pkg/password"
	"bookloan/internal/testutil"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	stores *repositories.Stores
	tokens *TokenService
	auth   *AuthService
	users  *UserService
	books  *BookService
	hasher *password.Hasher
	clock  time.Time
}

func newFixture(t *testing.T, strict bool) *fixture {
	t.Helper()

	f := &fixture{
		stores: testutil.NewStores(t),
		hasher: password.NewHasher(bcrypt.MinCost),
		clock:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	cfg := testutil.Config()
	gate := NewGate(strict)
	f.tokens = NewTokenService(cfg, f.stores.RevokedTokens).WithClock(func() time.Time { return f.clock })
	f.auth = NewAuthService(f.stores.Users, f.tokens, f.hasher)
	f.users = NewUserService(f.stores.Users, gate, f.hasher)
	f.books = NewBookService(f.stores.Books, gate)
	return f
}

// register creates an account and grants it perms directly in the store
func (f *fixture) register(t *testing.T, name, email string, perms domain.Permissions) *models.User {
	t.Helper()
	ctx := context.Background()

	created, err := f.auth.Register(ctx, &RegisterInput{Name: name, Email: email, Password: "pw-" + name})
	require.NoError(t, err)

	user, err := f.stores.Users.UpdateFields(ctx, created.ID, permissionFields(perms))
	require.NoError(t, err)
	return user
}

// identity logs in and verifies the token, the way a request would
func (f *fixture) identity(t *testing.T, user *models.User) *domain.Identity {
	t.Helper()
	ctx := context.Background()

	result, err := f.auth.Login(ctx, &LoginInput{Email: user.Email, Password: "pw-" + user.Name})
	require.NoError(t, err)

	id, err := f.tokens.Verify(ctx, result.Token)
	require.NoError(t, err)
	return id
}

func permissionFields(p domain.Permissions) repositories.Fields {
	return repositories.Fields{
		repositories.ColCanCreateBooks:  p.CanCreateBooks,
		repositories.ColCanEditBooks:    p.CanEditBooks,
		repositories.ColCanDisableBooks: p.CanDisableBooks,
		repositories.ColCanEditUsers:    p.CanEditUsers,
		repositories.ColCanDisableUsers: p.CanDisableUsers,
	}
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }
