package repositories

import (
	"context"
	"errors"
	"time"

	"bookloan/internal/adapters/persistence/models"
)

// Storage errors shared by every driver
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Fields is a partial update keyed by column name. The same names are used as
// SQL columns and as MongoDB document keys.
type Fields map[string]interface{}

// Updatable user columns
const (
	ColName            = "name"
	ColEmail           = "email"
	ColPassword        = "password"
	ColActive          = "active"
	ColCanCreateBooks  = "can_create_books"
	ColCanEditBooks    = "can_edit_books"
	ColCanDisableBooks = "can_disable_books"
	ColCanEditUsers    = "can_edit_users"
	ColCanDisableUsers = "can_disable_users"
)

// Updatable book columns
const (
	ColTitle       = "title"
	ColAuthor      = "author"
	ColGenre       = "genre"
	ColPublisher   = "publisher"
	ColPublishedAt = "published_at"
	ColAvailable   = "available"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// UpdateFields applies a partial update and returns the updated user.
	UpdateFields(ctx context.Context, id string, fields Fields) (*models.User, error)
}

// BookRepository defines book repository interface
type BookRepository interface {
	Create(ctx context.Context, book *models.Book) error
	GetByID(ctx context.Context, id string) (*models.Book, error)
	// UpdateFields applies a partial update and returns the updated book.
	UpdateFields(ctx context.Context, id string, fields Fields) (*models.Book, error)
	ListActive(ctx context.Context, offset, limit int) ([]*models.Book, int64, error)
}

// RevokedTokenRepository is the token denylist
type RevokedTokenRepository interface {
	// Revoke is idempotent: revoking an already revoked token succeeds.
	Revoke(ctx context.Context, token *models.RevokedToken) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Stores bundles the repositories of one storage driver
type Stores struct {
	Users         UserRepository
	Books         BookRepository
	RevokedTokens RevokedTokenRepository
	// Ping reports whether the backing store is reachable.
	Ping func(ctx context.Context) error
}
