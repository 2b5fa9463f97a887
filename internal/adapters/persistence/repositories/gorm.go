package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// NewGormStores creates the SQL-backed repositories
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:         NewUserRepository(db),
		Books:         NewBookRepository(db),
		RevokedTokens: NewRevokedTokenRepository(db),
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
}

// translateError maps gorm errors onto the shared storage errors.
// Requires gorm.Config.TranslateError so drivers report ErrDuplicatedKey.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
