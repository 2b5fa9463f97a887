// Package persistence opens the storage driver selected by configuration.
package persistence

import (
	"context"
	"errors"
	"fmt"

	rediscache "bookloan/internal/adapters/cache/redis"
	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/mongostore"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/config"
	"bookloan/internal/pkg/logger"
)

// Backend is an open set of repositories plus the means to release them
type Backend struct {
	Stores  *repositories.Stores
	closers []func() error
}

// Close releases every connection the backend holds
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open connects to the configured store. SQL schemas are migrated when
// migrate is set; MongoDB indexes are always ensured. With REDIS_URL set the
// token denylist lives in Redis instead of the primary store.
func Open(cfg *config.Config, migrate bool) (*Backend, error) {
	b := &Backend{}

	switch cfg.Store {
	case config.DriverMongo:
		store, err := mongostore.NewStore(cfg.Mongo.URI, cfg.Mongo.DBName)
		if err != nil {
			return nil, err
		}
		b.Stores = store.Stores()
		b.closers = append(b.closers, store.Close)

	case config.DriverMySQL, config.DriverSQLite:
		db, err := config.ConnectDatabase(cfg)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, func() error { return config.CloseDatabase(db) })

		if migrate {
			if err := models.AutoMigrate(db); err != nil {
				_ = b.Close()
				return nil, fmt.Errorf("failed to auto migrate: %w", err)
			}
			logger.With("database").Info("database migration completed")
		}
		b.Stores = repositories.NewGormStores(db)

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store)
	}

	if cfg.Redis.URL != "" {
		cache, err := rediscache.NewStoreFromURL(cfg.Redis.URL)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		b.closers = append(b.closers, cache.Close)
		b.Stores.RevokedTokens = cache

		primary := b.Stores.Ping
		b.Stores.Ping = func(ctx context.Context) error {
			if err := primary(ctx); err != nil {
				return err
			}
			return cache.Ping(ctx)
		}
	}

	return b, nil
}
