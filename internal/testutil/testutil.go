// Package testutil provides SQLite-backed fixtures for package tests.
package testutil

import (
	"fmt"
	"testing"

	"bookloan/internal/adapters/persistence/models"
	"bookloan/internal/adapters/persistence/repositories"
	"bookloan/internal/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestSecret signs tokens in tests
const TestSecret = "test-secret"

// NewDB opens a migrated in-memory SQLite database private to the test
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := config.OpenSQLite(dsn, gormlogger.Silent)
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	t.Cleanup(func() { _ = config.CloseDatabase(db) })
	return db
}

// NewStores returns gorm repositories over a fresh database
func NewStores(t testing.TB) *repositories.Stores {
	t.Helper()
	return repositories.NewGormStores(NewDB(t))
}

// Config returns a dev configuration suitable for tests
func Config() *config.Config {
	return &config.Config{
		AppMode: "dev",
		Port:    "0",
		Store:   config.DriverSQLite,
		JWT: config.JWTConfig{
			Secret:            TestSecret,
			TokenValidityDays: 7,
		},
		Security: config.SecurityConfig{
			BcryptCost: 4,
		},
	}
}
