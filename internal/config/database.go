package config

import (
	"fmt"
	"time"

	"bookloan/internal/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDatabase opens the SQL database selected by STORE_DRIVER
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	// Configure GORM logger based on mode
	logLevel := gormlogger.Error
	if cfg.IsDev() {
		logLevel = gormlogger.Info
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Store {
	case DriverMySQL:
		db, err = gorm.Open(mysql.Open(buildDSN(cfg.Database)), gormConfig(logLevel))
	case DriverSQLite:
		db, err = OpenSQLite(sqliteDSN(cfg.Database.SQLitePath), logLevel)
	default:
		return nil, fmt.Errorf("store driver %q is not a SQL driver", cfg.Store)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Store == DriverMySQL {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	entry := logger.With("database").WithField("driver", cfg.Store)
	if cfg.Store == DriverMySQL {
		entry = entry.WithField("target", fmt.Sprintf("%s:%s/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName))
	} else {
		entry = entry.WithField("target", cfg.Database.SQLitePath)
	}
	entry.Info("database connected")

	return db, nil
}

// OpenSQLite opens a SQLite database. SQLite allows one writer, so the pool is
// pinned to a single connection; this also keeps in-memory databases alive.
func OpenSQLite(dsn string, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(level))
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	return db, nil
}

func gormConfig(level gormlogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(level),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	}
}

// buildDSN returns the MySQL connection string
func buildDSN(d DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}

// sqliteDSN enables foreign keys and a busy timeout, as reservations reference users and books.
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=on", path)
}

// CloseDatabase closes the database connection
func CloseDatabase(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}
