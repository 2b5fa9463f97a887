package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"bookloan/internal/pkg/logger"

	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// insecureDevSecret is only ever used when APP_MODE=dev and no key is configured.
const insecureDevSecret = "dev_insecure_secret_change_me"

// Config holds all configuration for the application
type Config struct {
	AppMode         string
	Port            string
	Store           string
	Database        DatabaseConfig
	Mongo           MongoConfig
	Redis           RedisConfig
	JWT             JWTConfig
	Security        SecurityConfig
	RateLimit       RateLimitConfig
	Admin           AdminConfig
	// SeedSampleBooks fills an empty catalog with demo books on startup.
	SeedSampleBooks bool
}

// DatabaseConfig holds SQL database configuration
type DatabaseConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI    string
	DBName string
}

// RedisConfig holds the optional Redis connection used for the token denylist
type RedisConfig struct {
	URL string
}

// JWTConfig holds token signing configuration
type JWTConfig struct {
	Secret            string
	TokenValidityDays int
	// InsecureDefault is set when Secret fell back to the built-in dev key.
	InsecureDefault bool
}

// SecurityConfig holds password hashing and authorization knobs
type SecurityConfig struct {
	BcryptCost int
	// StrictCapabilityEdits requires canEditUsers to change capability flags,
	// including on one's own account.
	StrictCapabilityEdits bool
}

// RateLimitConfig holds per-IP request limits per minute. Zero disables a limiter.
type RateLimitConfig struct {
	General int
	Auth    int
}

// AdminConfig holds the bootstrap administrator account
type AdminConfig struct {
	Name     string
	Email    string
	Password string
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	log := logger.With("config")

	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Debug(".env file not found, using environment variables")
	}

	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	store := strings.ToLower(strings.TrimSpace(getEnv("STORE_DRIVER", DriverMySQL)))
	switch store {
	case DriverMySQL, DriverSQLite, DriverMongo:
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER: '%s' (must be mysql, sqlite or mongo)", store)
	}

	jwtConfig, err := loadJWTConfig(appMode)
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:  appMode,
		Port:     getEnv("PORT", "8080"),
		Store:    store,
		Database: loadDatabaseConfig(appMode),
		Mongo: MongoConfig{
			URI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DBName: getEnv("MONGO_DB", "bookloan"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		JWT: jwtConfig,
		Security: SecurityConfig{
			BcryptCost:            getEnvInt("BCRYPT_COST", 10),
			StrictCapabilityEdits: getEnvBool("STRICT_CAPABILITY_EDITS", false),
		},
		RateLimit: RateLimitConfig{
			General: getEnvInt("RATE_LIMIT", 100),
			Auth:    getEnvInt("AUTH_RATE_LIMIT", 20),
		},
		Admin: AdminConfig{
			Name:     getEnv("ADMIN_NAME", "Administrator"),
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		SeedSampleBooks: getEnvBool("SEED_SAMPLE_BOOKS", false),
	}

	if config.JWT.InsecureDefault {
		log.Warn("JWT secret is not configured; using the insecure development default")
	}

	log.WithField("mode", appMode).WithField("store", store).Info("configuration loaded")
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:       getEnv(prefix+"DB_HOST", "localhost"),
		Port:       getEnv(prefix+"DB_PORT", "3306"),
		User:       getEnv(prefix+"DB_USER", "root"),
		Password:   getEnv(prefix+"DB_PASS", ""),
		DBName:     getEnv(prefix+"DB_NAME", "bookloan"),
		SQLitePath: getEnv(prefix+"SQLITE_PATH", "bookloan.db"),
	}
}

// loadJWTConfig loads JWT config based on mode. A missing key is fatal in prod.
func loadJWTConfig(mode string) (JWTConfig, error) {
	prefix := modePrefix(mode)

	cfg := JWTConfig{
		Secret:            getEnv(prefix+"JWT_SECRET", ""),
		TokenValidityDays: getEnvInt("TOKEN_VALIDITY_DAYS", 7),
	}
	if cfg.TokenValidityDays < 1 {
		return cfg, fmt.Errorf("invalid TOKEN_VALIDITY_DAYS: %d", cfg.TokenValidityDays)
	}

	if cfg.Secret == "" {
		if mode == "prod" {
			return cfg, fmt.Errorf("%sJWT_SECRET must be set in prod mode", prefix)
		}
		cfg.Secret = insecureDevSecret
		cfg.InsecureDefault = true
	}

	return cfg, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://bookloan.example.org"
	}
	return origins
}
