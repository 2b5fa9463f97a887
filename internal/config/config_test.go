package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")
	t.Setenv("DEV_JWT_SECRET", "")
	t.Setenv("STORE_DRIVER", "sqlite")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, DriverSQLite, cfg.Store)
	assert.Equal(t, 7, cfg.JWT.TokenValidityDays)
	assert.True(t, cfg.JWT.InsecureDefault)
	assert.Equal(t, insecureDevSecret, cfg.JWT.Secret)
	assert.False(t, cfg.Security.StrictCapabilityEdits)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
}

func TestLoadProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROD_JWT_SECRET")
}

func TestLoadProdWithSecret(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_JWT_SECRET", "s3cret")
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("STRICT_CAPABILITY_EDITS", "true")
	t.Setenv("TOKEN_VALIDITY_DAYS", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.False(t, cfg.JWT.InsecureDefault)
	assert.Equal(t, 3, cfg.JWT.TokenValidityDays)
	assert.Equal(t, DriverMongo, cfg.Store)
	assert.True(t, cfg.Security.StrictCapabilityEdits)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"app mode", "APP_MODE", "staging"},
		{"store driver", "STORE_DRIVER", "bolt"},
		{"token validity", "TOKEN_VALIDITY_DAYS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_MODE", "dev")
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
