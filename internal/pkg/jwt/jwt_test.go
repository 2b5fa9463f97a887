package jwt

import (
	"testing"
	"time"

	"bookloan/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret"
	week       = 7 * 24 * time.Hour
)

func TestGenerateAndValidate(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	subject := Subject{
		UserID:      "user-1",
		Email:       "a@x.com",
		Permissions: domain.Permissions{CanCreateBooks: true},
	}

	token, tokenID, err := GenerateAccessToken(subject, testSecret, week, issuedAt)
	require.NoError(t, err)
	require.NotEmpty(t, tokenID)

	claims, err := ValidateAccessToken(token, testSecret, issuedAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, tokenID, claims.ID)
	assert.True(t, claims.Permissions.CanCreateBooks)
	assert.False(t, claims.Permissions.CanEditBooks)
}

func TestValidityWindow(t *testing.T) {
	issuedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	token, _, err := GenerateAccessToken(Subject{UserID: "user-1"}, testSecret, week, issuedAt)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret, issuedAt.Add(6*24*time.Hour))
	assert.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret, issuedAt.Add(8*24*time.Hour))
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejects(t *testing.T) {
	now := time.Now()
	token, _, err := GenerateAccessToken(Subject{UserID: "user-1"}, testSecret, week, now)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512Token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{"empty", "", testSecret},
		{"malformed", "not-a-token", testSecret},
		{"wrong secret", token, "other-secret"},
		{"tampered", token + "x", testSecret},
		{"alg none", noneToken, testSecret},
		{"other hmac algorithm", hs512Token, testSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAccessToken(tt.token, tt.secret, now)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}
