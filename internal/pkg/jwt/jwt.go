package jwt

import (
	"errors"
	"time"

	"bookloan/internal/core/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is written into the iss claim of every token.
const Issuer = "bookloan"

var (
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// Claims represents the capability token claims
type Claims struct {
	UserID      string             `json:"id"`
	Email       string             `json:"email"`
	Permissions domain.Permissions `json:"permissions"`
	jwt.RegisteredClaims
}

// Subject is the user data captured into a token
type Subject struct {
	UserID      string
	Email       string
	Permissions domain.Permissions
}

// GenerateAccessToken signs a token for subject, valid for ttl from issuedAt.
// It returns the signed token together with its unique token ID.
func GenerateAccessToken(subject Subject, secret string, ttl time.Duration, issuedAt time.Time) (string, string, error) {
	tokenID := uuid.NewString()
	claims := Claims{
		UserID:      subject.UserID,
		Email:       subject.Email,
		Permissions: subject.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    Issuer,
			Subject:   subject.UserID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return signed, tokenID, nil
}

// ValidateAccessToken validates a token as of now and returns its claims
func ValidateAccessToken(tokenString, secret string, now time.Time) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	},
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != "" {
		return claims, nil
	}

	return nil, ErrTokenInvalid
}
