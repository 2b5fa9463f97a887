package middleware

import (
	"errors"
	"strings"

	"bookloan/internal/core/domain"
	"bookloan/internal/core/services"
	"bookloan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const identityKey = "identity"

// AuthMiddleware verifies the bearer token and stores the caller's identity
func AuthMiddleware(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Extract token
		accessToken := bearerToken(c)
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 2. Verify signature, expiry and revocation
		identity, err := tokens.Verify(c.Context(), accessToken)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTokenExpired):
				return response.Unauthorized(c, "Access token expired")
			case errors.Is(err, domain.ErrTokenRevoked):
				return response.Unauthorized(c, "Access token revoked")
			case errors.Is(err, domain.ErrUnauthenticated):
				return response.Unauthorized(c, "Invalid access token")
			default:
				return response.InternalServerError(c, "Failed to verify access token")
			}
		}

		// 3. Set identity in context
		c.Locals(identityKey, identity)

		return c.Next()
	}
}

// Identity returns the verified caller, or nil on unauthenticated routes
func Identity(c *fiber.Ctx) *domain.Identity {
	identity, _ := c.Locals(identityKey).(*domain.Identity)
	return identity
}

// bearerToken reads the Authorization header, falling back to the access_token cookie
func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return c.Cookies("access_token")
}
