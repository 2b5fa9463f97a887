package handlers

import (
	"errors"
	"strings"
	"time"

	"bookloan/internal/core/domain"
	"bookloan/internal/pkg/logger"
	"bookloan/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// writeError maps a service error to its status code. Internal errors are
// logged and answered with a generic message.
func writeError(c *fiber.Ctx, err error, action string) error {
	switch domain.Kind(err) {
	case domain.ErrValidation:
		return response.BadRequest(c, validationMessage(err))
	case domain.ErrUnauthenticated:
		return response.Unauthorized(c, "Authentication required")
	case domain.ErrInvalidCredential:
		return response.Unauthorized(c, "Invalid credentials")
	case domain.ErrForbidden:
		return response.Forbidden(c, "You don't have permission to perform this action")
	case domain.ErrAccountDisabled:
		return response.Forbidden(c, "Account is disabled")
	case domain.ErrNotFound:
		switch {
		case errors.Is(err, domain.ErrBookNotFound):
			return response.NotFound(c, "Book not found")
		case errors.Is(err, domain.ErrUserNotFound):
			return response.NotFound(c, "User not found")
		default:
			return response.NotFound(c, "Resource not found")
		}
	case domain.ErrConflict:
		return response.Conflict(c, "Email already registered")
	default:
		logger.With("http").
			WithError(err).
			WithField("method", c.Method()).
			WithField("path", c.Path()).
			Error(action + " failed")
		return response.InternalServerError(c, "Failed to "+action)
	}
}

// validationMessage strips the kind prefix from a wrapped validation error
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	if msg == "" || msg == domain.ErrValidation.Error() {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// dateLayouts are accepted for publishedAt
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errors.New("publishedAt must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
}
