package domain

import "errors"

// Error kinds. Every failure a service returns wraps exactly one of these,
// and the HTTP layer maps each kind to a single status code.
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrNotFound        = errors.New("resource not found")
	ErrInternal        = errors.New("internal server error")
)

// Authentication errors
var (
	ErrAccountDisabled   = errors.New("account is disabled")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenRevoked      = errors.New("token revoked")
)

// UserErrors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

// BookErrors
var (
	ErrBookNotFound = errors.New("book not found")
)

// Kind reports which error kind err belongs to. Errors that match none of
// the known kinds are Internal.
func Kind(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrValidation):
		return ErrValidation
	case errors.Is(err, ErrAccountDisabled):
		return ErrAccountDisabled
	case errors.Is(err, ErrInvalidCredential):
		return ErrInvalidCredential
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenRevoked):
		return ErrUnauthenticated
	case errors.Is(err, ErrForbidden):
		return ErrForbidden
	case errors.Is(err, ErrConflict), errors.Is(err, ErrEmailAlreadyExists):
		return ErrConflict
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound), errors.Is(err, ErrBookNotFound):
		return ErrNotFound
	default:
		return ErrInternal
	}
}
