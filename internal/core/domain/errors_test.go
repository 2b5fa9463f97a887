package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"wrapped validation", fmt.Errorf("%w: title is required", ErrValidation), ErrValidation},
		{"user not found", ErrUserNotFound, ErrNotFound},
		{"book not found", fmt.Errorf("get: %w", ErrBookNotFound), ErrNotFound},
		{"expired token", ErrTokenExpired, ErrUnauthenticated},
		{"revoked token", ErrTokenRevoked, ErrUnauthenticated},
		{"email taken", ErrEmailAlreadyExists, ErrConflict},
		{"disabled", ErrAccountDisabled, ErrAccountDisabled},
		{"bad password", ErrInvalidCredential, ErrInvalidCredential},
		{"forbidden", ErrForbidden, ErrForbidden},
		{"unknown", errors.New("connection refused"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Kind(tt.err))
		})
	}
}

func TestIdentityIsSelf(t *testing.T) {
	id := &Identity{UserID: "u-1"}
	assert.True(t, id.IsSelf("u-1"))
	assert.False(t, id.IsSelf("u-2"))
	assert.False(t, (&Identity{}).IsSelf(""))

	var nilID *Identity
	assert.False(t, nilID.IsSelf("u-1"))
}
