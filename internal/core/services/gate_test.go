package services

import (
	"testing"

	"bookloan/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestGateBookCapabilities(t *testing.T) {
	gate := NewGate(false)
	creator := &domain.Identity{UserID: "u-1", Permissions: domain.Permissions{CanCreateBooks: true}}

	assert.NoError(t, gate.CanCreateBook(creator))
	assert.ErrorIs(t, gate.CanEditBook(creator), domain.ErrForbidden)
	assert.ErrorIs(t, gate.CanDisableBook(creator), domain.ErrForbidden)

	admin := &domain.Identity{UserID: "u-2", Permissions: domain.AllPermissions()}
	assert.NoError(t, gate.CanEditBook(admin))
	assert.NoError(t, gate.CanDisableBook(admin))
}

func TestGateUserRules(t *testing.T) {
	plain := &domain.Identity{UserID: "u-1"}
	editor := &domain.Identity{UserID: "u-2", Permissions: domain.Permissions{CanEditUsers: true}}
	disabler := &domain.Identity{UserID: "u-3", Permissions: domain.Permissions{CanDisableUsers: true}}

	tests := []struct {
		name  string
		check func(g *Gate) error
		want  error
	}{
		{"self read", func(g *Gate) error { return g.CanReadUser(plain, "u-1") }, nil},
		{"other read", func(g *Gate) error { return g.CanReadUser(plain, "u-9") }, domain.ErrForbidden},
		{"editor read", func(g *Gate) error { return g.CanReadUser(editor, "u-9") }, nil},
		{"self update", func(g *Gate) error { return g.CanUpdateUser(plain, "u-1", false) }, nil},
		{"self capability update", func(g *Gate) error { return g.CanUpdateUser(plain, "u-1", true) }, nil},
		{"other update", func(g *Gate) error { return g.CanUpdateUser(plain, "u-9", false) }, domain.ErrForbidden},
		{"editor update", func(g *Gate) error { return g.CanUpdateUser(editor, "u-9", true) }, nil},
		{"self disable", func(g *Gate) error { return g.CanDisableUser(plain, "u-1") }, nil},
		{"other disable", func(g *Gate) error { return g.CanDisableUser(plain, "u-9") }, domain.ErrForbidden},
		{"editor cannot disable", func(g *Gate) error { return g.CanDisableUser(editor, "u-9") }, domain.ErrForbidden},
		{"disabler disable", func(g *Gate) error { return g.CanDisableUser(disabler, "u-9") }, nil},
		{"no identity", func(g *Gate) error { return g.CanCreateBook(nil) }, domain.ErrUnauthenticated},
	}

	gate := NewGate(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(gate)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGateStrictCapabilityEdits(t *testing.T) {
	gate := NewGate(true)
	plain := &domain.Identity{UserID: "u-1"}
	editor := &domain.Identity{UserID: "u-2", Permissions: domain.Permissions{CanEditUsers: true}}

	assert.NoError(t, gate.CanUpdateUser(plain, "u-1", false))
	assert.ErrorIs(t, gate.CanUpdateUser(plain, "u-1", true), domain.ErrForbidden)
	assert.NoError(t, gate.CanUpdateUser(editor, "u-1", true))
}
