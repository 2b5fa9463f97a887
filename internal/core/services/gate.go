package services

import (
	"bookloan/internal/core/domain"
	"bookloan/internal/pkg/metrics"
)

// Gated operations, used as the metrics label for denials
const (
	OpCreateBook  = "create_book"
	OpEditBook    = "edit_book"
	OpDisableBook = "disable_book"
	OpReadUser    = "read_user"
	OpUpdateUser  = "update_user"
	OpDisableUser = "disable_user"
)

// Gate decides whether an identity may perform an operation. Decisions are
// made only from the permissions carried by the identity.
type Gate struct {
	strictCapabilityEdits bool
}

// NewGate creates a gate. With strictCapabilityEdits set, changing capability
// flags requires canEditUsers even on the caller's own account.
func NewGate(strictCapabilityEdits bool) *Gate {
	return &Gate{strictCapabilityEdits: strictCapabilityEdits}
}

// CanCreateBook requires canCreateBooks
func (g *Gate) CanCreateBook(actor *domain.Identity) error {
	return g.decide(OpCreateBook, actor, func(p domain.Permissions) bool {
		return p.CanCreateBooks
	})
}

// CanEditBook requires canEditBooks
func (g *Gate) CanEditBook(actor *domain.Identity) error {
	return g.decide(OpEditBook, actor, func(p domain.Permissions) bool {
		return p.CanEditBooks
	})
}

// CanDisableBook requires canDisableBooks
func (g *Gate) CanDisableBook(actor *domain.Identity) error {
	return g.decide(OpDisableBook, actor, func(p domain.Permissions) bool {
		return p.CanDisableBooks
	})
}

// CanReadUser allows the user themself or a holder of canEditUsers
func (g *Gate) CanReadUser(actor *domain.Identity, targetID string) error {
	return g.decide(OpReadUser, actor, func(p domain.Permissions) bool {
		return actor.IsSelf(targetID) || p.CanEditUsers
	})
}

// CanUpdateUser allows the user themself or a holder of canEditUsers.
// In strict mode a change to capability flags always needs canEditUsers.
func (g *Gate) CanUpdateUser(actor *domain.Identity, targetID string, changesCapabilities bool) error {
	return g.decide(OpUpdateUser, actor, func(p domain.Permissions) bool {
		if g.strictCapabilityEdits && changesCapabilities {
			return p.CanEditUsers
		}
		return actor.IsSelf(targetID) || p.CanEditUsers
	})
}

// CanDisableUser allows the user themself or a holder of canDisableUsers
func (g *Gate) CanDisableUser(actor *domain.Identity, targetID string) error {
	return g.decide(OpDisableUser, actor, func(p domain.Permissions) bool {
		return actor.IsSelf(targetID) || p.CanDisableUsers
	})
}

func (g *Gate) decide(op string, actor *domain.Identity, allow func(domain.Permissions) bool) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	if !allow(actor.Permissions) {
		metrics.AuthorizationDenialsTotal.WithLabelValues(op).Inc()
		return domain.ErrForbidden
	}
	return nil
}
