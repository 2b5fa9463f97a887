package domain

import "time"

// Permissions is the capability set of a user. The same value is stored on
// the user record, embedded in tokens and consumed by every gate check.
type Permissions struct {
	CanCreateBooks  bool `json:"canCreateBooks"`
	CanEditBooks    bool `json:"canEditBooks"`
	CanDisableBooks bool `json:"canDisableBooks"`
	CanEditUsers    bool `json:"canEditUsers"`
	CanDisableUsers bool `json:"canDisableUsers"`
}

// AllPermissions returns a capability set with every flag granted.
func AllPermissions() Permissions {
	return Permissions{
		CanCreateBooks:  true,
		CanEditBooks:    true,
		CanDisableBooks: true,
		CanEditUsers:    true,
		CanDisableUsers: true,
	}
}

// Identity is a verified caller. Permissions are the snapshot taken when the
// token was issued, not the current state of the user record.
type Identity struct {
	UserID      string
	Email       string
	Permissions Permissions
	TokenID     string
	ExpiresAt   time.Time
}

// IsSelf reports whether the identity refers to the given user.
func (i *Identity) IsSelf(userID string) bool {
	return i != nil && i.UserID != "" && i.UserID == userID
}

// IssuedToken is a freshly signed capability token.
type IssuedToken struct {
	Token     string
	TokenID   string
	ExpiresAt time.Time
}
