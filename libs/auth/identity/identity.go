// Package identity holds the decoded caller identity shared by the auth
// middleware, the token generator and the services.
package identity

import (
	"context"
	"fmt"
)

// Role is the authorization role of a user
type Role string

// Role constants
const (
	RoleAdmin   Role = "admin"
	RoleCreator Role = "creator"
	RoleViewer  Role = "viewer"
)

// ParseRole converts a raw string into a known Role.
//
// Unknown values are rejected so a token or a row carrying a foreign role
// can never be mistaken for a valid one.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleCreator:
		return RoleCreator, nil
	case RoleViewer:
		return RoleViewer, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// IsElevated reports whether the role may mutate resources it does not own
func (r Role) IsElevated() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleCreator, RoleViewer:
		return false
	default:
		return false
	}
}

// Identity is the authenticated caller attached to a request
type Identity struct {
	UserID int
	Role   Role
}

// CanManage reports whether the identity may mutate a resource owned by ownerID
func (i Identity) CanManage(ownerID int) bool {
	return i.UserID == ownerID || i.Role.IsElevated()
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext retrieves the identity from context
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
