// Package auth holds the session and identity records shared by the auth
// service, its adapters and the HTTP guards.
package auth

import (
	"strings"
	"time"
)

// Role gates admin-only routes. Server ownership and membership are checked separately.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// Identity is what a login provider vouches for after a successful callback.
type Identity struct {
	// UserID is the provider's stable subject, later compared against Server.Owner.
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Groups    []string
	// ExpiresAt caps the session lifetime at the provider token's expiry.
	ExpiresAt time.Time
}

// Session is the stored login, keyed by the opaque ID in the session cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity returns the viewer identity compared against Server.Owner and membership rows.
func (s Session) Identity() string { return strings.TrimSpace(s.UserID) }

// DisplayName returns "First Last" when known, otherwise the user id.
func (s Session) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(s.FirstName) + " " + strings.TrimSpace(s.LastName))
	if name == "" {
		return s.Identity()
	}
	return name
}
