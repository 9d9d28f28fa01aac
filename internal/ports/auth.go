// Package ports declares the boundaries the auth service drives. Adapters in
// internal/adapters implement them.
package ports

import (
	"context"

	domainauth "github.com/target/serverboard/internal/domain/auth"
)

// LoginRequest is where to send the browser to sign in, plus the values the
// callback has to echo back.
type LoginRequest struct {
	URL   string
	State string
	Nonce string
}

// LoginCallback carries what the identity provider sent back to /auth/callback.
type LoginCallback struct {
	Code  string
	State string
	Nonce string
}

// LoginProvider runs the sign-in handshake with an identity provider.
type LoginProvider interface {
	Begin(ctx context.Context) (LoginRequest, error)
	// Exchange redeems the callback and returns the verified identity.
	Exchange(ctx context.Context, cb LoginCallback) (domainauth.Identity, error)
}

// SessionStore persists sessions until they expire.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// RoleMapper turns provider groups into an application role.
type RoleMapper interface {
	Map(groups []string) domainauth.Role
}
