// Package devauth signs every visitor in as one configured user. It exists for
// local runs without an identity provider.
package devauth

import (
	"context"
	"errors"
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/target/serverboard/internal/domain/auth"
	"github.com/target/serverboard/internal/ports"
)

// Code is the only authorization code Exchange accepts.
const Code = "dev"

// Config describes the fixed identity.
type Config struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Groups    []string
	// Lifetime of each issued identity. Zero means eight hours.
	Lifetime time.Duration
}

// Provider implements ports.LoginProvider by bouncing straight to /auth/callback.
type Provider struct {
	cfg Config
	now func() time.Time
}

// NewProvider validates cfg.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("devauth: user id is required")
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = 8 * time.Hour
	}
	cfg.Groups = slices.Clone(cfg.Groups)
	return &Provider{cfg: cfg, now: time.Now}, nil
}

// Begin returns the local callback URL.
func (p *Provider) Begin(context.Context) (ports.LoginRequest, error) {
	state, nonce := uuid.NewString(), uuid.NewString()
	q := url.Values{"code": {Code}, "state": {state}}
	return ports.LoginRequest{URL: "/auth/callback?" + q.Encode(), State: state, Nonce: nonce}, nil
}

// Exchange returns the configured identity with a fresh expiry.
func (p *Provider) Exchange(_ context.Context, cb ports.LoginCallback) (domainauth.Identity, error) {
	if cb.Code != Code {
		return domainauth.Identity{}, errors.New("devauth: unexpected code")
	}
	return domainauth.Identity{
		UserID:    p.cfg.UserID,
		FirstName: p.cfg.FirstName,
		LastName:  p.cfg.LastName,
		Email:     p.cfg.Email,
		Groups:    slices.Clone(p.cfg.Groups),
		ExpiresAt: p.now().Add(p.cfg.Lifetime),
	}, nil
}
