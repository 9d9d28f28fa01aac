package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/target/serverboard/internal/domain/auth"
	"github.com/target/serverboard/internal/ports"
)

const defaultSessionTTL = 8 * time.Hour

var (
	// ErrNoSession is returned for an empty session id.
	ErrNoSession = errors.New("no session")
	// ErrSessionExpired is returned when a stored session has lapsed. The
	// record is removed before returning.
	ErrSessionExpired = errors.New("session expired")
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.LoginProvider
	Sessions ports.SessionStore
	Roles    ports.RoleMapper
	// SessionTTL caps a session's lifetime. Zero means eight hours.
	SessionTTL time.Duration
	Now        func() time.Time
}

// AuthService signs users in through a LoginProvider and keeps their sessions.
type AuthService struct {
	provider ports.LoginProvider
	sessions ports.SessionStore
	roles    ports.RoleMapper
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &AuthService{
		provider: opts.Provider,
		sessions: opts.Sessions,
		roles:    opts.Roles,
		ttl:      ttl,
		now:      now,
	}
}

// BeginLogin starts the provider handshake.
func (s *AuthService) BeginLogin(ctx context.Context) (ports.LoginRequest, error) {
	req, err := s.provider.Begin(ctx)
	if err != nil {
		return ports.LoginRequest{}, fmt.Errorf("begin login: %w", err)
	}
	return req, nil
}

// CompleteLogin redeems the callback, maps the identity's groups to a role and
// stores a new session.
func (s *AuthService) CompleteLogin(ctx context.Context, cb ports.LoginCallback) (domainauth.Session, error) {
	if cb.Code == "" || cb.State == "" || cb.Nonce == "" {
		return domainauth.Session{}, errors.New("code, state and nonce are required")
	}

	id, err := s.provider.Exchange(ctx, cb)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("exchange code: %w", err)
	}
	if strings.TrimSpace(id.UserID) == "" {
		return domainauth.Session{}, errors.New("identity has no user id")
	}

	now := s.now()
	expires := now.Add(s.ttl)
	if !id.ExpiresAt.IsZero() {
		if !id.ExpiresAt.After(now) {
			return domainauth.Session{}, errors.New("identity already expired")
		}
		if id.ExpiresAt.Before(expires) {
			expires = id.ExpiresAt
		}
	}

	sess := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    id.UserID,
		FirstName: id.FirstName,
		LastName:  id.LastName,
		Email:     id.Email,
		Role:      s.roles.Map(id.Groups),
		ExpiresAt: expires,
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

// GetSession returns the live session for id.
func (s *AuthService) GetSession(ctx context.Context, id string) (*domainauth.Session, error) {
	if id == "" {
		return nil, ErrNoSession
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if !s.now().Before(sess.ExpiresAt) {
		if err := s.sessions.Delete(ctx, id); err != nil {
			return nil, errors.Join(ErrSessionExpired, fmt.Errorf("delete session: %w", err))
		}
		return nil, ErrSessionExpired
	}
	return &sess, nil
}

// Logout removes the session. An empty id is a no-op.
func (s *AuthService) Logout(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
