package httpx

import (
	"context"

	domainauth "github.com/target/serverboard/internal/domain/auth"
)

type (
	sessionKey struct{}
	csrfKey    struct{}
	browserKey struct{}
)

// SetSessionInContext attaches the session and its viewer identity to ctx.
// A nil session leaves ctx unchanged.
func SetSessionInContext(ctx context.Context, session *domainauth.Session) context.Context {
	if session == nil {
		return ctx
	}
	ctx = domainauth.WithViewer(ctx, session.Identity())
	return context.WithValue(ctx, sessionKey{}, session)
}

// SessionFrom returns the signed-in session carried by ctx.
func SessionFrom(ctx context.Context) (*domainauth.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*domainauth.Session)
	return s, ok && s != nil
}

// ViewerIdentity returns the identity of the signed-in viewer, or "" when anonymous.
func ViewerIdentity(ctx context.Context) string {
	if s, ok := SessionFrom(ctx); ok {
		return s.Identity()
	}
	return ""
}

func withCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfKey{}, token)
}

func csrfTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(csrfKey{}).(string)
	return token
}
