package httpx

import (
	"context"
	"net/http"
	"net/url"

	domainauth "github.com/target/serverboard/internal/domain/auth"
)

const msgAuthUnavailable = "authentication is not configured"

// SessionLookup resolves a session id to a live session.
type SessionLookup interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// sessionFromCookie returns the session named by the session cookie, or nil.
func sessionFromCookie(r *http.Request, lookup SessionLookup) *domainauth.Session {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return nil
	}
	s, err := lookup.GetSession(r.Context(), c.Value)
	if err != nil {
		return nil
	}
	return s
}

//nolint:gochecknoglobals // static read-only lookup
var roleRank = map[domainauth.Role]int{
	domainauth.RoleGuest: 1,
	domainauth.RoleUser:  2,
	domainauth.RoleAdmin: 3,
}

// roleAtLeast reports whether have ranks at or above want. Unknown roles rank below everything.
func roleAtLeast(have, want domainauth.Role) bool {
	return roleRank[have] > 0 && roleRank[have] >= roleRank[want]
}

// denyFunc answers a rejected request with status 401 or 403.
type denyFunc func(w http.ResponseWriter, r *http.Request, status int)

// sessionGuard admits requests carrying a session whose role is at least role.
// An empty role admits any session.
type sessionGuard struct {
	lookup SessionLookup
	role   domainauth.Role
	deny   denyFunc
}

func (g sessionGuard) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := sessionFromCookie(r, g.lookup)
		switch {
		case s == nil:
			g.deny(w, r, http.StatusUnauthorized)
		case g.role != "" && !roleAtLeast(s.Role, g.role):
			g.deny(w, r, http.StatusForbidden)
		default:
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), s)))
		}
	})
}

func denyJSON(w http.ResponseWriter, _ *http.Request, status int) {
	if status == http.StatusForbidden {
		WriteError(w, status, "insufficient_permissions", "insufficient permissions")
		return
	}
	WriteError(w, http.StatusUnauthorized, "authentication_required", "authentication required")
}

func denyBrowser(w http.ResponseWriter, r *http.Request, status int) {
	switch {
	case !IsBrowserRequest(r):
		denyJSON(w, r, status)
	case status == http.StatusUnauthorized:
		redirectToLogin(w, r)
	default:
		http.Error(w, "access denied", http.StatusForbidden)
	}
}

// RequireAuth rejects API requests without a session with a JSON 401.
func RequireAuth(lookup SessionLookup) func(http.Handler) http.Handler {
	return sessionGuard{lookup: lookup, deny: denyJSON}.wrap
}

// RequireRole rejects API requests without a session (401) or below role (403).
func RequireRole(lookup SessionLookup, role domainauth.Role) func(http.Handler) http.Handler {
	return sessionGuard{lookup: lookup, role: role, deny: denyJSON}.wrap
}

// RequireAuthBrowser sends anonymous browsers to sign in and answers other
// callers like RequireAuth.
func RequireAuthBrowser(lookup SessionLookup) func(http.Handler) http.Handler {
	return sessionGuard{lookup: lookup, deny: denyBrowser}.wrap
}

// authUnavailable stands in for the session guards when no auth service is
// configured: every guarded route answers 503 and never reaches its handler.
func authUnavailable(http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsBrowserRequest(r) {
			http.Error(w, msgAuthUnavailable, http.StatusServiceUnavailable)
			return
		}
		WriteError(w, http.StatusServiceUnavailable, "auth_unavailable", msgAuthUnavailable)
	})
}

// redirectToLogin sends browsers to the login page. htmx requests are sent to the
// signed-out page with a full navigation instead of swapping a login form into the page.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	query := url.Values{"redirect_uri": {returnPath(r)}}.Encode()
	if IsHTMX(r) {
		HTMX(w).Redirect("/auth/signed-out?" + query)
		return
	}
	http.Redirect(w, r, "/auth/login?"+query, http.StatusSeeOther)
}

// returnPath is where the viewer lands after signing in. For htmx requests that
// is the page they were on, not the fragment URL.
func returnPath(r *http.Request) string {
	if IsHTMX(r) {
		for _, raw := range []string{r.Header.Get("Hx-Current-Url"), r.Header.Get("Referer")} {
			if raw == "" {
				continue
			}
			u, err := url.Parse(raw)
			if err != nil || (u.Host != "" && !u.IsAbs()) {
				continue
			}
			return safeRedirectPath(u.RequestURI())
		}
	}
	return safeRedirectPath(r.URL.RequestURI())
}
