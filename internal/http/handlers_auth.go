package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/target/serverboard/internal/domain/auth"
	"github.com/target/serverboard/internal/ports"
)

// Authenticator is the auth service surface the login routes drive.
type Authenticator interface {
	SessionLookup
	BeginLogin(ctx context.Context) (ports.LoginRequest, error)
	CompleteLogin(ctx context.Context, cb ports.LoginCallback) (domainauth.Session, error)
	Logout(ctx context.Context, sessionID string) error
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc     Authenticator
	Cookies cookieJar
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Login starts the sign-in handshake and sends the browser to the identity provider.
// GET /auth/login?redirect_uri=<optional_redirect>.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))

	req, err := h.Svc.BeginLogin(r.Context())
	if err != nil {
		h.logger().ErrorContext(r.Context(), "begin login failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "login_failed", "could not start sign-in")
		return
	}

	h.Cookies.set(w, r, stateCookie, req.State, oauthCookieTTL)
	h.Cookies.set(w, r, nonceCookie, req.Nonce, oauthCookieTTL)
	h.Cookies.set(w, r, returnCookie, redirect, oauthCookieTTL)
	http.Redirect(w, r, req.URL, http.StatusFound)
}

// Callback redeems the provider's code, starts a session and returns the browser
// to where it was going.
// GET /auth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	code, state := q.Get("code"), q.Get("state")
	switch {
	case code == "":
		WriteError(w, http.StatusBadRequest, "missing_code", "authorization code is required")
		return
	case state == "":
		WriteError(w, http.StatusBadRequest, "missing_state", "state parameter is required")
		return
	}
	if c, err := r.Cookie(stateCookie); err != nil || c.Value != state {
		WriteError(w, http.StatusBadRequest, "invalid_state", "invalid or missing state parameter")
		return
	}
	nonce, err := r.Cookie(nonceCookie)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "missing_nonce", "missing nonce parameter")
		return
	}

	sess, err := h.Svc.CompleteLogin(r.Context(), ports.LoginCallback{Code: code, State: state, Nonce: nonce.Value})
	if err != nil {
		h.logger().WarnContext(r.Context(), "complete login failed", "error", err)
		WriteError(w, http.StatusUnauthorized, "login_completion_failed", "sign-in could not be completed")
		return
	}

	h.Cookies.set(w, r, sessionCookie, sess.ID, time.Until(sess.ExpiresAt))
	h.Cookies.clear(w, r, stateCookie)
	h.Cookies.clear(w, r, nonceCookie)

	redirect := "/"
	if c, err := r.Cookie(returnCookie); err == nil {
		redirect = safeRedirectPath(c.Value)
		h.Cookies.clear(w, r, returnCookie)
	}
	http.Redirect(w, r, redirect, http.StatusFound)
}

// Logout ends the server-side session and sends the browser to the signed-out page.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := h.Svc.Logout(r.Context(), c.Value); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	h.Cookies.clear(w, r, sessionCookie)

	redirect := r.FormValue("redirect_uri")
	if redirect == "" {
		redirect = r.URL.Query().Get("redirect_uri")
	}
	signedOut := (&url.URL{
		Path:     "/auth/signed-out",
		RawQuery: url.Values{"redirect_uri": {safeRedirectPath(redirect)}}.Encode(),
	}).String()

	if IsHTMX(r) {
		HTMX(w).Redirect(signedOut)
		return
	}
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "success", "redirect_to": signedOut})
		return
	}
	http.Redirect(w, r, signedOut, http.StatusFound)
}

// Status reports whether the caller has a live session.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	sess, err := h.Svc.GetSession(r.Context(), c.Value)
	if err != nil {
		h.Cookies.clear(w, r, sessionCookie)
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          meBody(sess),
		"expires_at":    sess.ExpiresAt,
	})
}

// Me returns the signed-in viewer. It runs behind RequireAuth.
// GET /api/auth/me.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "authentication_required", "authentication required")
		return
	}
	WriteJSON(w, http.StatusOK, meBody(sess))
}

func meBody(s *domainauth.Session) map[string]any {
	return map[string]any{
		"id":           s.Identity(),
		"display_name": s.DisplayName(),
		"email":        s.Email,
		"role":         s.Role,
		"expires_at":   s.ExpiresAt,
	}
}

// safeRedirectPath keeps redirects on this origin: candidate must be a relative
// path starting with a single "/". Anything else becomes "/".
func safeRedirectPath(candidate string) string {
	if candidate == "" || strings.HasPrefix(candidate, "//") || strings.HasPrefix(candidate, `/\`) {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
