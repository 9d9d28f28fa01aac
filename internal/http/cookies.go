package httpx

import (
	"net/http"
	"strings"
	"time"
)

const (
	sessionCookie  = "session_id"
	stateCookie    = "oauth_state"
	nonceCookie    = "oauth_nonce"
	returnCookie   = "post_login_redirect"
	oauthCookieTTL = 10 * time.Minute
)

// cookieJar writes HttpOnly, SameSite=Lax cookies scoped to one domain.
type cookieJar struct {
	domain string
}

func (c cookieJar) set(w http.ResponseWriter, r *http.Request, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.domain,
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
	})
}

// clear expires name with the same attributes it was set with.
func (c cookieJar) clear(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     "/",
		Domain:   c.domain,
		HttpOnly: true,
		Secure:   isHTTPS(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

// isHTTPS reports whether the client connected over TLS, directly or through a proxy.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	for _, proto := range strings.Split(r.Header.Get("X-Forwarded-Proto"), ",") {
		if strings.EqualFold(strings.TrimSpace(proto), "https") {
			return true
		}
	}
	return false
}
