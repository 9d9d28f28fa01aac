package httpx

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

const (
	csrfCookieName = "csrf_token"
	csrfHeaderName = "X-Csrf-Token"
	csrfFormField  = "csrf_token"
	csrfTokenBytes = 32
	csrfCookieTTL  = 12 * time.Hour
)

// CSRFConfig configures CSRFProtection.
type CSRFConfig struct {
	CookieDomain string
}

// CSRFProtection implements the double-submit cookie check. The token lives in a
// cookie readable by the page; unsafe methods must echo it in the X-Csrf-Token
// header or the csrf_token form field.
func CSRFProtection(cfg CSRFConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var token string
			if c, err := r.Cookie(csrfCookieName); err == nil {
				token = c.Value
			}
			if token == "" {
				var err error
				if token, err = newCSRFToken(); err != nil {
					http.Error(w, "unable to issue CSRF token", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     csrfCookieName,
					Value:    token,
					Path:     "/",
					Domain:   cfg.CookieDomain,
					Secure:   isHTTPS(r),
					SameSite: http.SameSiteStrictMode,
					MaxAge:   int(csrfCookieTTL.Seconds()),
				})
			}

			r = r.WithContext(withCSRFToken(r.Context(), token))
			if !safeMethod(r.Method) && !csrfMatches(r, token) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetCSRFToken returns the token to embed in forms rendered for r.
func GetCSRFToken(r *http.Request) string {
	return csrfTokenFrom(r.Context())
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	default:
		return false
	}
}

// csrfMatches compares the submitted token against want in constant time. The
// body is only parsed for form submissions.
func csrfMatches(r *http.Request, want string) bool {
	got := r.Header.Get(csrfHeaderName)
	if got == "" {
		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data") {
			got = r.FormValue(csrfFormField)
		}
	}
	return got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(want)) == 1
}

func newCSRFToken() (string, error) {
	b := make([]byte, csrfTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
