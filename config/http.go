package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"
)

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// BaseURL is the base URL of the application (e.g., "https://app.example.com").
	BaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// ReadTimeout and WriteTimeout bound a single request.
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT"  envDefault:"15s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.ReadTimeout <= 0 {
		h.ReadTimeout = 15 * time.Second
	}
	if h.WriteTimeout <= 0 {
		h.WriteTimeout = 30 * time.Second
	}
	h.CookieDomain = strings.ToLower(strings.TrimSpace(h.CookieDomain))
}

// Validate rejects a cookie domain that browsers would refuse: a bare public
// suffix such as "co.kr" or "github.io".
func (h *HTTPConfig) Validate() error {
	domain := strings.TrimPrefix(h.CookieDomain, ".")
	if domain == "" || domain == "localhost" {
		return nil
	}
	suffix, _ := publicsuffix.PublicSuffix(domain)
	if suffix == domain {
		return fmt.Errorf("APP_COOKIE_DOMAIN %q is a public suffix", h.CookieDomain)
	}
	if _, err := publicsuffix.EffectiveTLDPlusOne(domain); err != nil {
		return fmt.Errorf("APP_COOKIE_DOMAIN %q: %w", h.CookieDomain, err)
	}
	return nil
}
