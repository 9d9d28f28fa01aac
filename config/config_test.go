package config

import (
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseAuthEnv(t *testing.T) {
	t.Setenv("AUTH_MODE", "oauth")
	t.Setenv("ADMIN_GROUP", "cn=admins,ou=groups,dc=example,dc=org")
	t.Setenv("USER_GROUP", "cn=users,ou=groups,dc=example,dc=org")
	t.Setenv("OAUTH_CLIENT_ID", "app-client")
	t.Setenv("OAUTH_CLIENT_SECRET", "super-secret")
	t.Setenv("OAUTH_REDIRECT_URL", "https://app.example.com/auth/callback")
	t.Setenv("OAUTH_ISSUER_URL", "https://login.example.com")
	t.Setenv("OAUTH_SCOPES", "openid email")
	t.Setenv("AUTH_SESSION_TTL", "2h")
	t.Setenv("DEV_AUTH_USER_ID", "dev-user")
	t.Setenv("DEV_AUTH_EMAIL", "dev@example.com")
	t.Setenv("DEV_AUTH_GROUPS", "admins;devs")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	expected := AuthConfig{
		Mode: AuthModeOAuth,
		OAuth: OAuthConfig{
			ClientID:     "app-client",
			ClientSecret: "super-secret",
			RedirectURL:  "https://app.example.com/auth/callback",
			Scopes:       []string{"openid", "email"},
			IssuerURL:    "https://login.example.com",
		},
		DevAuth: DevAuthConfig{
			UserID: "dev-user",
			Email:  "dev@example.com",
			Groups: []string{"admins", "devs"},
		},
		AdminGroup: "cn=admins,ou=groups,dc=example,dc=org",
		UserGroup:  "cn=users,ou=groups,dc=example,dc=org",
		SessionTTL: 2 * time.Hour,
	}

	if !reflect.DeepEqual(cfg.Auth, expected) {
		t.Fatalf("unexpected auth configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.Auth)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("ADMIN_GROUP", "admins")
	t.Setenv("USER_GROUP", "users")
	t.Setenv("AUTH_MODE", "mock")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Cache.ServerTTL != 5*time.Minute {
		t.Fatalf("expected default server TTL 5m, got %v", cfg.Cache.ServerTTL)
	}
	if !cfg.Cache.Enabled {
		t.Fatal("expected cache enabled by default")
	}
	if !cfg.Observability.Metrics.Enabled {
		t.Fatal("expected metrics enabled by default")
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestCacheConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name string
		in   time.Duration
		want time.Duration
	}{
		{name: "zero clamps up", in: 0, want: time.Second},
		{name: "in range kept", in: 90 * time.Second, want: 90 * time.Second},
		{name: "too long clamps down", in: 72 * time.Hour, want: 24 * time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CacheConfig{ServerTTL: tt.in}
			c.Sanitize()
			if c.ServerTTL != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, c.ServerTTL)
			}
		})
	}
}

func TestHTTPConfig_ValidateCookieDomain(t *testing.T) {
	tests := []struct {
		domain  string
		wantErr bool
	}{
		{domain: "", wantErr: false},
		{domain: "localhost", wantErr: false},
		{domain: "serverboard.example.com", wantErr: false},
		{domain: ".example.co.kr", wantErr: false},
		{domain: "  Example.COM ", wantErr: false},
		{domain: "co.kr", wantErr: true},
		{domain: "com", wantErr: true},
		{domain: "github.io", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			h := HTTPConfig{CookieDomain: tt.domain}
			h.Sanitize()
			err := h.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%q) error = %v, wantErr %v", tt.domain, err, tt.wantErr)
			}
		})
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	h := HTTPConfig{CookieDomain: " Example.COM "}
	h.Sanitize()
	if h.CookieDomain != "example.com" {
		t.Fatalf("expected normalized cookie domain, got %q", h.CookieDomain)
	}
	if h.ReadTimeout != 15*time.Second || h.WriteTimeout != 30*time.Second {
		t.Fatalf("expected default timeouts, got %v/%v", h.ReadTimeout, h.WriteTimeout)
	}
}

func TestAuthConfig_Validate(t *testing.T) {
	a := AuthConfig{Mode: AuthModeOAuth, OAuth: OAuthConfig{ClientID: "c"}}
	err := a.Validate()
	if err == nil || !strings.Contains(err.Error(), "OAUTH_ISSUER_URL") || !strings.Contains(err.Error(), "OAUTH_CLIENT_SECRET") {
		t.Fatalf("expected missing issuer and secret, got %v", err)
	}
	a.OAuth.IssuerURL, a.OAuth.ClientSecret = "https://login.example.com", "s"
	if err := a.Validate(); err != nil {
		t.Fatalf("expected valid oauth config, got %v", err)
	}
	if err := (&AuthConfig{Mode: AuthModeMock}).Validate(); err != nil {
		t.Fatalf("mock mode needs no issuer, got %v", err)
	}
}

func TestAuthConfig_SanitizeSessionTTL(t *testing.T) {
	for in, want := range map[time.Duration]time.Duration{
		0:                   5 * time.Minute,
		time.Hour:           time.Hour,
		30 * 24 * time.Hour: 7 * 24 * time.Hour,
	} {
		a := AuthConfig{SessionTTL: in}
		a.Sanitize()
		if a.SessionTTL != want {
			t.Errorf("SessionTTL %v: expected %v, got %v", in, want, a.SessionTTL)
		}
	}
}

func TestAuthMode_UnmarshalText(t *testing.T) {
	var m AuthMode
	if err := m.UnmarshalText([]byte(" Mock ")); err != nil || m != AuthModeMock {
		t.Fatalf("expected mock, got %q, %v", m, err)
	}
	if err := m.UnmarshalText([]byte("saml")); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}

func TestObservabilityConfig_LogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		c := ObservabilityConfig{LogLevel: in}
		c.Sanitize()
		if got := c.SlogLevel(); got != want {
			t.Errorf("LogLevel %q: expected %v, got %v", in, want, got)
		}
	}
}

func TestAppConfig_SanitizeDetectsNodeEnv(t *testing.T) {
	for in, want := range map[string]bool{"development": true, "DEV": true, "production": false, "": false} {
		t.Setenv("NODE_ENV", in)
		var cfg AppConfig
		cfg.Sanitize()
		if cfg.IsDev != want {
			t.Errorf("NODE_ENV %q: expected IsDev=%v", in, want)
		}
	}
}
