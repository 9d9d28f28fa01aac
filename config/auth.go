package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode selects how users sign in.
type AuthMode string

const (
	// AuthModeOAuth signs in through an OpenID Connect issuer.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock signs everyone in as DEV_AUTH_USER_ID. Local use only.
	AuthModeMock AuthMode = "mock"
)

func (a *AuthMode) UnmarshalText(text []byte) error {
	switch v := AuthMode(strings.ToLower(strings.TrimSpace(string(text)))); v {
	case AuthModeOAuth, AuthModeMock:
		*a = v
		return nil
	default:
		return fmt.Errorf("AUTH_MODE %q: want oauth or mock", string(text))
	}
}

// OAuthConfig points at the OIDC issuer. Endpoints come from its discovery
// document.
type OAuthConfig struct {
	IssuerURL    string   `env:"ISSUER_URL"`
	ClientID     string   `env:"CLIENT_ID"`
	ClientSecret string   `env:"CLIENT_SECRET"`
	RedirectURL  string   `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scopes       []string `env:"SCOPES"        envDefault:"openid profile email groups" envSeparator:" "`
}

// DevAuthConfig is the identity AuthModeMock hands out.
type DevAuthConfig struct {
	UserID    string   `env:"USER_ID"    envDefault:"dev-user"`
	FirstName string   `env:"FIRST_NAME"`
	LastName  string   `env:"LAST_NAME"`
	Email     string   `env:"EMAIL"      envDefault:"dev@example.com"`
	Groups    []string `env:"GROUPS"     envDefault:"admins" envSeparator:";"`
}

type AuthConfig struct {
	Mode    AuthMode      `env:"AUTH_MODE" envDefault:"oauth"`
	OAuth   OAuthConfig   `envPrefix:"OAUTH_"`
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// Group names that map to the admin and user roles. Anyone else is a guest.
	AdminGroup string `env:"ADMIN_GROUP,required"`
	UserGroup  string `env:"USER_GROUP,required"`

	// SessionTTL caps how long a sign-in lasts.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"8h"`
}

// Sanitize bounds SessionTTL to between five minutes and a week.
func (a *AuthConfig) Sanitize() {
	switch {
	case a.SessionTTL < 5*time.Minute:
		a.SessionTTL = 5 * time.Minute
	case a.SessionTTL > 7*24*time.Hour:
		a.SessionTTL = 7 * 24 * time.Hour
	}
}

// Validate checks that oauth mode has an issuer and client credentials.
func (a *AuthConfig) Validate() error {
	if a.Mode != AuthModeOAuth {
		return nil
	}
	var missing []string
	if a.OAuth.IssuerURL == "" {
		missing = append(missing, "OAUTH_ISSUER_URL")
	}
	if a.OAuth.ClientID == "" {
		missing = append(missing, "OAUTH_CLIENT_ID")
	}
	if a.OAuth.ClientSecret == "" {
		missing = append(missing, "OAUTH_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("AUTH_MODE=oauth requires %s", strings.Join(missing, ", "))
	}
	return nil
}
