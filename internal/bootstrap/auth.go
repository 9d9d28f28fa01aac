package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/serverboard/config"
	"github.com/target/serverboard/internal/adapters/authroles"
	"github.com/target/serverboard/internal/adapters/devauth"
	"github.com/target/serverboard/internal/adapters/oidc"
	redisadapter "github.com/target/serverboard/internal/adapters/redis"
	"github.com/target/serverboard/internal/ports"
	"github.com/target/serverboard/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildAuthService wires the login provider for cfg.Auth.Mode. It returns nil
// without error when Redis is absent; the router then refuses every protected
// route.
func BuildAuthService(ctx context.Context, cfg AuthConfig) (*service.AuthService, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RedisClient == nil {
		logger.Warn("auth disabled: sessions need redis", "mode", cfg.Auth.Mode)
		return nil, nil
	}

	prov, err := buildLoginProvider(ctx, cfg.Auth)
	if err != nil {
		return nil, err
	}
	logger.Info("auth enabled", "mode", cfg.Auth.Mode, "session_ttl", cfg.Auth.SessionTTL)
	return service.NewAuthService(service.AuthServiceOptions{
		Provider:   prov,
		Sessions:   redisadapter.NewSessionStore(cfg.RedisClient, "session:"),
		Roles:      authroles.GroupMapper{AdminGroup: cfg.Auth.AdminGroup, UserGroup: cfg.Auth.UserGroup},
		SessionTTL: cfg.Auth.SessionTTL,
	}), nil
}

//nolint:ireturn // provider is picked by mode.
func buildLoginProvider(ctx context.Context, a config.AuthConfig) (ports.LoginProvider, error) {
	switch a.Mode {
	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:    a.DevAuth.UserID,
			FirstName: a.DevAuth.FirstName,
			LastName:  a.DevAuth.LastName,
			Email:     a.DevAuth.Email,
			Groups:    a.DevAuth.Groups,
			Lifetime:  a.SessionTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("dev auth: %w", err)
		}
		return prov, nil
	case config.AuthModeOAuth:
		prov, err := oidc.NewProvider(ctx, oidc.Config{
			IssuerURL:    a.OAuth.IssuerURL,
			ClientID:     a.OAuth.ClientID,
			ClientSecret: a.OAuth.ClientSecret,
			RedirectURL:  a.OAuth.RedirectURL,
			Scopes:       a.OAuth.Scopes,
		})
		if err != nil {
			return nil, fmt.Errorf("oidc: %w", err)
		}
		return prov, nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", a.Mode)
	}
}
