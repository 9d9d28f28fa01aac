package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/target/serverboard/config"
	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/data"
	"github.com/target/serverboard/internal/domain/serverview"
	"github.com/target/serverboard/internal/observability/metrics"
	"github.com/target/serverboard/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Servers   *service.ServerService
	Timetable *service.TimetableService
	Games     *service.GameService
	Auth      *service.AuthService
	// Tokens orders server page loads; shared across replicas when Redis is configured.
	Tokens  serverview.TokenSource
	Metrics *metrics.Recorder
	// Readiness checks run by /readyz, keyed by dependency name.
	Readiness map[string]func(context.Context) error
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Servers   *data.ServerRepo
	Members   *data.MemberRepo
	Timetable *data.TimetableRepo
	Games     *data.GameRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Servers:   data.NewServerRepo(db),
		Members:   data.NewMemberRepo(db),
		Timetable: data.NewTimetableRepo(db),
		Games:     data.NewGameRepo(db),
	}
}

// buildMetrics returns the Prometheus recorder, or nil when metrics are disabled.
func buildMetrics(cfg config.ObservabilityConfig) *metrics.Recorder {
	if !cfg.Metrics.Enabled {
		return nil
	}
	return metrics.New()
}

// newServerCache returns the read-through server cache, or nil when caching is off or Redis is absent.
func newServerCache(client redis.UniversalClient, cfg config.CacheConfig) *core.ServerCache {
	if client == nil || !cfg.Enabled {
		return nil
	}
	return core.NewServerCache(core.ServerCacheOptions{
		Cache: data.NewRedisCacheRepo(client),
		TTL:   cfg.ServerTTL,
	})
}

// newTokenSource prefers Redis so every replica agrees on the latest page load.
//
//nolint:ireturn // the token source is chosen at runtime.
func newTokenSource(client redis.UniversalClient) serverview.TokenSource {
	if client == nil {
		return serverview.NewMemoryTokens()
	}
	return data.NewRedisTokenSource(client, data.DefaultViewTokenTTL)
}

func newServerService(
	repos *serviceRepositories,
	cache *core.ServerCache,
	rec *metrics.Recorder,
	logger *slog.Logger,
) *service.ServerService {
	cacheCfg := service.ServerCacheConfig{Cache: cache}
	if rec != nil {
		cacheCfg.Observer = rec
	}
	return service.NewServerService(service.ServerServiceOptions{
		Repos: service.ServerRepos{
			Servers:   repos.Servers,
			Members:   repos.Members,
			Timetable: repos.Timetable,
			Games:     repos.Games,
		},
		Cache:  cacheCfg,
		Logger: logger,
	})
}

func readinessChecks(db *sql.DB, client redis.UniversalClient) map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if db != nil {
		checks["postgres"] = db.PingContext
	}
	if client != nil {
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
	}
	return checks
}

// NewServices initializes all application services.
func NewServices(ctx context.Context, deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil {
		return ServiceContainer{}, nil
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config
	if cfg == nil {
		cfg = &config.AppConfig{}
	}

	auth, err := BuildAuthService(ctx, AuthConfig{
		Auth:        cfg.Auth,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth: %w", err)
	}

	repos := buildRepositories(deps.DB)
	rec := buildMetrics(cfg.Observability)
	cache := newServerCache(deps.RedisClient, cfg.Cache)
	if cache != nil {
		logger.Info("server cache enabled", "ttl", cfg.Cache.ServerTTL)
	}

	return ServiceContainer{
		Servers: newServerService(repos, cache, rec, logger),
		Timetable: service.NewTimetableService(service.TimetableServiceOptions{
			Entries: repos.Timetable,
			Members: repos.Members,
			Logger:  logger,
		}),
		Games: service.NewGameService(service.GameServiceOptions{
			Games:   repos.Games,
			Members: repos.Members,
		}),
		Auth:      auth,
		Tokens:    newTokenSource(deps.RedisClient),
		Metrics:   rec,
		Readiness: readinessChecks(deps.DB, deps.RedisClient),
	}, nil
}
