package bootstrap

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/target/serverboard/config"
	httpx "github.com/target/serverboard/internal/http"
)

const (
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	shutdownWaitTimeout = 15 * time.Second
)

// ServiceOrchestrationConfig is what RunServicesWithShutdown serves.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// routerServices maps the container onto the router's dependencies. Interface
// fields are only assigned from non-nil services so the router sees a true nil.
func routerServices(appCfg *config.AppConfig, svcs ServiceContainer, logger *slog.Logger) httpx.RouterServices {
	rs := httpx.RouterServices{
		Auth:         svcs.Auth,
		CookieDomain: appCfg.HTTP.CookieDomain,
		Tokens:       svcs.Tokens,
		Metrics:      svcs.Metrics,
		Readiness:    svcs.Readiness,
		IsDev:        appCfg.IsDev,
		Logger:       logger,
	}
	if svcs.Servers != nil {
		rs.Servers = svcs.Servers
	}
	if svcs.Timetable != nil {
		rs.Timetable = svcs.Timetable
	}
	if svcs.Games != nil {
		rs.Games = svcs.Games
	}
	return rs
}

// newHTTPServer wraps handler in a server using cfg's address and timeouts.
func newHTTPServer(handler http.Handler, cfg config.HTTPConfig) *http.Server {
	return &http.Server{
		Addr:         cmp.Or(cfg.Addr, ":8080"),
		Handler:      handler,
		ReadTimeout:  cmp.Or(max(cfg.ReadTimeout, 0), defaultReadTimeout),
		WriteTimeout: cmp.Or(max(cfg.WriteTimeout, 0), defaultWriteTimeout),
		IdleTimeout:  2 * time.Minute,
	}
}

// RunServicesWithShutdown serves HTTP until SIGINT/SIGTERM or a listener failure,
// then drains in-flight requests.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration requires an AppConfig")
	}
	logger := cmp.Or(cfg.Logger, slog.Default())

	// Recover -> Logging -> Router
	var handler http.Handler = httpx.NewRouter(routerServices(cfg.Config, cfg.Services, logger))
	handler = httpx.Logging(logger)(handler)
	handler = httpx.Recover(logger)(handler)
	server := newHTTPServer(handler, cfg.Config.HTTP)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		return shutdownHTTPServer(server, logger)
	case err := <-errCh:
		logger.Error("HTTP server failed", "error", err)
		return errors.Join(err, shutdownHTTPServer(server, logger))
	}
}

func shutdownHTTPServer(server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	logger.Info("HTTP server stopped")
	return nil
}
