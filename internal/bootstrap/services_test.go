package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/serverboard/config"
	"github.com/target/serverboard/internal/domain/serverview"
	"github.com/target/serverboard/internal/testutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewTokenSource_FallsBackToMemory(t *testing.T) {
	tokens := newTokenSource(nil)
	require.IsType(t, &serverview.MemoryTokens{}, tokens)

	ctx := context.Background()
	first, err := tokens.Issue(ctx, "sess:server")
	require.NoError(t, err)
	second, err := tokens.Issue(ctx, "sess:server")
	require.NoError(t, err)
	assert.Greater(t, second, first)

	latest, err := tokens.Latest(ctx, "sess:server")
	require.NoError(t, err)
	assert.Equal(t, second, latest)
}

func TestNewServerCache_RequiresRedisAndFlag(t *testing.T) {
	assert.Nil(t, newServerCache(nil, config.CacheConfig{Enabled: true, ServerTTL: time.Minute}))
}

func TestBuildMetrics(t *testing.T) {
	assert.Nil(t, buildMetrics(config.ObservabilityConfig{}))
	assert.NotNil(t, buildMetrics(config.ObservabilityConfig{Metrics: config.MetricsConfig{Enabled: true}}))
}

func TestNewServices_WithoutRedis(t *testing.T) {
	cfg := &config.AppConfig{
		Auth:          config.AuthConfig{Mode: config.AuthModeMock},
		Observability: config.ObservabilityConfig{Metrics: config.MetricsConfig{Enabled: true}},
	}
	svcs, err := NewServices(context.Background(), &ServiceDeps{Config: cfg, Logger: discardLogger()})
	require.NoError(t, err)

	assert.NotNil(t, svcs.Servers)
	assert.NotNil(t, svcs.Timetable)
	assert.NotNil(t, svcs.Games)
	assert.NotNil(t, svcs.Metrics)
	assert.Nil(t, svcs.Auth, "auth needs a session store")
	assert.IsType(t, &serverview.MemoryTokens{}, svcs.Tokens)
	assert.Empty(t, svcs.Readiness)
}

func TestNewServices_NilDeps(t *testing.T) {
	svcs, err := NewServices(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, ServiceContainer{}, svcs)
}

func TestReadinessChecks_Redis(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	checks := readinessChecks(nil, client)
	require.Contains(t, checks, "redis")
	assert.NotContains(t, checks, "postgres")
	require.NoError(t, checks["redis"](context.Background()))
}

func TestRouterServices_LeavesMissingServicesNil(t *testing.T) {
	rs := routerServices(&config.AppConfig{IsDev: true}, ServiceContainer{}, discardLogger())
	assert.Nil(t, rs.Servers)
	assert.Nil(t, rs.Timetable)
	assert.Nil(t, rs.Games)
	assert.True(t, rs.IsDev)
}

func TestNewHTTPServer_Timeouts(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.HTTPConfig
		wantAddr  string
		wantRead  time.Duration
		wantWrite time.Duration
	}{
		{
			name:      "defaults when unset",
			wantAddr:  ":8080",
			wantRead:  15 * time.Second,
			wantWrite: 30 * time.Second,
		},
		{
			name:      "negative timeouts fall back",
			cfg:       config.HTTPConfig{ReadTimeout: -time.Second, WriteTimeout: -time.Second},
			wantAddr:  ":8080",
			wantRead:  15 * time.Second,
			wantWrite: 30 * time.Second,
		},
		{
			name:      "configured",
			cfg:       config.HTTPConfig{Addr: ":9090", ReadTimeout: 5 * time.Second, WriteTimeout: 7 * time.Second},
			wantAddr:  ":9090",
			wantRead:  5 * time.Second,
			wantWrite: 7 * time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newHTTPServer(http.NotFoundHandler(), tt.cfg)
			assert.Equal(t, tt.wantAddr, srv.Addr)
			assert.Equal(t, tt.wantRead, srv.ReadTimeout)
			assert.Equal(t, tt.wantWrite, srv.WriteTimeout)
		})
	}
}

func TestRunServicesWithShutdown_RequiresConfig(t *testing.T) {
	require.Error(t, RunServicesWithShutdown(nil))
	require.Error(t, RunServicesWithShutdown(&ServiceOrchestrationConfig{}))
}

func TestShutdownHTTPServer(t *testing.T) {
	require.NoError(t, shutdownHTTPServer(nil, discardLogger()))

	srv := newHTTPServer(http.NotFoundHandler(), config.HTTPConfig{Addr: "127.0.0.1:0"})
	require.NoError(t, shutdownHTTPServer(srv, discardLogger()))
	assert.ErrorIs(t, srv.ListenAndServe(), http.ErrServerClosed)
}
