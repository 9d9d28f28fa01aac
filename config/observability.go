package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig groups configuration that controls metrics and logging.
type ObservabilityConfig struct {
	Metrics MetricsConfig

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
}

// SlogLevel returns the configured level for slog handlers.
func (c *ObservabilityConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// MetricsConfig controls the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
}
