// Package config holds the env-tagged settings parsed with caarlos0/env.
package config

import (
	"errors"
	"os"
	"strings"
)

// AppConfig is the root of the environment configuration. Each section lives in
// its own file alongside its Sanitize and Validate rules.
type AppConfig struct {
	// IsDev serves templates from disk and disables static caching.
	// NODE_ENV=development also turns it on.
	IsDev bool `env:"DEV" envDefault:"false"`

	Auth          AuthConfig
	Postgres      DBConfig    `envPrefix:"DB_"`
	Redis         RedisConfig `envPrefix:"REDIS_"`
	Cache         CacheConfig
	HTTP          HTTPConfig
	Observability ObservabilityConfig
}

// Sanitize clamps out-of-range values to their defaults. Call it once after parsing.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Auth.Sanitize()
	c.Cache.Sanitize()
	c.Observability.Sanitize()

	if !c.IsDev {
		switch strings.ToLower(os.Getenv("NODE_ENV")) {
		case "development", "dev":
			c.IsDev = true
		}
	}
}

// Validate reports settings Sanitize cannot repair.
func (c *AppConfig) Validate() error {
	return errors.Join(c.HTTP.Validate(), c.Auth.Validate())
}
