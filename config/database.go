package config

import "time"

const (
	minServerCacheTTL = time.Second
	maxServerCacheTTL = 24 * time.Hour
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"                    envDefault:"localhost"`
	Port     int    `env:"PORT"                    envDefault:"5432"`
	User     string `env:"USER"                    envDefault:"serverboard"`
	Password string `env:"PASSWORD"                envDefault:"serverboard"`
	Name     string `env:"NAME"                    envDefault:"serverboard"`
	SSLMode  string `env:"SSL_MODE"                envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelPort       string   `env:"SENTINEL_PORT"        envDefault:"26379"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// CacheConfig contains cache configuration (Redis-based).
type CacheConfig struct {
	// Enabled turns on the server record read-through cache.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"true"`

	// ServerTTL is the TTL for cached server records.
	ServerTTL time.Duration `env:"CACHE_SERVER_TTL" envDefault:"5m"`
}

// Sanitize clamps the server TTL to a sane range.
func (c *CacheConfig) Sanitize() {
	if c.ServerTTL < minServerCacheTTL {
		c.ServerTTL = minServerCacheTTL
	}
	if c.ServerTTL > maxServerCacheTTL {
		c.ServerTTL = maxServerCacheTTL
	}
}
