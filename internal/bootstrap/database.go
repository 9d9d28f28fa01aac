package bootstrap

import (
	"cmp"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/target/serverboard/config"
	"github.com/target/serverboard/internal/data"
)

const connectTimeout = 5 * time.Second

// postgresDSN renders cfg as a postgres:// URL with credentials escaped.
func postgresDSN(cfg config.DBConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// ConnectDB opens the pgx-backed pool and pings it.
func ConnectDB(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", postgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping database: %w", err), db.Close())
	}

	logger.InfoContext(ctx, "database connected", "host", cfg.Host, "port", cfg.Port, "database", cfg.Name)
	return db, nil
}

// redisTopology is how ConnectRedis reaches Redis.
type redisTopology int

const (
	redisDirect redisTopology = iota
	redisSentinel
	redisCluster
)

// redisOptions translates cfg into client options. A redis:// or rediss:// URI
// contributes its address, credentials, database and TLS settings.
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, redisTopology, error) {
	opts := &redis.UniversalOptions{Password: cfg.Password}

	uri := strings.TrimSpace(cfg.URI)
	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		parsed, err := redis.ParseURL(uri)
		if err != nil {
			return nil, redisDirect, fmt.Errorf("parse redis url: %w", err)
		}
		uri = parsed.Addr
		opts.Username = parsed.Username
		opts.Password = cmp.Or(parsed.Password, cfg.Password)
		opts.DB = parsed.DB
		opts.TLSConfig = parsed.TLSConfig
	}

	switch {
	case cfg.UseCluster:
		opts.Addrs = nonBlank(cfg.ClusterNodes)
		if len(opts.Addrs) == 0 && uri != "" {
			opts.Addrs = []string{uri}
		}
		if len(opts.Addrs) == 0 {
			return nil, redisCluster, errors.New("redis cluster requires at least one node")
		}
		opts.DB = 0
		return opts, redisCluster, nil
	case cfg.UseSentinel:
		opts.Addrs = nonBlank(cfg.SentinelNodes)
		if len(opts.Addrs) == 0 {
			return nil, redisSentinel, errors.New("redis sentinel requires at least one sentinel node")
		}
		opts.MasterName = cfg.SentinelMasterName
		opts.SentinelPassword = cfg.SentinelPassword
		return opts, redisSentinel, nil
	default:
		if uri == "" {
			return nil, redisDirect, errors.New("redis requires a URI")
		}
		opts.Addrs = []string{uri}
		return opts, redisDirect, nil
	}
}

// ConnectRedis builds a direct, sentinel or cluster client from cfg and pings it.
//
//nolint:ireturn // the topology is chosen at runtime.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	opts, topology, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	var client redis.UniversalClient
	switch topology {
	case redisCluster:
		client = redis.NewClusterClient(opts.Cluster())
	case redisSentinel:
		client = redis.NewFailoverClient(opts.Failover())
	default:
		client = redis.NewClient(opts.Simple())
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Join(fmt.Errorf("ping redis: %w", err), client.Close())
	}

	logger.InfoContext(ctx, "redis connected", "addrs", strings.Join(opts.Addrs, ","), "master", opts.MasterName)
	return client, nil
}

func nonBlank(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := data.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.InfoContext(ctx, "database migrations completed")
	return nil
}
