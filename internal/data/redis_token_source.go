package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultViewTokenTTL bounds how long an idle view token counter is kept.
const DefaultViewTokenTTL = 30 * time.Minute

// RedisTokenSource issues monotonically increasing view tokens with INCR so
// that every replica agrees on which server-page load is the latest.
type RedisTokenSource struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisTokenSource creates a RedisTokenSource. A non-positive ttl uses DefaultViewTokenTTL.
func NewRedisTokenSource(client redis.UniversalClient, ttl time.Duration) *RedisTokenSource {
	if ttl <= 0 {
		ttl = DefaultViewTokenTTL
	}
	return &RedisTokenSource{client: client, ttl: ttl}
}

// Issue increments and returns the counter for key.
func (s *RedisTokenSource) Issue(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, errEmptyKey
	}
	rk := tokenKey(key)
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, rk)
	pipe.Expire(ctx, rk, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	return uint64(incr.Val()), nil
}

// Latest returns the most recently issued token for key, or 0 if none was issued.
func (s *RedisTokenSource) Latest(ctx context.Context, key string) (uint64, error) {
	if key == "" {
		return 0, errEmptyKey
	}
	v, err := s.client.Get(ctx, tokenKey(key)).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get: %w", err)
	}
	return v, nil
}

func tokenKey(key string) string {
	return "view:token:" + key
}
