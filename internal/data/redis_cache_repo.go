package data

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var errEmptyKey = errors.New("key cannot be empty")

// RedisCacheRepo is the Redis-backed core.CacheRepository used for server records.
type RedisCacheRepo struct {
	client redis.UniversalClient
}

// NewRedisCacheRepo wraps client.
func NewRedisCacheRepo(client redis.UniversalClient) *RedisCacheRepo {
	return &RedisCacheRepo{client: client}
}

// Set writes value under key. A zero ttl keeps the key until it is deleted.
func (r *RedisCacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errEmptyKey
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Get returns nil without error when key is absent or expired.
func (r *RedisCacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errEmptyKey
	}
	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Delete reports whether key existed.
func (r *RedisCacheRepo) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errEmptyKey
	}
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis del %s: %w", key, err)
	}
	return n > 0, nil
}
