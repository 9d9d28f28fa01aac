// Package core defines the repository ports and small domain services shared by the service layer.
package core

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/target/serverboard/internal/domain/model"
)

// CacheRepository is a byte-valued key store with expiry. A missing key reads
// as a nil slice with no error.
type CacheRepository interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)
}

// ServerCache stores server records as JSON under "server:record:<id>".
type ServerCache struct {
	cache CacheRepository
	ttl   time.Duration
}

// ServerCacheOptions bundles dependencies for NewServerCache.
type ServerCacheOptions struct {
	Cache CacheRepository
	TTL   time.Duration
}

// DefaultServerCacheTTL is used when ServerCacheOptions.TTL is not positive.
const DefaultServerCacheTTL = 5 * time.Minute

// NewServerCache creates a ServerCache. It returns nil when no cache is configured,
// and all methods on a nil *ServerCache are no-ops.
func NewServerCache(opts ServerCacheOptions) *ServerCache {
	if opts.Cache == nil {
		return nil
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = DefaultServerCacheTTL
	}
	return &ServerCache{cache: opts.Cache, ttl: ttl}
}

// Get returns the cached server, or nil when the key is missing.
func (c *ServerCache) Get(ctx context.Context, id int64) (*model.Server, error) {
	if c == nil {
		return nil, nil
	}
	raw, err := c.cache.Get(ctx, serverKey(id))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var srv model.Server
	if err := json.Unmarshal(raw, &srv); err != nil {
		return nil, fmt.Errorf("decode cached server %d: %w", id, err)
	}
	return &srv, nil
}

// Put caches srv.
func (c *ServerCache) Put(ctx context.Context, srv *model.Server) error {
	if c == nil || srv == nil {
		return nil
	}
	raw, err := json.Marshal(srv)
	if err != nil {
		return fmt.Errorf("encode server %d: %w", srv.ID, err)
	}
	return c.cache.Set(ctx, serverKey(srv.ID), raw, c.ttl)
}

// Invalidate drops the cached record for id.
func (c *ServerCache) Invalidate(ctx context.Context, id int64) error {
	if c == nil {
		return nil
	}
	_, err := c.cache.Delete(ctx, serverKey(id))
	return err
}

func serverKey(id int64) string {
	return "server:record:" + strconv.FormatInt(id, 10)
}
