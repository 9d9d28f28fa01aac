package testutil

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetTestRedisAddr returns the first reachable Redis among REDIS_ADDR, the CI
// service names and the local test port 56379.
func GetTestRedisAddr(t TestingTB) (string, bool) {
	t.Helper()
	candidates := []string{"redis:6379", "localhost:6379", "localhost:56379"}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		candidates = []string{addr}
	}
	for _, addr := range candidates {
		if pingRedis(t, addr, 0) == nil {
			return addr, true
		}
	}
	return candidates[len(candidates)-1], false
}

func pingRedis(t TestingTB, addr string, db int) error {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	defer closeAndLog(t, "redis client", client)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}

// reserveRedisDB picks a logical DB for this test. TEST_REDIS_DB wins; otherwise
// a DB in 1..15 is reserved with a lock key in DB 0 so parallel packages do not
// flush each other.
func reserveRedisDB(t TestingTB, addr string) int {
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
		t.Logf("Invalid TEST_REDIS_DB=%q, falling back to auto-select", v)
	}

	meta := redis.NewClient(&redis.Options{Addr: addr})
	defer closeAndLog(t, "redis meta client", meta)

	owner := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
	for i := 1; i <= 15; i++ {
		lockKey := fmt.Sprintf("serverboard:testutil:db_lock:%d", i)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		ok, err := meta.SetNX(ctx, lockKey, owner, 30*time.Minute).Result()
		cancel()
		if err != nil || !ok {
			continue
		}
		registerCleanup(t, func() {
			c := redis.NewClient(&redis.Options{Addr: addr})
			defer closeAndLog(t, "redis cleanup client", c)
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := c.Del(ctx, lockKey).Err(); err != nil {
				t.Logf("warning: failed to release redis db lock %s: %v", lockKey, err)
			}
		})
		return i
	}
	return 1
}

// SetupTestRedis returns a client on an emptied, reserved DB, or skips the test.
func SetupTestRedis(t TestingTB) *redis.Client {
	t.Helper()
	addr, ok := GetTestRedisAddr(t)
	if !ok {
		if requireRedis() {
			t.Fatal("Redis not available for testing")
		}
		t.Skip("Redis not available for testing")
	}

	db := reserveRedisDB(t, addr)
	t.Logf("Using Redis DB=%d for tests at %s", db, addr)
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		closeAndLog(t, "redis client", client)
		if requireRedis() {
			t.Fatalf("Redis not available for testing at %s: %v", addr, err)
		}
		t.Skipf("Redis not available for testing at %s: %v", addr, err)
	}
	return client
}
