// Package testutil provides Postgres, Redis and fixture helpers for tests.
package testutil

import (
	"os"
	"strings"
	"time"
)

// TestingTB is the subset of testing.TB the helpers need.
type TestingTB interface {
	Helper()
	Skip(args ...any)
	Skipf(format string, args ...any)
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Logf(format string, args ...any)
}

// TestTime returns a fixed time for testing.
func TestTime() time.Time {
	return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envBool(key string) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func requireDB() bool    { return envBool("TEST_REQUIRE_DB") || envBool("TEST_REQUIRE_INFRA") }
func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }

func registerCleanup(t TestingTB, fn func()) {
	if tc, ok := any(t).(interface{ Cleanup(func()) }); ok {
		tc.Cleanup(fn)
		return
	}
	t.Logf("warning: %T has no Cleanup; resources are released by the caller", t)
}

func closeAndLog(t TestingTB, name string, closer interface{ Close() error }) {
	if err := closer.Close(); err != nil {
		t.Logf("warning: failed to close %s: %v", name, err)
	}
}

// StringPtr returns a pointer to the given string value.
func StringPtr(s string) *string { return &s }

// BoolPtr returns a pointer to the given bool value.
func BoolPtr(b bool) *bool { return &b }

// IntPtr returns a pointer to the given int value.
func IntPtr(i int) *int { return &i }

// TimePtr returns a pointer to the given time value.
func TimePtr(t time.Time) *time.Time { return &t }
