package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"time"

	// pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/target/serverboard/internal/migrate"
)

// TestDBConfig holds configuration for test database.
type TestDBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// DefaultTestDBConfig reads TEST_DB_* and defaults to the docker-compose test profile on port 55432.
func DefaultTestDBConfig() TestDBConfig {
	return TestDBConfig{
		Host:     getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:     getEnvOrDefault("TEST_DB_PORT", "55432"),
		User:     getEnvOrDefault("TEST_DB_USER", "serverboard"),
		Password: getEnvOrDefault("TEST_DB_PASSWORD", "serverboard"),
		DBName:   getEnvOrDefault("TEST_DB_NAME", "serverboard"),
	}
}

// DSN renders the config as a postgres URL, optionally pinned to a search_path.
func (c TestDBConfig) DSN(searchPath string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, c.Port),
		Path:   "/" + c.DBName,
	}
	q := u.Query()
	q.Set("sslmode", getEnvOrDefault("DB_SSL_MODE", "disable"))
	if searchPath != "" {
		q.Set("search_path", searchPath)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// cleanupTables lists tables in child-first order.
var cleanupTables = []string{"games", "timetable_entries", "server_members", "servers"}

// SkipIfNoTestDB skips (or fails under TEST_REQUIRE_DB) when Postgres is unreachable.
func SkipIfNoTestDB(t TestingTB) {
	t.Helper()
	db, err := sql.Open("pgx", DefaultTestDBConfig().DSN(""))
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = db.PingContext(ctx)
		cancel()
		closeAndLog(t, "ping DB", db)
	}
	if err == nil {
		return
	}
	if requireDB() {
		t.Fatal("Test database not available:", err)
	}
	t.Skip("Test database not available:", err)
}

// SetupTestDB opens the shared test database, migrates it and empties every table.
func SetupTestDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	db := openAndPing(t, DefaultTestDBConfig().DSN(""))
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := migrate.Run(ctx, db); err != nil {
		closeAndLog(t, "test DB", db)
		t.Fatal("Failed to run migrations:", err)
	}
	CleanupTestDB(t, db)
	return db
}

// CleanupTestDB removes all rows from the application tables.
func CleanupTestDB(t TestingTB, db *sql.DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, table := range cleanupTables {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			t.Fatalf("Failed to clean up table %s: %v", table, err)
		}
	}
}

// WithAutoDB runs fn against a fresh schema when TEST_DB_EPHEMERAL is truthy,
// otherwise against the shared database which is emptied afterwards.
func WithAutoDB(t TestingTB, fn func(*sql.DB)) {
	t.Helper()
	if envBool("TEST_DB_EPHEMERAL") {
		fn(SetupEphemeralSchemaDB(t))
		return
	}
	db := SetupTestDB(t)
	defer func() {
		CleanupTestDB(t, db)
		closeAndLog(t, "test DB", db)
	}()
	fn(db)
}

// SetupEphemeralSchemaDB migrates a uniquely named schema and drops it on cleanup.
func SetupEphemeralSchemaDB(t TestingTB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	cfg := DefaultTestDBConfig()
	admin := openAndPing(t, cfg.DSN(""))
	schema := schemaName()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+schema); err != nil {
		closeAndLog(t, "admin DB", admin)
		t.Fatalf("Failed to create schema %s: %v", schema, err)
	}

	db := openAndPing(t, cfg.DSN(schema+",public"))
	db.SetMaxOpenConns(10)
	t.Logf("Using ephemeral schema: %s", schema)
	registerCleanup(t, func() {
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		closeAndLog(t, "schema DB", db)
		if _, err := admin.ExecContext(dropCtx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); err != nil {
			t.Logf("Warning: failed to drop schema %s: %v", schema, err)
		}
		closeAndLog(t, "admin DB", admin)
	})

	if err := migrate.Run(ctx, db); err != nil {
		t.Fatal("Failed to run migrations in ephemeral schema:", err)
	}
	return db
}

func openAndPing(t TestingTB, dsn string) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatal("Failed to open database:", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		closeAndLog(t, "database", db)
		t.Fatal("Failed to connect to test database. Make sure PostgreSQL is running (docker-compose up -d):", err)
	}
	return db
}

func schemaName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("t_%d", time.Now().UnixNano())
	}
	return "t_" + hex.EncodeToString(b)
}
