// Package migrate applies the embedded SQL schema migrations.
package migrate

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Status reports whether one embedded migration has been applied.
type Status struct {
	Version string
	Applied bool
}

// Run applies all embedded migrations that are not yet recorded. It is safe to call multiple times.
func Run(ctx context.Context, db *sql.DB) error {
	if err := ensureTable(ctx, db); err != nil {
		return err
	}
	versions, err := versions()
	if err != nil {
		return err
	}
	logger := slog.Default().With("component", "migrations")
	for _, v := range versions {
		if err := apply(ctx, db, v, logger); err != nil {
			return err
		}
	}
	return nil
}

// List returns every embedded migration with its applied flag, in apply order.
func List(ctx context.Context, db *sql.DB) ([]Status, error) {
	if err := ensureTable(ctx, db); err != nil {
		return nil, err
	}
	versions, err := versions()
	if err != nil {
		return nil, err
	}
	out := make([]Status, 0, len(versions))
	for _, v := range versions {
		applied, err := isApplied(ctx, db, v)
		if err != nil {
			return nil, err
		}
		out = append(out, Status{Version: v, Applied: applied})
	}
	return out, nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("create schema_migrations table: %w", err)
	}
	return nil
}

func versions() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			out = append(out, strings.TrimSuffix(e.Name(), ".sql"))
		}
	}
	sort.Strings(out)
	return out, nil
}

func isApplied(ctx context.Context, db *sql.DB, version string) (bool, error) {
	var exists bool
	if err := db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version,
	).Scan(&exists); err != nil {
		return false, fmt.Errorf("check migration %s: %w", version, err)
	}
	return exists, nil
}

// apply runs one migration file and records it in the same transaction.
func apply(ctx context.Context, db *sql.DB, version string, logger *slog.Logger) (err error) {
	applied, err := isApplied(ctx, db, version)
	if err != nil || applied {
		return err
	}

	body, err := migrationsFS.ReadFile("migrations/" + version + ".sql")
	if err != nil {
		return fmt.Errorf("read migration %s: %w", version, err)
	}
	logger.InfoContext(ctx, "applying migration", "version", version)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			logger.ErrorContext(ctx, "failed to rollback migration", "version", version, "error", rbErr)
		}
	}()

	if _, err = tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("exec migration %s: %w", version, err)
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		return fmt.Errorf("record migration %s: %w", version, err)
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", version, err)
	}
	return nil
}
