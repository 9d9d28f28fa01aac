// Package pgxutil reaches the native pgx connection underneath a database/sql pool.
package pgxutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// TxConfig describes one transaction run by WithPgxTx.
type TxConfig struct {
	// ReadOnly starts the transaction in read-only mode.
	ReadOnly bool
	Fn       func(pgx.Tx) error
}

// WithPgxConn checks a connection out of db and hands fn its *pgx.Conn.
func WithPgxConn(ctx context.Context, db *sql.DB, fn func(*pgx.Conn) error) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get conn from pool: %w", err)
	}
	defer conn.Close()

	return conn.Raw(func(dc any) error {
		std, ok := dc.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", dc)
		}
		return fn(std.Conn())
	})
}

// WithPgxTx runs cfg.Fn in a transaction, committing only when it returns nil.
func WithPgxTx(ctx context.Context, db *sql.DB, cfg TxConfig) error {
	return WithPgxConn(ctx, db, func(conn *pgx.Conn) (err error) {
		opts := pgx.TxOptions{AccessMode: pgx.ReadWrite}
		if cfg.ReadOnly {
			opts.AccessMode = pgx.ReadOnly
		}
		tx, err := conn.BeginTx(ctx, opts)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
		}()
		if err := cfg.Fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}
