package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/data/database"
	"github.com/target/serverboard/internal/data/pgxutil"
	"github.com/target/serverboard/internal/domain/model"
	apperrors "github.com/target/serverboard/internal/errors"
)

// MemberRepo provides database operations for server memberships.
type MemberRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewMemberRepo creates a new MemberRepo with real time provider.
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// Add records key.UserID as a member of key.ServerID.
func (r *MemberRepo) Add(ctx context.Context, key core.MembershipKey) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, memberInsertQuery, key.ServerID, key.UserID, r.timeProvider.Now().UTC())
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrMemberExists
			case pgerrcode.ForeignKeyViolation:
				return ErrServerNotFound
			}
		}
		return fmt.Errorf("failed to add member: %w", apperrors.MapDBError(err))
	}
	return nil
}

// Remove deletes the membership. It reports false when there was none.
func (r *MemberRepo) Remove(ctx context.Context, key core.MembershipKey) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM server_members WHERE server_id = $1 AND user_id = $2`,
			key.ServerID, key.UserID)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to remove member: %w", apperrors.MapDBError(err))
	}
	return affected > 0, nil
}

// IsMember reports whether the membership exists.
func (r *MemberRepo) IsMember(ctx context.Context, key core.MembershipKey) (bool, error) {
	var ok bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM server_members WHERE server_id = $1 AND user_id = $2)`,
			key.ServerID, key.UserID,
		).Scan(&ok)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", apperrors.MapDBError(err))
	}
	return ok, nil
}

// ListByServer lists members in join order.
func (r *MemberRepo) ListByServer(ctx context.Context, serverID int64) ([]*model.ServerMember, error) {
	var rowsOut []model.ServerMember
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT server_id, user_id, joined_at
			FROM server_members
			WHERE server_id = $1
			ORDER BY joined_at ASC, user_id ASC`, serverID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.ServerMember])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", apperrors.MapDBError(err))
	}
	res := make([]*model.ServerMember, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// CountByServer counts the members of a server.
func (r *MemberRepo) CountByServer(ctx context.Context, serverID int64) (int, error) {
	n, err := countByServer(ctx, r.DB, "server_members", serverID)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", apperrors.MapDBError(err))
	}
	return n, nil
}

// countByServer runs SELECT COUNT(*) FROM table WHERE server_id = $1.
func countByServer(ctx context.Context, db *sql.DB, table string, serverID int64) (int, error) {
	query, args := database.Count(table).Where("server_id", database.Eq, serverID).SQL()
	var n int
	err := pgxutil.WithPgxConn(ctx, db, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, query, args...).Scan(&n)
	})
	return n, err
}
