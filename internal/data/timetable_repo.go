package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/data/pgxutil"
	"github.com/target/serverboard/internal/domain/model"
	apperrors "github.com/target/serverboard/internal/errors"
)

// TimetableRepo provides database operations for timetable entries.
type TimetableRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewTimetableRepo creates a new TimetableRepo with real time provider.
func NewTimetableRepo(db *sql.DB) *TimetableRepo {
	return &TimetableRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// ListByServer lists a server's entries ordered by weekday and start time.
func (r *TimetableRepo) ListByServer(ctx context.Context, serverID int64) ([]*model.TimetableEntry, error) {
	var rowsOut []model.TimetableEntry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, timetableListQuery, serverID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.TimetableEntry])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list timetable entries: %w", apperrors.MapDBError(err))
	}
	res := make([]*model.TimetableEntry, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// CountByServer counts a server's timetable entries.
func (r *TimetableRepo) CountByServer(ctx context.Context, serverID int64) (int, error) {
	n, err := countByServer(ctx, r.DB, "timetable_entries", serverID)
	if err != nil {
		return 0, fmt.Errorf("failed to count timetable entries: %w", apperrors.MapDBError(err))
	}
	return n, nil
}

// Create inserts entry. The server row is locked for the duration so two
// concurrent inserts cannot both pass the overlap check.
func (r *TimetableRepo) Create(ctx context.Context, entry *model.TimetableEntry) (*model.TimetableEntry, error) {
	if entry == nil {
		return nil, errors.New("timetable entry is required")
	}
	var out model.TimetableEntry
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		var locked int64
		if err := tx.QueryRow(ctx, `SELECT id FROM servers WHERE id = $1 FOR UPDATE`, entry.ServerID).
			Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrServerNotFound
			}
			return err
		}

		var overlaps bool
		if err := tx.QueryRow(ctx, timetableOverlapQuery,
			entry.ServerID, entry.Weekday, entry.StartMinute, entry.EndMinute,
		).Scan(&overlaps); err != nil {
			return err
		}
		if overlaps {
			return ErrTimetableOverlap
		}

		rows, err := tx.Query(ctx, timetableInsertQuery,
			uuid.NewString(), entry.ServerID, entry.Weekday, entry.StartMinute, entry.EndMinute,
			entry.Title, entry.CreatedBy, r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.TimetableEntry])
		return err
	}})
	if err != nil {
		if errors.Is(err, ErrServerNotFound) || errors.Is(err, ErrTimetableOverlap) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create timetable entry: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Delete removes one entry of a server.
func (r *TimetableRepo) Delete(ctx context.Context, key core.ServerItemKey) (bool, error) {
	if _, err := uuid.Parse(key.ID); err != nil {
		return false, nil
	}
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM timetable_entries WHERE server_id = $1 AND id = $2`,
			key.ServerID, key.ID)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete timetable entry: %w", apperrors.MapDBError(err))
	}
	return affected > 0, nil
}

const (
	timetableListQuery = `
		SELECT id, server_id, weekday, start_minute, end_minute, title, created_by, created_at
		FROM timetable_entries
		WHERE server_id = $1
		ORDER BY weekday ASC, start_minute ASC`

	timetableOverlapQuery = `
		SELECT EXISTS(
			SELECT 1 FROM timetable_entries
			WHERE server_id = $1 AND weekday = $2 AND start_minute < $4 AND $3 < end_minute
		)`

	timetableInsertQuery = `
		INSERT INTO timetable_entries (id, server_id, weekday, start_minute, end_minute, title, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, server_id, weekday, start_minute, end_minute, title, created_by, created_at`
)
