package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/data/pgxutil"
	"github.com/target/serverboard/internal/domain/model"
	apperrors "github.com/target/serverboard/internal/errors"
)

// GameRepo provides database operations for a server's games.
type GameRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewGameRepo creates a new GameRepo with real time provider.
func NewGameRepo(db *sql.DB) *GameRepo {
	return &GameRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// ListByServer lists a server's games by name.
func (r *GameRepo) ListByServer(ctx context.Context, serverID int64) ([]*model.Game, error) {
	var rowsOut []model.Game
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, server_id, name, min_players, max_players, added_by, created_at
			FROM games
			WHERE server_id = $1
			ORDER BY lower(name) ASC`, serverID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Game])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", apperrors.MapDBError(err))
	}
	res := make([]*model.Game, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// CountByServer counts a server's games.
func (r *GameRepo) CountByServer(ctx context.Context, serverID int64) (int, error) {
	n, err := countByServer(ctx, r.DB, "games", serverID)
	if err != nil {
		return 0, fmt.Errorf("failed to count games: %w", apperrors.MapDBError(err))
	}
	return n, nil
}

// Create adds a game to a server. Names are unique per server.
func (r *GameRepo) Create(ctx context.Context, req *model.CreateGameRequest) (*model.Game, error) {
	if req == nil {
		return nil, errors.New("create game request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var out model.Game
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO games (id, server_id, name, min_players, max_players, added_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, server_id, name, min_players, max_players, added_by, created_at`,
			uuid.NewString(), req.ServerID, req.Name, req.MinPlayers, req.MaxPlayers, req.AddedBy,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Game])
		return err
	})
	if err != nil {
		return nil, mapGameWriteErr(err)
	}
	return &out, nil
}

// Delete removes one game of a server.
func (r *GameRepo) Delete(ctx context.Context, key core.ServerItemKey) (bool, error) {
	if _, err := uuid.Parse(key.ID); err != nil {
		return false, nil
	}
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM games WHERE server_id = $1 AND id = $2`, key.ServerID, key.ID)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete game: %w", apperrors.MapDBError(err))
	}
	return affected > 0, nil
}

func mapGameWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return ErrGameNameExists
		case pgerrcode.ForeignKeyViolation:
			return ErrServerNotFound
		}
	}
	return fmt.Errorf("failed to create game: %w", apperrors.MapDBError(err))
}
