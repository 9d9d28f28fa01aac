package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/target/serverboard/internal/data/database"
	"github.com/target/serverboard/internal/data/pgxutil"
	"github.com/target/serverboard/internal/domain/model"
	apperrors "github.com/target/serverboard/internal/errors"
)

// ServerRepo provides database operations for servers.
type ServerRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewServerRepo creates a new ServerRepo with real time provider.
func NewServerRepo(db *sql.DB) *ServerRepo {
	return &ServerRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewServerRepoWithTimeProvider creates a new ServerRepo with a custom time provider (useful for tests).
func NewServerRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ServerRepo {
	return &ServerRepo{DB: db, timeProvider: tp}
}

// Create inserts a new server and records the owner as its first member.
func (r *ServerRepo) Create(ctx context.Context, req *model.CreateServerRequest) (*model.Server, error) {
	if req == nil {
		return nil, errors.New("create server request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	owner := strings.TrimSpace(req.Owner)
	var out model.Server
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, serverInsertQuery, strings.TrimSpace(req.Name), owner, req.Description, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Server])
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, memberInsertQuery, out.ID, owner, now)
		return err
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// GetByID retrieves a server by ID.
func (r *ServerRepo) GetByID(ctx context.Context, id int64) (*model.Server, error) {
	var srv model.Server
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, serverGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		srv, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Server])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServerNotFound
		}
		return nil, fmt.Errorf("failed to get server by ID: %w", apperrors.MapDBError(err))
	}
	return &srv, nil
}

// List retrieves servers with optional owner and name filters, newest first.
func (r *ServerRepo) List(ctx context.Context, opts model.ServerListOptions) ([]*model.Server, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	q := database.Select("servers", serverColumns...).
		OrderBy("created_at", true).
		Page(limit, max(opts.Offset, 0))
	if owner := strings.TrimSpace(opts.Owner); owner != "" {
		q.Where("owner", database.Eq, owner)
	}
	if term := strings.TrimSpace(opts.Q); term != "" {
		q.Where("name", database.ILike, "%"+term+"%")
	}
	query, args := q.SQL()

	out, err := r.collect(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// ListForMember returns the servers userID belongs to, ordered by name.
func (r *ServerRepo) ListForMember(ctx context.Context, userID string) ([]*model.Server, error) {
	out, err := r.collect(ctx, serverListForMemberQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers for member: %w", apperrors.MapDBError(err))
	}
	return out, nil
}

// Update updates the name and/or description of a server.
func (r *ServerRepo) Update(ctx context.Context, id int64, req model.UpdateServerRequest) (*model.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	setClause, args := buildServerUpdateClause(req)
	args = append(args, id)
	query := "UPDATE servers SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
		" RETURNING " + strings.Join(serverColumns, ", ")

	var out model.Server
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Server])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServerNotFound
		}
		return nil, fmt.Errorf("failed to update server: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// Delete deletes a server by ID. Members, timetable entries and games go with it.
func (r *ServerRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var affected int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM servers WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete server: %w", apperrors.MapDBError(err))
	}
	return affected > 0, nil
}

func (r *ServerRepo) collect(ctx context.Context, query string, args ...any) ([]*model.Server, error) {
	var rowsOut []model.Server
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Server])
		return err
	}); err != nil {
		return nil, err
	}
	res := make([]*model.Server, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func buildServerUpdateClause(req model.UpdateServerRequest) (string, []any) {
	setParts := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if req.Name != nil {
		args = append(args, strings.TrimSpace(*req.Name))
		setParts = append(setParts, fmt.Sprintf("name = $%d", len(args)))
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			setParts = append(setParts, "description = NULL")
		} else {
			args = append(args, *req.Description)
			setParts = append(setParts, fmt.Sprintf("description = $%d", len(args)))
		}
	}
	return strings.Join(setParts, ", "), args
}

var serverColumns = []string{"id", "name", "owner", "description", "created_at", "updated_at"}

const (
	serverInsertQuery = `
		INSERT INTO servers (name, owner, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		RETURNING id, name, owner, description, created_at, updated_at`

	serverGetByIDQuery = `
		SELECT id, name, owner, description, created_at, updated_at
		FROM servers
		WHERE id = $1`

	serverListForMemberQuery = `
		SELECT s.id, s.name, s.owner, s.description, s.created_at, s.updated_at
		FROM servers s
		JOIN server_members m ON m.server_id = s.id
		WHERE m.user_id = $1
		ORDER BY s.name ASC, s.id ASC`

	memberInsertQuery = `
		INSERT INTO server_members (server_id, user_id, joined_at)
		VALUES ($1, $2, $3)`
)
