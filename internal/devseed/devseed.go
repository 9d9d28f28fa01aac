// Package devseed loads development fixtures (servers, members, timetable, games) into the database.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/data"
	"github.com/target/serverboard/internal/domain/model"
)

// Services bundles the repositories needed for development seeding.
// Seeding writes through repositories directly; there is no viewer to authorize.
type Services struct {
	Servers   core.ServerRepository
	Members   core.MemberRepository
	Timetable core.TimetableRepository
	Games     core.GameRepository
}

// NewServices constructs the Postgres-backed repositories used for seeding.
func NewServices(db *sql.DB) Services {
	return Services{
		Servers:   data.NewServerRepo(db),
		Members:   data.NewMemberRepo(db),
		Timetable: data.NewTimetableRepo(db),
		Games:     data.NewGameRepo(db),
	}
}

// Run applies fixtures. It is idempotent: existing servers, memberships, overlapping slots and
// duplicate game names are skipped. Failures are logged and counted; the first ones do not stop the run.
func Run(ctx context.Context, svcs Services, fx *Fixtures, logger *slog.Logger) error {
	if fx == nil {
		return errors.New("fixtures are required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	failures := 0
	for i := range fx.Servers {
		s := &fx.Servers[i]
		srv, created, err := ensureServer(ctx, svcs.Servers, s)
		if err != nil {
			logger.ErrorContext(ctx, "failed to create server", "name", s.Name, "owner", s.Owner, "error", err)
			failures++
			continue
		}
		if created {
			logger.InfoContext(ctx, "created server", "name", srv.Name, "server_id", srv.ID)
		} else {
			logger.InfoContext(ctx, "server already exists", "name", srv.Name, "server_id", srv.ID)
		}

		d := seedDeps{svcs: svcs, server: srv, logger: logger}
		failures += d.seedMembers(ctx, s.Members)
		failures += d.seedTimetable(ctx, s.Timetable)
		failures += d.seedGames(ctx, s.Games)
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

// ensureServer returns the owner's server with the fixture's name, creating it when missing.
func ensureServer(ctx context.Context, repo core.ServerRepository, s *ServerFixture) (*model.Server, bool, error) {
	existing, err := repo.List(ctx, model.ServerListOptions{Owner: s.Owner, Q: s.Name})
	if err != nil {
		return nil, false, fmt.Errorf("list servers: %w", err)
	}
	for _, srv := range existing {
		if srv.Name == s.Name {
			return srv, false, nil
		}
	}
	req := s.CreateServerRequest
	srv, err := repo.Create(ctx, &req)
	if err != nil {
		return nil, false, err
	}
	return srv, true, nil
}

type seedDeps struct {
	svcs   Services
	server *model.Server
	logger *slog.Logger
}

func (d seedDeps) seedMembers(ctx context.Context, members []string) int {
	failures := 0
	for _, userID := range members {
		err := d.svcs.Members.Add(ctx, core.MembershipKey{ServerID: d.server.ID, UserID: userID})
		switch {
		case err == nil:
			d.logger.InfoContext(ctx, "added member", "server_id", d.server.ID, "user_id", userID)
		case errors.Is(err, data.ErrMemberExists):
			d.logger.DebugContext(ctx, "member already exists", "server_id", d.server.ID, "user_id", userID)
		default:
			d.logger.ErrorContext(ctx, "failed to add member", "server_id", d.server.ID, "user_id", userID, "error", err)
			failures++
		}
	}
	return failures
}

func (d seedDeps) seedTimetable(ctx context.Context, entries []EntryFixture) int {
	failures := 0
	for _, e := range entries {
		req := e.request(d.server.ID, d.server.Owner)
		entry, err := req.Validate()
		if err != nil {
			d.logger.ErrorContext(ctx, "invalid timetable fixture", "server_id", d.server.ID, "title", e.Title, "error", err)
			failures++
			continue
		}
		_, err = d.svcs.Timetable.Create(ctx, entry)
		switch {
		case err == nil:
			d.logger.InfoContext(ctx, "added timetable entry", "server_id", d.server.ID, "title", entry.Title)
		case errors.Is(err, data.ErrTimetableOverlap):
			d.logger.DebugContext(ctx, "timetable slot already taken", "server_id", d.server.ID, "title", entry.Title)
		default:
			d.logger.ErrorContext(ctx, "failed to add timetable entry", "server_id", d.server.ID, "title", entry.Title, "error", err)
			failures++
		}
	}
	return failures
}

func (d seedDeps) seedGames(ctx context.Context, games []model.CreateGameRequest) int {
	failures := 0
	for _, g := range games {
		req := g
		req.ServerID = d.server.ID
		req.AddedBy = d.server.Owner
		if err := req.Validate(); err != nil {
			d.logger.ErrorContext(ctx, "invalid game fixture", "server_id", d.server.ID, "name", g.Name, "error", err)
			failures++
			continue
		}
		_, err := d.svcs.Games.Create(ctx, &req)
		switch {
		case err == nil:
			d.logger.InfoContext(ctx, "added game", "server_id", d.server.ID, "name", req.Name)
		case errors.Is(err, data.ErrGameNameExists):
			d.logger.DebugContext(ctx, "game already exists", "server_id", d.server.ID, "name", req.Name)
		default:
			d.logger.ErrorContext(ctx, "failed to add game", "server_id", d.server.ID, "name", req.Name, "error", err)
			failures++
		}
	}
	return failures
}
