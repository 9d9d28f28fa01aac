package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/target/serverboard/internal/core"
	domainauth "github.com/target/serverboard/internal/domain/auth"
	"github.com/target/serverboard/internal/domain/model"
	apperrors "github.com/target/serverboard/internal/errors"
	"golang.org/x/sync/errgroup"
)

// ErrNoViewer is returned by operations that act on behalf of a signed-in viewer
// when the context carries none.
var ErrNoViewer = apperrors.Forbidden("viewer identity required")

// ServerRepos groups the repositories ServerService reads and writes.
type ServerRepos struct {
	Servers   core.ServerRepository
	Members   core.MemberRepository
	Timetable core.TimetableRepository
	Games     core.GameRepository
}

// cacheObserver receives cache hit/miss notifications (the metrics recorder).
type cacheObserver interface {
	CacheLookup(hit bool)
}

// ServerCacheConfig configures the optional read-through cache.
type ServerCacheConfig struct {
	Cache    *core.ServerCache
	Observer cacheObserver
}

// ServerServiceOptions groups dependencies for ServerService.
type ServerServiceOptions struct {
	Repos  ServerRepos
	Cache  ServerCacheConfig
	Logger *slog.Logger
}

// ServerService owns server lookup, ownership rules, and membership exits.
type ServerService struct {
	servers   core.ServerRepository
	members   core.MemberRepository
	timetable core.TimetableRepository
	games     core.GameRepository
	cache     *core.ServerCache
	observer  cacheObserver
	logger    *slog.Logger
}

// NewServerService constructs a new ServerService.
func NewServerService(opts ServerServiceOptions) *ServerService {
	if opts.Repos.Servers == nil {
		panic("ServerRepository is required")
	}
	if opts.Repos.Members == nil {
		panic("MemberRepository is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ServerService{
		servers:   opts.Repos.Servers,
		members:   opts.Repos.Members,
		timetable: opts.Repos.Timetable,
		games:     opts.Repos.Games,
		cache:     opts.Cache.Cache,
		observer:  opts.Cache.Observer,
		logger:    logger.With("component", "server_service"),
	}
}

// Create creates a server owned by req.Owner.
func (s *ServerService) Create(ctx context.Context, req *model.CreateServerRequest) (*model.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	srv, err := s.servers.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create server: %w", err)
	}
	s.logger.InfoContext(ctx, "server created", "server_id", srv.ID, "owner", srv.Owner)
	return srv, nil
}

// GetServer returns the server record if the viewer owns it or is a member.
// Anyone else gets NotFound, so a server's existence is not disclosed.
func (s *ServerService) GetServer(ctx context.Context, id int64) (*model.Server, error) {
	viewer, ok := domainauth.ViewerFromContext(ctx)
	if !ok {
		return nil, ErrNoViewer
	}
	srv, err := s.loadServer(ctx, id)
	if err != nil {
		return nil, err
	}
	if srv.OwnedBy(viewer) {
		return srv, nil
	}
	member, err := s.members.IsMember(ctx, core.MembershipKey{ServerID: id, UserID: viewer})
	if err != nil {
		return nil, fmt.Errorf("check membership: %w", err)
	}
	if !member {
		return nil, apperrors.NotFound("server not found")
	}
	return srv, nil
}

// loadServer reads id through the cache when one is configured.
func (s *ServerService) loadServer(ctx context.Context, id int64) (*model.Server, error) {
	if cached := s.cachedServer(ctx, id); cached != nil {
		return cached, nil
	}
	srv, err := s.servers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get server: %w", err)
	}
	if err := s.cache.Put(ctx, srv); err != nil {
		s.logger.WarnContext(ctx, "server cache put failed", "server_id", id, "error", err)
	}
	return srv, nil
}

// List returns servers for the admin listing.
func (s *ServerService) List(ctx context.Context, opts model.ServerListOptions) ([]*model.Server, error) {
	out, err := s.servers.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("list servers: %w", err)
	}
	return out, nil
}

// ListForViewer returns the servers the context's viewer belongs to.
func (s *ServerService) ListForViewer(ctx context.Context) ([]*model.Server, error) {
	viewer, ok := domainauth.ViewerFromContext(ctx)
	if !ok {
		return nil, ErrNoViewer
	}
	out, err := s.servers.ListForMember(ctx, viewer)
	if err != nil {
		return nil, fmt.Errorf("list servers for member: %w", err)
	}
	return out, nil
}

// UpdateServer renames or re-describes a server. Only the owner may update.
func (s *ServerService) UpdateServer(
	ctx context.Context,
	id int64,
	req model.UpdateServerRequest,
) (*model.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if _, err := s.ownedServer(ctx, id, "update"); err != nil {
		return nil, err
	}
	srv, err := s.servers.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("update server: %w", err)
	}
	s.invalidate(ctx, id)
	return srv, nil
}

// DeleteServer deletes a server. Only the owner may delete.
func (s *ServerService) DeleteServer(ctx context.Context, id int64) error {
	srv, err := s.ownedServer(ctx, id, "delete")
	if err != nil {
		return err
	}
	ok, err := s.servers.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete server: %w", err)
	}
	if !ok {
		return apperrors.NotFound("server not found")
	}
	s.invalidate(ctx, id)
	s.logger.InfoContext(ctx, "server deleted", "server_id", id, "owner", srv.Owner)
	return nil
}

// LeaveServer removes the viewer's membership. The owner cannot leave.
func (s *ServerService) LeaveServer(ctx context.Context, id int64) error {
	viewer, ok := domainauth.ViewerFromContext(ctx)
	if !ok {
		return ErrNoViewer
	}
	srv, err := s.servers.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("leave server: %w", err)
	}
	if srv.OwnedBy(viewer) {
		return apperrors.Conflict("the owner cannot leave their own server")
	}
	removed, err := s.members.Remove(ctx, core.MembershipKey{ServerID: id, UserID: viewer})
	if err != nil {
		return fmt.Errorf("leave server: %w", err)
	}
	if !removed {
		return apperrors.NotFound("not a member of this server")
	}
	s.logger.InfoContext(ctx, "member left server", "server_id", id, "user_id", viewer)
	return nil
}

// Overview loads the server, then its member list and widget counts concurrently.
// It is visible to the same viewers as GetServer.
func (s *ServerService) Overview(ctx context.Context, id int64) (*model.ServerOverview, error) {
	srv, err := s.GetServer(ctx, id)
	if err != nil {
		return nil, err
	}
	out := model.ServerOverview{Server: srv}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		members, err := s.members.ListByServer(gctx, id)
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		out.Members = members
		out.MemberCount = len(members)
		return nil
	})
	if s.games != nil {
		g.Go(func() error {
			n, err := s.games.CountByServer(gctx, id)
			if err != nil {
				return fmt.Errorf("count games: %w", err)
			}
			out.GameCount = n
			return nil
		})
	}
	if s.timetable != nil {
		g.Go(func() error {
			n, err := s.timetable.CountByServer(gctx, id)
			if err != nil {
				return fmt.Errorf("count timetable entries: %w", err)
			}
			out.EntryCount = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// ownedServer loads id fresh from the repository and checks the viewer owns it.
func (s *ServerService) ownedServer(ctx context.Context, id int64, verb string) (*model.Server, error) {
	viewer, ok := domainauth.ViewerFromContext(ctx)
	if !ok {
		return nil, ErrNoViewer
	}
	srv, err := s.servers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s server: %w", verb, err)
	}
	if !srv.OwnedBy(viewer) {
		return nil, apperrors.Forbidden("only the server owner may " + verb + " it")
	}
	return srv, nil
}

func (s *ServerService) cachedServer(ctx context.Context, id int64) *model.Server {
	if s.cache == nil {
		return nil
	}
	srv, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.WarnContext(ctx, "server cache get failed", "server_id", id, "error", err)
		return nil
	}
	if s.observer != nil {
		s.observer.CacheLookup(srv != nil)
	}
	return srv
}

func (s *ServerService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WarnContext(ctx, "server cache invalidate failed", "server_id", id, "error", err)
	}
}
