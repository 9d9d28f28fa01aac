package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/target/serverboard/internal/domain/model"
	"github.com/target/serverboard/internal/domain/serverview"
)

// ServerAPIService is the server surface exposed over JSON.
type ServerAPIService interface {
	GetServer(ctx context.Context, id int64) (*model.Server, error)
	List(ctx context.Context, opts model.ServerListOptions) ([]*model.Server, error)
	ListForViewer(ctx context.Context) ([]*model.Server, error)
	DeleteServer(ctx context.Context, id int64) error
	LeaveServer(ctx context.Context, id int64) error
	Overview(ctx context.Context, id int64) (*model.ServerOverview, error)
}

// ServerHandlers serves the /api/servers routes.
type ServerHandlers struct {
	Svc     ServerAPIService
	GameSvc GameUIService
}

var errInvalidServerID = errors.New("id must be a positive integer")

func pathServerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		WriteError(w, http.StatusBadRequest, "invalid_id", errInvalidServerID.Error())
	}
	return id, ok
}

// List returns servers for admins. Supports ?owner=, ?q=, ?limit= and ?offset=.
// GET /api/servers.
func (h *ServerHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := parseLimitOffset(r, 50, 500)
	q := r.URL.Query()
	servers, err := h.Svc.List(r.Context(), model.ServerListOptions{
		Owner:  strings.TrimSpace(q.Get("owner")),
		Q:      strings.TrimSpace(q.Get("q")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, servers)
}

// Mine returns the servers the viewer belongs to.
// GET /api/servers/mine.
func (h *ServerHandlers) Mine(w http.ResponseWriter, r *http.Request) {
	servers, err := h.Svc.ListForViewer(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, servers)
}

// Get returns one server.
// GET /api/servers/{id}.
func (h *ServerHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathServerID(w, r)
	if !ok {
		return
	}
	srv, err := h.Svc.GetServer(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, srv)
}

// Overview returns the server with its members and widget counts.
// GET /api/servers/{id}/overview.
func (h *ServerHandlers) Overview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathServerID(w, r)
	if !ok {
		return
	}
	overview, err := h.Svc.Overview(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, overview)
}

// Delete deletes a server owned by the viewer.
// DELETE /api/servers/{id}.
func (h *ServerHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathServerID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.DeleteServer(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Leave removes the viewer's membership.
// POST /api/servers/{id}/leave.
func (h *ServerHandlers) Leave(w http.ResponseWriter, r *http.Request) {
	id, ok := pathServerID(w, r)
	if !ok {
		return
	}
	if err := h.Svc.LeaveServer(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Games lists a server's games, optionally narrowed by a JMESPath ?filter=.
// GET /api/servers/{id}/games.
func (h *ServerHandlers) Games(w http.ResponseWriter, r *http.Request) {
	id, ok := pathServerID(w, r)
	if !ok {
		return
	}
	if h.GameSvc == nil {
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "game service not configured")
		return
	}
	games, err := h.GameSvc.List(r.Context(), model.GameListOptions{ServerID: id, Filter: r.URL.Query().Get("filter")})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, games)
}
