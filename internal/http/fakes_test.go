package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/target/serverboard/internal/core"
	domainauth "github.com/target/serverboard/internal/domain/auth"
	"github.com/target/serverboard/internal/domain/model"
	apperrors "github.com/target/serverboard/internal/errors"
)

// fakeServers is an in-memory ServerBackend that counts calls.
type fakeServers struct {
	mu      sync.Mutex
	servers map[int64]*model.Server
	calls   map[string]int

	getErr    error
	deleteErr error
	leaveErr  error
	updateErr error
	// onGet runs inside GetServer before the result is returned.
	onGet func(ctx context.Context)
}

var _ ServerBackend = (*fakeServers)(nil)

func newFakeServers(servers ...*model.Server) *fakeServers {
	f := &fakeServers{servers: map[int64]*model.Server{}, calls: map[string]int{}}
	for _, s := range servers {
		f.servers[s.ID] = s
	}
	return f
}

func alphaServer() *model.Server {
	desc := "주말 보드게임 모임"
	return &model.Server{
		ID:          42,
		Name:        "Alpha",
		Owner:       "alice",
		Description: &desc,
		CreatedAt:   time.Now().Add(-2 * time.Hour),
	}
}

func (f *fakeServers) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeServers) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
}

func (f *fakeServers) lookup(id int64) (*model.Server, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	srv, ok := f.servers[id]
	if !ok {
		return nil, apperrors.NotFound("server not found")
	}
	cp := *srv
	return &cp, nil
}

func (f *fakeServers) GetServer(ctx context.Context, id int64) (*model.Server, error) {
	f.record("GetServer")
	if f.onGet != nil {
		f.onGet(ctx)
	}
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.lookup(id)
}

func (f *fakeServers) List(_ context.Context, opts model.ServerListOptions) ([]*model.Server, error) {
	f.record("List")
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Server{}
	for _, s := range f.servers {
		if opts.Owner != "" && s.Owner != opts.Owner {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServers) ListForViewer(ctx context.Context) ([]*model.Server, error) {
	f.record("ListForViewer")
	out := []*model.Server{}
	if _, ok := domainauth.ViewerFromContext(ctx); !ok {
		return out, nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.servers {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServers) Create(_ context.Context, req *model.CreateServerRequest) (*model.Server, error) {
	f.record("Create")
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	id := int64(len(f.servers) + 100)
	srv := &model.Server{ID: id, Name: req.Name, Owner: req.Owner, Description: req.Description}
	f.servers[id] = srv
	return srv, nil
}

func (f *fakeServers) UpdateServer(_ context.Context, id int64, req model.UpdateServerRequest) (*model.Server, error) {
	f.record("UpdateServer")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	srv, ok := f.servers[id]
	if !ok {
		return nil, apperrors.NotFound("server not found")
	}
	if req.Name != nil {
		srv.Name = *req.Name
	}
	if req.Description != nil {
		srv.Description = req.Description
	}
	cp := *srv
	return &cp, nil
}

func (f *fakeServers) DeleteServer(_ context.Context, _ int64) error {
	f.record("DeleteServer")
	return f.deleteErr
}

func (f *fakeServers) LeaveServer(_ context.Context, _ int64) error {
	f.record("LeaveServer")
	return f.leaveErr
}

func (f *fakeServers) Overview(_ context.Context, id int64) (*model.ServerOverview, error) {
	f.record("Overview")
	srv, err := f.lookup(id)
	if err != nil {
		return nil, err
	}
	return &model.ServerOverview{
		Server:      srv,
		Members:     []*model.ServerMember{{ServerID: id, UserID: srv.Owner}},
		MemberCount: 1,
	}, nil
}

// fakeTimetable is an in-memory TimetableUIService.
type fakeTimetable struct {
	mu      sync.Mutex
	entries []*model.TimetableEntry
	listErr error
}

func (f *fakeTimetable) List(_ context.Context, serverID int64) ([]*model.TimetableEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.TimetableEntry{}
	for _, e := range f.entries {
		if e.ServerID == serverID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeTimetable) Add(_ context.Context, req model.CreateTimetableEntryRequest) (*model.TimetableEntry, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.ValidationField("title", "title is required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e := &model.TimetableEntry{
		ID:       fmt.Sprintf("e%d", len(f.entries)+1),
		ServerID: req.ServerID,
		Weekday:  req.Weekday,
		Title:    req.Title,
	}
	f.entries = append(f.entries, e)
	return e, nil
}

func (f *fakeTimetable) Remove(_ context.Context, key core.ServerItemKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.ServerID == key.ServerID && e.ID == key.ID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("timetable entry not found")
}

// fakeGames is an in-memory GameUIService.
type fakeGames struct {
	mu    sync.Mutex
	games []*model.Game
}

func (f *fakeGames) List(_ context.Context, opts model.GameListOptions) ([]*model.Game, error) {
	if opts.Filter == "[[" {
		return nil, apperrors.ValidationField("filter", "invalid filter expression")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*model.Game{}
	for _, g := range f.games {
		if g.ServerID == opts.ServerID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGames) Add(_ context.Context, req model.CreateGameRequest) (*model.Game, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.ValidationField("name", "name is required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	g := &model.Game{ID: "g" + req.Name, ServerID: req.ServerID, Name: req.Name}
	f.games = append(f.games, g)
	return g, nil
}

func (f *fakeGames) Remove(_ context.Context, key core.ServerItemKey) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, g := range f.games {
		if g.ServerID == key.ServerID && g.ID == key.ID {
			f.games = append(f.games[:i], f.games[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("game not found")
}

// newTestRenderer parses the embedded templates.
func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	fsys, err := templateFS(false)
	require.NoError(t, err)
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: fsys})
	require.NoError(t, err)
	return tr
}

// serverTestHandlers returns UI handlers backed by the fakes.
func serverTestHandlers(t *testing.T, servers *fakeServers) *UIHandlers {
	t.Helper()
	return &UIHandlers{
		T:         newTestRenderer(t),
		Servers:   servers,
		Timetable: &fakeTimetable{},
		Games:     &fakeGames{},
	}
}

// asViewer returns r carrying a session for the given user id.
func asViewer(r *http.Request, userID string) *http.Request {
	sess := &domainauth.Session{
		ID:        "sess-" + userID,
		UserID:    userID,
		Role:      domainauth.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return r.WithContext(SetSessionInContext(r.Context(), sess))
}

// htmxRequest builds an HTMX request with the path value id set.
func htmxRequest(method, target, id string, form url.Values) *http.Request {
	var r *http.Request
	if form != nil {
		r, _ = http.NewRequest(method, target, strings.NewReader(form.Encode()))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		r, _ = http.NewRequest(method, target, nil)
	}
	r.Header.Set("HX-Request", "true")
	if id != "" {
		r.SetPathValue("id", id)
	}
	return r
}
