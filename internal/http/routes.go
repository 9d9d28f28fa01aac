package httpx

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	serverboard "github.com/target/serverboard"
	domainauth "github.com/target/serverboard/internal/domain/auth"
	"github.com/target/serverboard/internal/domain/serverview"
	"github.com/target/serverboard/internal/observability/metrics"
	"github.com/target/serverboard/internal/service"
)

const staticDir = "frontend/static"

// ServerBackend is the full server surface used by the UI and JSON routes.
type ServerBackend interface {
	ServerPageService
	ServerAPIService
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Servers   ServerBackend
	Timetable TimetableUIService
	Games     GameUIService
	// Auth guards every page and API route. Nil makes guarded routes answer 503.
	Auth         *service.AuthService
	CookieDomain string
	// Tokens orders server page loads across requests. Nil keeps ordering per request.
	Tokens serverview.TokenSource
	// Metrics is optional; when set, /metrics is served.
	Metrics *metrics.Recorder
	// Readiness checks run by /readyz, keyed by dependency name.
	Readiness map[string]func(context.Context) error
	IsDev     bool
	Logger    *slog.Logger
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// routeGuards are the wrappers applied to each class of route.
type routeGuards struct {
	api     func(http.Handler) http.Handler
	admin   func(http.Handler) http.Handler
	browser func(http.Handler) http.Handler
}

// newRouteGuards builds the session guards. Without an auth service every guard
// answers 503 so nothing behind it is served anonymously.
func newRouteGuards(auth *service.AuthService, cookieDomain string) routeGuards {
	if auth == nil {
		return routeGuards{api: authUnavailable, admin: authUnavailable, browser: authUnavailable}
	}
	csrf := CSRFProtection(CSRFConfig{CookieDomain: cookieDomain})
	browser := RequireAuthBrowser(auth)
	return routeGuards{
		api:   RequireAuth(auth),
		admin: RequireRole(auth, domainauth.RoleAdmin),
		browser: func(h http.Handler) http.Handler {
			return browser(csrf(h))
		},
	}
}

// NewRouter creates and configures a new HTTP router with browser middleware.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()
	guards := newRouteGuards(services.Auth, services.CookieDomain)
	if services.Auth == nil {
		services.logger().Warn("auth service not configured; guarded routes will answer 503")
	}

	if services.Servers != nil {
		registerServerAPIRoutes(mux, &ServerHandlers{Svc: services.Servers, GameSvc: services.Games}, guards)
	}
	registerHealthRoutes(mux, services.Readiness)
	if services.Metrics != nil {
		mux.Handle("GET /metrics", services.Metrics.Handler())
	}
	if services.Auth != nil {
		registerAuthRoutes(mux, &AuthHandlers{
			Svc:     services.Auth,
			Cookies: cookieJar{domain: services.CookieDomain},
			Logger:  services.Logger,
		}, guards)
	}
	mux.Handle("GET /static/", staticHandler(services.IsDev))

	if ui := newUIHandlers(services); ui != nil {
		registerUIRoutes(mux, ui, guards)
		mux.Handle("/", http.HandlerFunc(ui.NotFound))
	}

	return BrowserDetection()(mux)
}

// templateFS reads templates from disk in development so edits show up on reload.
func templateFS(isDev bool) (fs.FS, error) {
	if isDev {
		return os.DirFS(templateDir), nil
	}
	return fs.Sub(serverboard.TemplateFS, templateDir)
}

func newUIHandlers(services RouterServices) *UIHandlers {
	fsys, err := templateFS(services.IsDev)
	if err != nil {
		services.logger().Error("template filesystem unavailable", slog.Any("error", err))
		return nil
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: fsys, Logger: services.Logger})
	if err != nil {
		services.logger().Error("failed to create template renderer", slog.Any("error", err))
		return nil
	}
	h := &UIHandlers{
		T:         tr,
		Servers:   services.Servers,
		Timetable: services.Timetable,
		Games:     services.Games,
		Tokens:    services.Tokens,
		Metrics:   services.Metrics,
		IsDev:     services.IsDev,
		Logger:    services.Logger,
	}
	if services.Auth != nil {
		h.Sessions = services.Auth
	}
	return h
}

// staticHandler serves /static/* from disk in development and from the embedded
// FS otherwise.
func staticHandler(isDev bool) http.Handler {
	var fsys http.FileSystem = http.Dir(staticDir)
	cache := "no-cache"
	if !isDev {
		if sub, err := fs.Sub(serverboard.StaticFS, staticDir); err == nil {
			fsys = http.FS(sub)
		}
		cache = "public, max-age=3600"
	}
	files := http.StripPrefix("/static/", http.FileServer(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cache)
		files.ServeHTTP(w, r)
	})
}

func registerHealthRoutes(mux *http.ServeMux, checks map[string]func(context.Context) error) {
	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)
	mux.Handle("GET /readyz", readyHandler(checks))
}

// registerServerAPIRoutes wires the JSON server API. Listing every server is admin-only.
func registerServerAPIRoutes(mux *http.ServeMux, h *ServerHandlers, g routeGuards) {
	mux.Handle("GET /api/servers", g.admin(http.HandlerFunc(h.List)))
	mux.Handle("GET /api/servers/mine", g.api(http.HandlerFunc(h.Mine)))
	mux.Handle("GET /api/servers/{id}", g.api(http.HandlerFunc(h.Get)))
	mux.Handle("DELETE /api/servers/{id}", g.api(http.HandlerFunc(h.Delete)))
	mux.Handle("POST /api/servers/{id}/leave", g.api(http.HandlerFunc(h.Leave)))
	mux.Handle("GET /api/servers/{id}/overview", g.api(http.HandlerFunc(h.Overview)))
	mux.Handle("GET /api/servers/{id}/games", g.api(http.HandlerFunc(h.Games)))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, g routeGuards) {
	mux.HandleFunc("GET /auth/login", h.Login)
	mux.HandleFunc("GET /auth/callback", h.Callback)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
	mux.Handle("GET /api/auth/me", g.api(http.HandlerFunc(h.Me)))
}

// registerUIRoutes wires every browser page. Only the signed-out page is public.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers, g routeGuards) {
	page := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, g.browser(fn))
	}

	page("GET /{$}", h.Index)
	page("GET /dashboard", h.Dashboard)
	page("POST /servers", h.ServerCreate)

	page("GET /servers/{id}", h.ServerDetail)
	page("GET /servers/{id}/content", h.ServerContent)
	page("GET /servers/{id}/delete/confirm", h.ServerDeleteConfirm)
	page("GET /servers/{id}/leave/confirm", h.ServerLeaveConfirm)
	page("POST /servers/{id}/delete", h.ServerDelete)
	page("POST /servers/{id}/leave", h.ServerLeave)

	page("GET /servers/{id}/overview", h.ServerOverview)
	page("POST /servers/{id}/overview", h.ServerOverviewUpdate)
	page("GET /servers/{id}/timetable", h.ServerTimetable)
	page("POST /servers/{id}/timetable", h.ServerTimetableAdd)
	page("POST /servers/{id}/timetable/{entryID}/delete", h.ServerTimetableRemove)
	page("GET /servers/{id}/games", h.ServerGames)
	page("POST /servers/{id}/games", h.ServerGameAdd)
	page("POST /servers/{id}/games/{gameID}/delete", h.ServerGameRemove)

	mux.HandleFunc("GET /auth/signed-out", h.SignedOut)
}
