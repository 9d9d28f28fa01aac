package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/target/serverboard/internal/core"
	"github.com/target/serverboard/internal/domain/model"
	"github.com/target/serverboard/internal/domain/serverview"
	"github.com/target/serverboard/internal/observability/metrics"
	"github.com/target/serverboard/internal/service"
)

// ServerPageService is the server surface the detail page and dashboard need.
type ServerPageService interface {
	GetServer(ctx context.Context, id int64) (*model.Server, error)
	DeleteServer(ctx context.Context, id int64) error
	LeaveServer(ctx context.Context, id int64) error
	UpdateServer(ctx context.Context, id int64, req model.UpdateServerRequest) (*model.Server, error)
	Overview(ctx context.Context, id int64) (*model.ServerOverview, error)
	ListForViewer(ctx context.Context) ([]*model.Server, error)
	Create(ctx context.Context, req *model.CreateServerRequest) (*model.Server, error)
}

// TimetableUIService is a minimal interface for the timetable widget.
type TimetableUIService interface {
	List(ctx context.Context, serverID int64) ([]*model.TimetableEntry, error)
	Add(ctx context.Context, req model.CreateTimetableEntryRequest) (*model.TimetableEntry, error)
	Remove(ctx context.Context, key core.ServerItemKey) error
}

// GameUIService is a minimal interface for the game management widget.
type GameUIService interface {
	List(ctx context.Context, opts model.GameListOptions) ([]*model.Game, error)
	Add(ctx context.Context, req model.CreateGameRequest) (*model.Game, error)
	Remove(ctx context.Context, key core.ServerItemKey) error
}

// Compile-time interface assertions to ensure concrete services satisfy their UI interfaces.
var (
	_ ServerPageService  = (*service.ServerService)(nil)
	_ TimetableUIService = (*service.TimetableService)(nil)
	_ GameUIService      = (*service.GameService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T         *TemplateRenderer
	Servers   ServerPageService
	Timetable TimetableUIService
	Games     GameUIService
	// Tokens orders overlapping content loads of the same page. Nil keeps ordering per request.
	Tokens serverview.TokenSource
	// Sessions lets public pages tell signed-in viewers apart. Optional.
	Sessions SessionLookup
	Metrics  *metrics.Recorder
	IsDev    bool // Development mode flag for enhanced error reporting
	Logger   *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Toast types understood by the client-side toast container.
const (
	toastSuccess = "success"
	toastError   = "error"
)

// toast is the showToast event payload.
type toast struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// triggerToast sends a standardized HX-Trigger payload for toast notifications.
func triggerToast(w http.ResponseWriter, t toast) {
	if w == nil || strings.TrimSpace(t.Message) == "" {
		return
	}
	t.Type = strings.TrimSpace(t.Type)
	HTMX(w).Trigger("showToast", t)
}

// serverAction describes one confirm-then-mutate-then-navigate flow on a server.
type serverAction struct {
	Name     string
	Run      func(ctx context.Context, id int64) error
	Success  string
	Failure  string
	Redirect string
}

// handleServerAction coordinates the destructive server actions. Without confirm=true
// nothing is called and the modal is closed. Failures leave the page as it is and
// show the same toast whatever the cause.
func (h *UIHandlers) handleServerAction(w http.ResponseWriter, r *http.Request, act serverAction) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.renderInvalid(w, r)
		return
	}
	if r.FormValue("confirm") != "true" {
		h.Metrics.Action(metrics.ActionMetric{Action: act.Name, Result: metrics.ResultNoop})
		HTMX(w).Trigger("closeModal", nil)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	start := time.Now()
	err := act.Run(r.Context(), id)
	h.Metrics.Action(metrics.ActionMetric{
		Action:   act.Name,
		Result:   resultLabel(err),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "server action failed",
			"action", act.Name, "server_id", id, "error", err)
		triggerToast(w, toast{Message: act.Failure, Type: toastError})
		w.WriteHeader(http.StatusNoContent)
		return
	}

	triggerToast(w, toast{Message: act.Success, Type: toastSuccess})
	HTMX(w).Redirect(act.Redirect)
}

func resultLabel(err error) string {
	if err != nil {
		return metrics.ResultError
	}
	return metrics.ResultSuccess
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// navUser is the signed-in viewer shown in the navbar.
type navUser struct {
	ID          string
	DisplayName string
	Email       string
	Role        string
}

// basePageData builds the data every page template reads.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":           meta.Title,
		"PageTitle":       meta.PageTitle,
		"CurrentPage":     meta.CurrentPage,
		"IsAuthenticated": false,
	}
	if token := GetCSRFToken(r); token != "" {
		data["CSRFToken"] = token
	}
	if s, ok := SessionFrom(r.Context()); ok {
		data["IsAuthenticated"] = true
		data["User"] = &navUser{
			ID:          s.Identity(),
			DisplayName: s.DisplayName(),
			Email:       s.Email,
			Role:        string(s.Role),
		}
	}
	return data
}

// PageSpec defines metadata and an optional fetch for page-specific data.
type PageSpec struct {
	Meta  PageMeta
	Fetch func(ctx context.Context, data map[string]any) error
}

// Page builds base data, optionally fetches content data, and renders.
func (h *UIHandlers) Page(w http.ResponseWriter, r *http.Request, spec PageSpec) {
	data := basePageData(r, spec.Meta)
	if spec.Fetch != nil {
		if err := spec.Fetch(r.Context(), data); err != nil {
			markPageError(data)
		}
	}
	h.renderPage(w, r, data, 0)
}

// renderPage writes the full layout, or for htmx only the page content with a
// <title> and a nav:activate event. A zero status means 200.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any, status int) {
	opts := FragmentOpts{Name: "layout", Data: data, Status: status}
	if WantsPartial(r) {
		page, _ := data["CurrentPage"].(string)
		title, _ := data["Title"].(string)
		opts.Name = ContentTemplateFor(page)
		opts.DocTitle = title
		HTMX(w).Trigger("nav:activate", map[string]string{"path": r.URL.Path})
	}
	if err := h.T.Render(w, opts); err != nil {
		h.templateFailed(w, r, err, opts.Name)
	}
}

// renderFragment executes a single named template, used for widget and modal responses.
func (h *UIHandlers) renderFragment(w http.ResponseWriter, r *http.Request, opts FragmentOpts) {
	if err := h.T.Render(w, opts); err != nil {
		h.templateFailed(w, r, err, opts.Name)
	}
}

func markPageError(data map[string]any) {
	data["Error"] = true
	if _, ok := data["ErrorMessage"]; ok {
		return
	}
	data["ErrorMessage"] = "예기치 않은 오류가 발생했습니다. 다시 시도해 주세요."
}

// templateFailed answers a render failure with a 500. Development builds include
// the template error in the body.
func (h *UIHandlers) templateFailed(w http.ResponseWriter, r *http.Request, err error, name string) {
	h.logger().ErrorContext(r.Context(), "template rendering failed",
		"error", err, "template", name, "path", r.URL.Path)
	w.Header().Del(hxTrigger)
	msg := "internal server error"
	if h.IsDev {
		msg = name + ": " + err.Error()
	}
	http.Error(w, msg, http.StatusInternalServerError)
}
