package httpx

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/target/serverboard/internal/domain/model"
)

const (
	errMsgUnableLoadServers = "서버 목록을 불러오지 못했습니다."
	msgServerCreated        = "서버가 생성되었습니다"
)

// DashboardServer is a server row on the dashboard.
type DashboardServer struct {
	ID        int64
	Name      string
	Owner     string
	IsOwner   bool
	CreatedAt string
}

// Href returns the detail page path.
func (s DashboardServer) Href() string { return fmt.Sprintf(serverPathFmt, s.ID) }

func dashboardMeta(page string) PageMeta {
	return PageMeta{Title: "대시보드 - Serverboard", PageTitle: "내 서버", CurrentPage: page}
}

// Index serves the home page with dashboard content.
func (h *UIHandlers) Index(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: dashboardMeta(PageHome),
		Fetch: func(ctx context.Context, data map[string]any) error {
			h.populateServers(ctx, data)
			return nil
		},
	})
}

// Dashboard serves the list of servers the viewer belongs to. Delete and leave
// navigate here.
func (h *UIHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.Page(w, r, PageSpec{
		Meta: dashboardMeta(PageDashboard),
		Fetch: func(ctx context.Context, data map[string]any) error {
			h.populateServers(ctx, data)
			return nil
		},
	})
}

func (h *UIHandlers) populateServers(ctx context.Context, data map[string]any) {
	data["Servers"] = []DashboardServer{}
	data["ServersError"] = ""

	if h.Servers == nil {
		data["ServersError"] = errMsgUnableLoadServers
		return
	}

	servers, err := h.Servers.ListForViewer(ctx)
	if err != nil {
		h.logger().WarnContext(ctx, "failed to list servers for dashboard", "error", err)
		data["ServersError"] = errMsgUnableLoadServers
		return
	}
	data["Servers"] = toDashboardServers(servers, ViewerIdentity(ctx))
}

func toDashboardServers(servers []*model.Server, viewer string) []DashboardServer {
	rows := make([]DashboardServer, 0, len(servers))
	for _, s := range servers {
		rows = append(rows, DashboardServer{
			ID:        s.ID,
			Name:      s.Name,
			Owner:     s.Owner,
			IsOwner:   s.OwnedBy(viewer),
			CreatedAt: relativeTime(s.CreatedAt, time.Now()),
		})
	}
	return rows
}

// ServerCreate creates a server owned by the viewer and navigates to its page.
func (h *UIHandlers) ServerCreate(w http.ResponseWriter, r *http.Request) {
	form := map[string]string{
		"name":        strings.TrimSpace(r.FormValue("name")),
		"description": strings.TrimSpace(r.FormValue("description")),
	}
	req := &model.CreateServerRequest{
		Name:        form["name"],
		Owner:       ViewerIdentity(r.Context()),
		Description: stringPtr(form["description"]),
	}

	srv, err := h.Servers.Create(r.Context(), req)
	if err != nil {
		h.logger().InfoContext(r.Context(), "server create rejected", "error", err)
		data := map[string]any{"Form": form}
		h.populateServers(r.Context(), data)
		RenderError(ErrorOpts{
			W:        w,
			R:        r,
			Err:      err,
			Renderer: h.renderPage,
			PageMeta: dashboardMeta(PageDashboard),
			Data:     data,
		})
		return
	}

	triggerToast(w, toast{Message: msgServerCreated, Type: toastSuccess})
	HTMX(w).Redirect(fmt.Sprintf(serverPathFmt, srv.ID))
}
