package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/target/serverboard/internal/domain/model"
	"github.com/target/serverboard/internal/domain/serverview"
	"github.com/target/serverboard/internal/observability/metrics"
)

const (
	msgOverviewFailed  = "서버 개요를 불러오지 못했습니다."
	msgUpdateSucceeded = "서버 정보가 수정되었습니다"
	msgUpdateFailed    = "서버 정보 수정 실패"

	actionUpdate = "update"
)

// fragmentRenderer adapts a named fragment to the ErrorRenderer signature.
func (h *UIHandlers) fragmentRenderer(name string) ErrorRenderer {
	return func(w http.ResponseWriter, r *http.Request, data map[string]any, status int) {
		h.renderFragment(w, r, FragmentOpts{Name: name, Data: data, Status: status})
	}
}

// ServerOverview renders the overview widget: record summary, members and counts.
func (h *UIHandlers) ServerOverview(w http.ResponseWriter, r *http.Request) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.renderInvalid(w, r)
		return
	}

	data := NewTemplateData(r, PageMeta{}).With("ServerID", id).With("Form", serverForm(nil))
	overview, err := h.Servers.Overview(r.Context(), id)
	if err != nil {
		h.logger().WarnContext(r.Context(), "server overview failed", "server_id", id, "error", err)
		data.WithError(msgOverviewFailed)
	} else {
		data.With("Overview", overview).
			WithView(serverview.Present(overview.Server, ViewerIdentity(r.Context()))).
			With("Form", serverForm(overview.Server))
	}
	h.renderFragment(w, r, FragmentOpts{Name: "server-overview", Data: data.Build()})
}

// ServerOverviewUpdate saves the overview form. The response carries the new summary
// plus an out-of-band header built from the returned record, so the page does not refetch.
func (h *UIHandlers) ServerOverviewUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.renderInvalid(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		h.renderInvalid(w, r)
		return
	}

	form := map[string]string{
		"name":        strings.TrimSpace(r.PostFormValue("name")),
		"description": strings.TrimSpace(r.PostFormValue("description")),
	}
	req := model.UpdateServerRequest{Name: stringPtr(form["name"])}
	if _, present := r.PostForm["description"]; present {
		desc := form["description"]
		req.Description = &desc
	}

	start := time.Now()
	updated, err := h.Servers.UpdateServer(r.Context(), id, req)
	h.Metrics.Action(metrics.ActionMetric{
		Action:   actionUpdate,
		Result:   resultLabel(err),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		h.logger().WarnContext(r.Context(), "server update failed", "server_id", id, "error", err)
		RenderError(ErrorOpts{
			W:         w,
			R:         r,
			Err:       err,
			Renderer:  h.fragmentRenderer("server-overview-form"),
			Data:      map[string]any{"ServerID": id, "Form": form},
			ShowToast: true,
		})
		return
	}

	view := serverview.Present(updated, ViewerIdentity(r.Context()))
	triggerToast(w, toast{Message: msgUpdateSucceeded, Type: toastSuccess})
	data := NewTemplateData(r, PageMeta{}).
		WithView(view).
		With("ServerID", id).
		With("Form", serverForm(updated)).
		Build()
	h.renderFragment(w, r, FragmentOpts{Name: "server-overview-updated", Data: data})
}

// serverForm returns the overview form values for srv.
func serverForm(srv *model.Server) map[string]string {
	form := map[string]string{"name": "", "description": ""}
	if srv == nil {
		return form
	}
	form["name"] = srv.Name
	if srv.Description != nil {
		form["description"] = *srv.Description
	}
	return form
}

// stringPtr returns nil for an empty string.
func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
