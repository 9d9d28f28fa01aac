package httpx

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/target/serverboard/internal/domain/serverview"
	apperrors "github.com/target/serverboard/internal/errors"
)

const (
	msgLoadFailed      = "서버 정보 로드 실패"
	msgLoadFailedDesc  = "서버 정보를 불러오는데 실패했습니다."
	msgDeleteConfirm   = "정말 서버를 삭제하시겠습니까?"
	msgDeleteSucceeded = "서버가 삭제되었습니다"
	msgDeleteFailed    = "서버 삭제 실패"
	msgLeaveConfirm    = "이 서버를 떠나시겠습니까?"
	msgLeaveSucceeded  = "서버를 떠났습니다"
	msgLeaveFailed     = "서버 떠나기 실패"

	actionDelete = "delete"
	actionLeave  = "leave"

	serverViewPage = "server-detail"
)

func serverPageMeta() PageMeta {
	return PageMeta{Title: "서버 - Serverboard", PageTitle: "서버", CurrentPage: PageServer}
}

// viewKey scopes request tokens to one rendered page instance. The shell mints
// the view id, so two tabs on the same session order their loads separately.
// A missing or malformed id gets a fresh key and is never considered stale.
func viewKey(r *http.Request) string {
	owner := "anonymous"
	if s, ok := SessionFrom(r.Context()); ok && s.ID != "" {
		owner = s.ID
	}
	view := r.URL.Query().Get("view")
	if _, err := uuid.Parse(view); err != nil {
		view = uuid.NewString()
	}
	return owner + ":" + serverViewPage + ":" + view
}

// ServerDetail serves the page shell in the loading state. The content is
// fetched by a follow-up request so loading always renders before a terminal state.
func (h *UIHandlers) ServerDetail(w http.ResponseWriter, r *http.Request) {
	viewer := ViewerIdentity(r.Context())
	data := NewTemplateData(r, serverPageMeta())

	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.Metrics.PageState(serverview.PhaseInvalid.String())
		data.WithView(serverview.Invalid(viewer))
		h.renderPage(w, r, data.Build(), http.StatusBadRequest)
		return
	}

	data.WithView(serverview.Loading(id, viewer).ForView(uuid.NewString()))
	h.renderPage(w, r, data.Build(), 0)
}

// ServerContent resolves the loading placeholder into the absent or present branch.
func (h *UIHandlers) ServerContent(w http.ResponseWriter, r *http.Request) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.renderInvalid(w, r)
		return
	}

	tracker := serverview.NewTracker(serverview.TrackerOptions{
		Tokens: h.Tokens,
		Key:    viewKey(r),
		Viewer: ViewerIdentity(r.Context()),
		Logger: h.logger(),
	})
	defer tracker.Close()

	state, outcome, err := tracker.Load(r.Context(), id, h.Servers.GetServer)
	switch outcome {
	case serverview.OutcomeClosed:
		return
	case serverview.OutcomeStale:
		h.Metrics.StaleLoad()
		w.WriteHeader(http.StatusNoContent)
		return
	case serverview.OutcomeApplied:
	}

	if err != nil {
		level := slog.LevelError
		if apperrors.IsNotFound(err) {
			level = slog.LevelWarn
		}
		h.logger().Log(r.Context(), level, "server load failed", "server_id", id, "error", err)
		triggerToast(w, toast{Message: msgLoadFailed, Description: msgLoadFailedDesc, Type: toastError})
	}
	h.Metrics.PageState(state.Phase.String())
	h.renderServerState(w, r, state, 0)
}

// renderInvalid renders the invalid-request branch without touching the service.
func (h *UIHandlers) renderInvalid(w http.ResponseWriter, r *http.Request) {
	h.Metrics.PageState(serverview.PhaseInvalid.String())
	h.renderServerState(w, r, serverview.Invalid(ViewerIdentity(r.Context())), http.StatusBadRequest)
}

func (h *UIHandlers) renderServerState(w http.ResponseWriter, r *http.Request, state serverview.State, status int) {
	data := NewTemplateData(r, PageMeta{}).WithView(state).Build()
	h.renderFragment(w, r, FragmentOpts{Name: "server-state", Data: data, Status: status})
}

// confirmModal is the view model for the destructive action dialog.
type confirmModal struct {
	ServerID  int64
	Action    string
	Message   string
	Confirm   string
	CSRFToken string
}

// ServerDeleteConfirm renders the delete confirmation dialog.
func (h *UIHandlers) ServerDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	h.renderConfirm(w, r, confirmModal{Action: actionDelete, Message: msgDeleteConfirm, Confirm: "서버 삭제"})
}

// ServerLeaveConfirm renders the leave confirmation dialog.
func (h *UIHandlers) ServerLeaveConfirm(w http.ResponseWriter, r *http.Request) {
	h.renderConfirm(w, r, confirmModal{Action: actionLeave, Message: msgLeaveConfirm, Confirm: "서버 떠나기"})
}

func (h *UIHandlers) renderConfirm(w http.ResponseWriter, r *http.Request, modal confirmModal) {
	id, ok := serverview.ParseID(r.PathValue("id"))
	if !ok {
		h.renderInvalid(w, r)
		return
	}
	modal.ServerID = id
	modal.CSRFToken = GetCSRFToken(r)
	h.renderFragment(w, r, FragmentOpts{Name: "server-confirm-modal", Data: modal})
}

// ServerDelete deletes the server after confirmation and navigates to the dashboard.
func (h *UIHandlers) ServerDelete(w http.ResponseWriter, r *http.Request) {
	h.handleServerAction(w, r, serverAction{
		Name:     actionDelete,
		Run:      h.Servers.DeleteServer,
		Success:  msgDeleteSucceeded,
		Failure:  msgDeleteFailed,
		Redirect: dashboardPath,
	})
}

// ServerLeave removes the viewer's membership after confirmation and navigates to the dashboard.
func (h *UIHandlers) ServerLeave(w http.ResponseWriter, r *http.Request) {
	h.handleServerAction(w, r, serverAction{
		Name:     actionLeave,
		Run:      h.Servers.LeaveServer,
		Success:  msgLeaveSucceeded,
		Failure:  msgLeaveFailed,
		Redirect: dashboardPath,
	})
}
