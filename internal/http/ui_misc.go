package httpx

import (
	"net/http"
	"net/url"
)

// SignedOut renders the signed-out page with a link back to sign in.
func (h *UIHandlers) SignedOut(w http.ResponseWriter, r *http.Request) {
	redirect := safeRedirectPath(r.URL.Query().Get("redirect_uri"))
	err := h.T.Render(w, FragmentOpts{
		Name: "signed-out-page",
		Data: map[string]any{
			"Title":       "로그아웃됨 - Serverboard",
			"RedirectURI": redirect,
		},
	})
	if err != nil {
		http.Redirect(w, r, "/auth/login?redirect_uri="+url.QueryEscape(redirect), http.StatusSeeOther)
	}
}

// NotFound answers unmatched routes: an HTML error page for browsers, JSON otherwise.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if !IsBrowserRequest(r) {
		WriteError(w, http.StatusNotFound, "not_found", "not found")
		return
	}
	signedIn := h.Sessions != nil && sessionFromCookie(r, h.Sessions) != nil
	err := h.T.Render(w, FragmentOpts{
		Name:   "error-layout",
		Status: http.StatusNotFound,
		Data: map[string]any{
			"Title":       "페이지를 찾을 수 없음 - Serverboard",
			"Code":        "404",
			"Message":     "요청한 페이지가 존재하지 않습니다.",
			"ShowLogin":   !signedIn,
			"RedirectURI": safeRedirectPath(r.URL.RequestURI()),
		},
	})
	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
	}
}
