package httpx

import (
	"bytes"
	"cmp"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/serverboard/internal/domain/auth"
)

// viewerEcho answers 200 with the viewer identity from the request context.
var viewerEcho = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(ViewerIdentity(r.Context())))
})

func TestSessionGuards(t *testing.T) {
	auth := newTestAuth(t)

	tests := []struct {
		name    string
		guard   func(http.Handler) http.Handler
		session string
		accept  string
		status  int
		body    string
	}{
		{name: "api anonymous", guard: RequireAuth(auth), status: http.StatusUnauthorized, body: "authentication_required"},
		{name: "api unknown session", guard: RequireAuth(auth), session: "gone", status: http.StatusUnauthorized},
		{name: "api member", guard: RequireAuth(auth), session: "alice", status: http.StatusOK, body: "alice"},
		{name: "admin as user", guard: RequireRole(auth, domainauth.RoleAdmin), session: "alice", status: http.StatusForbidden, body: "insufficient_permissions"},
		{name: "admin as admin", guard: RequireRole(auth, domainauth.RoleAdmin), session: "admin", status: http.StatusOK, body: "root"},
		{name: "browser anonymous", guard: RequireAuthBrowser(auth), accept: "text/html", status: http.StatusSeeOther},
		{name: "browser anonymous json", guard: RequireAuthBrowser(auth), accept: "application/json", status: http.StatusUnauthorized},
		{name: "browser member", guard: RequireAuthBrowser(auth), session: "alice", accept: "text/html", status: http.StatusOK, body: "alice"},
		{name: "unavailable", guard: authUnavailable, session: "alice", status: http.StatusServiceUnavailable, body: "auth_unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/servers/42", nil)
			r.Header.Set("Accept", cmp.Or(tt.accept, "application/json"))
			if tt.session != "" {
				r.AddCookie(&http.Cookie{Name: sessionCookie, Value: tt.session})
			}
			w := httptest.NewRecorder()
			tt.guard(viewerEcho).ServeHTTP(w, r)

			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Contains(t, w.Body.String(), tt.body)
			}
		})
	}
}

func TestRequireAuthBrowser_Redirects(t *testing.T) {
	guard := RequireAuthBrowser(newTestAuth(t))(viewerEcho)

	t.Run("full page goes to login", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/servers/42?tab=games", nil)
		r.Header.Set("Accept", "text/html")
		w := httptest.NewRecorder()
		guard.ServeHTTP(w, r)

		require.Equal(t, http.StatusSeeOther, w.Code)
		loc, err := url.Parse(w.Header().Get("Location"))
		require.NoError(t, err)
		assert.Equal(t, "/auth/login", loc.Path)
		assert.Equal(t, "/servers/42?tab=games", loc.Query().Get("redirect_uri"))
	})

	t.Run("htmx returns to the current page", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/servers/42/content", nil)
		r.Header.Set("Hx-Request", "true")
		r.Header.Set("Hx-Current-Url", "https://board.example/servers/42")
		w := httptest.NewRecorder()
		guard.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		loc, err := url.Parse(w.Header().Get("Hx-Redirect"))
		require.NoError(t, err)
		assert.Equal(t, "/auth/signed-out", loc.Path)
		assert.Equal(t, "/servers/42", loc.Query().Get("redirect_uri"))
	})
}

func TestCSRFProtection(t *testing.T) {
	handler := CSRFProtection(CSRFConfig{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetCSRFToken(r)))
	}))

	t.Run("safe method issues a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
		require.Equal(t, http.StatusOK, w.Code)
		c := cookieNamed(w, csrfCookieName)
		require.NotNil(t, c)
		assert.Equal(t, c.Value, w.Body.String())
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})

	post := func(token string, form url.Values, header string) *httptest.ResponseRecorder {
		var body *strings.Reader
		if form != nil {
			body = strings.NewReader(form.Encode())
		} else {
			body = strings.NewReader("")
		}
		r := httptest.NewRequest(http.MethodPost, "/servers/42/delete", body)
		if form != nil {
			r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		if header != "" {
			r.Header.Set(csrfHeaderName, header)
		}
		if token != "" {
			r.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		return w
	}

	assert.Equal(t, http.StatusOK, post("tok", nil, "tok").Code)
	assert.Equal(t, http.StatusOK, post("tok", url.Values{csrfFormField: {"tok"}}, "").Code)
	assert.Equal(t, http.StatusForbidden, post("tok", nil, "").Code)
	assert.Equal(t, http.StatusForbidden, post("tok", nil, "other").Code)
	assert.Equal(t, http.StatusForbidden, post("", nil, "tok").Code)
}

func TestBrowserDetection(t *testing.T) {
	tests := []struct {
		path    string
		headers map[string]string
		want    bool
	}{
		{path: "/dashboard", want: true},
		{path: "/dashboard", headers: map[string]string{"Accept": "application/json"}, want: false},
		{path: "/dashboard", headers: map[string]string{"Accept": "text/html,application/xhtml+xml"}, want: true},
		{path: "/servers/42/content", headers: map[string]string{"Hx-Request": "true", "Accept": "*/*"}, want: true},
		{path: "/api/servers", headers: map[string]string{"Accept": "text/html"}, want: false},
		{path: "/static/css/styles.css", want: false},
	}
	for _, tt := range tests {
		var got bool
		h := BrowserDetection()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = IsBrowserRequest(r)
		}))
		r := httptest.NewRequest(http.MethodGet, tt.path, nil)
		for k, v := range tt.headers {
			r.Header.Set(k, v)
		}
		h.ServeHTTP(httptest.NewRecorder(), r)
		assert.Equal(t, tt.want, got, "%s %v", tt.path, tt.headers)
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/servers/42", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, buf.String(), "handler panic")
	assert.Contains(t, buf.String(), "boom")

	abort := Recover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		abort.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))

	r := httptest.NewRequest(http.MethodGet, "/servers/7", nil)
	r.Header.Set("Hx-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), r)

	line := buf.String()
	assert.Contains(t, line, `"level":"WARN"`)
	assert.Contains(t, line, `"status":404`)
	assert.Contains(t, line, `"path":"/servers/7"`)
	assert.Contains(t, line, `"htmx":true`)
}
