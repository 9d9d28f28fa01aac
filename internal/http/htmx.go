package httpx

import (
	"encoding/json"
	"net/http"
	"strings"
)

const (
	hxTrigger  = "Hx-Trigger"
	hxRedirect = "Hx-Redirect"
)

// IsHTMX reports whether htmx issued the request.
func IsHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

// WantsPartial reports whether only the content fragment should be rendered.
// Every htmx request qualifies, history restores included.
func WantsPartial(r *http.Request) bool {
	return IsHTMX(r)
}

// HTMXResponse sets htmx response headers.
type HTMXResponse struct {
	w http.ResponseWriter
}

// HTMX wraps w for setting htmx response headers.
func HTMX(w http.ResponseWriter) *HTMXResponse {
	return &HTMXResponse{w: w}
}

// Trigger adds a client event to the HX-Trigger header. Events already set on
// the response are kept, so a toast and a modal close can travel together.
// A nil payload sends true.
func (h *HTMXResponse) Trigger(event string, payload any) *HTMXResponse {
	events := map[string]json.RawMessage{}
	if current := h.w.Header().Get(hxTrigger); current != "" {
		if err := json.Unmarshal([]byte(current), &events); err != nil {
			events = map[string]json.RawMessage{current: json.RawMessage("true")}
		}
	}

	value := json.RawMessage("true")
	if payload != nil {
		b, err := json.Marshal(payload)
		if err == nil {
			value = b
		}
	}
	events[event] = value

	b, err := json.Marshal(events)
	if err != nil {
		return h
	}
	h.w.Header().Set(hxTrigger, string(b))
	return h
}

// Redirect tells htmx to navigate to url and ends the response with 204.
func (h *HTMXResponse) Redirect(url string) {
	h.w.Header().Set(hxRedirect, url)
	h.w.WriteHeader(http.StatusNoContent)
}
