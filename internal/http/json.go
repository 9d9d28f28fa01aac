package httpx

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// apiError is the body of every JSON error response.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteJSON encodes v and writes it with code. Nothing is written if encoding fails
// except a plain 500.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

// WriteError writes a JSON error with a machine-readable code.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, apiError{Error: code, Message: message})
}

// parseLimitOffset reads ?limit= and ?offset=, clamping limit to [1, maxLimit].
func parseLimitOffset(r *http.Request, defLimit, maxLimit int) (int, int) {
	q := r.URL.Query()
	limit := atoiOr(q.Get("limit"), defLimit)
	offset := max(atoiOr(q.Get("offset"), 0), 0)
	return min(max(limit, 1), max(maxLimit, 1)), offset
}

// atoiOr parses s, returning def when s is blank or malformed.
func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
