package httpx

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	healthResponse = `{"status":"ok"}`
	readyTimeout   = 2 * time.Second
)

// healthHandler returns a simple 200 OK status for liveness checks.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := io.WriteString(w, healthResponse); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}

// readyHandler runs every check concurrently and answers 503 naming the
// dependencies that failed.
func readyHandler(checks map[string]func(context.Context) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		var (
			mu     sync.Mutex
			failed = map[string]string{}
		)
		var g errgroup.Group
		for name, check := range checks {
			g.Go(func() error {
				if err := check(ctx); err != nil {
					mu.Lock()
					failed[name] = err.Error()
					mu.Unlock()
				}
				return nil
			})
		}
		_ = g.Wait()

		if len(failed) > 0 {
			WriteJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failed": failed})
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
