package auth

import (
	"context"
	"strings"
)

type viewerKey struct{}

// WithViewer returns a child context carrying the viewer identity used for ownership
// and membership checks. Blank identities are ignored.
func WithViewer(ctx context.Context, identity string) context.Context {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ctx
	}
	return context.WithValue(ctx, viewerKey{}, identity)
}

// ViewerFromContext returns the viewer identity stored by WithViewer.
func ViewerFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(viewerKey{}).(string)
	return v, ok && v != ""
}
