package auth

import (
	"context"
	"testing"
)

func TestViewerContext(t *testing.T) {
	if _, ok := ViewerFromContext(context.Background()); ok {
		t.Fatalf("expected no viewer on empty context")
	}
	ctx := WithViewer(context.Background(), "  ")
	if _, ok := ViewerFromContext(ctx); ok {
		t.Fatalf("blank identity must not be stored")
	}
	ctx = WithViewer(context.Background(), " bob ")
	if v, ok := ViewerFromContext(ctx); !ok || v != "bob" {
		t.Fatalf("ViewerFromContext = %q, %v; want bob, true", v, ok)
	}
}
