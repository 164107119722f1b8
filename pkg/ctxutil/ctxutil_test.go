package ctxutil

import (
	"context"
	"testing"
)

func TestActorRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithActor(context.Background(), "Jordan T")

	name, ok := ActorFromCtx(ctx)
	if !ok {
		t.Fatal("expected actor to be present")
	}
	if name != "Jordan T" {
		t.Errorf("actor: got %q, want %q", name, "Jordan T")
	}
}

func TestActorFromCtx_Missing(t *testing.T) {
	t.Parallel()

	name, ok := ActorFromCtx(context.Background())
	if ok {
		t.Error("expected ok=false for missing actor")
	}
	if name != "" {
		t.Errorf("name: got %q, want empty", name)
	}
}

func TestActorFromCtx_Empty(t *testing.T) {
	t.Parallel()

	ctx := WithActor(context.Background(), "")
	if _, ok := ActorFromCtx(ctx); ok {
		t.Error("expected ok=false for empty actor")
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-42")
	if got := RequestIDFromCtx(ctx); got != "req-42" {
		t.Errorf("request id: got %q, want %q", got, "req-42")
	}
	if got := RequestIDFromCtx(context.Background()); got != "" {
		t.Errorf("request id on empty ctx: got %q, want empty", got)
	}
}
