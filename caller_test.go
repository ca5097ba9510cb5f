package authcore

import (
	"context"
	"testing"
)

func TestCallerFromContextEmpty(t *testing.T) {
	if _, ok := CallerFromContext(context.Background()); ok {
		t.Fatal("caller found in an empty context")
	}
	if _, ok := CallerFromContext(nil); ok {
		t.Fatal("caller found in a nil context")
	}
}

func TestWithCallerRoundTrip(t *testing.T) {
	want := &Caller{ID: "u-1", Username: "alice", Roles: []string{"STANDARD"}}
	ctx := WithCaller(context.Background(), want)

	got, ok := CallerFromContext(ctx)
	if !ok {
		t.Fatal("caller not found after WithCaller")
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestWithCallerNilStaysAnonymous(t *testing.T) {
	ctx := WithCaller(context.Background(), nil)
	if _, ok := CallerFromContext(ctx); ok {
		t.Fatal("nil caller binding treated as authenticated")
	}
}

func TestCallerDoesNotLeakAcrossContexts(t *testing.T) {
	bound := WithCaller(context.Background(), &Caller{Username: "alice"})
	_ = bound

	// A sibling context derived from the same parent sees nothing.
	if _, ok := CallerFromContext(context.Background()); ok {
		t.Fatal("caller leaked outside its request context")
	}
}
