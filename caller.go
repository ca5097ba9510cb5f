package authcore

import "context"

type callerContextKey struct{}

// WithCaller binds a resolved caller to ctx for the lifetime of one
// request. The binding dies with the request context. Identity is never
// stored in process-wide state, so a reused worker goroutine cannot leak
// one request's caller into the next.
func WithCaller(ctx context.Context, caller *Caller) context.Context {
	return context.WithValue(ctx, callerContextKey{}, caller)
}

// CallerFromContext returns the caller bound to ctx, or false for an
// anonymous request.
func CallerFromContext(ctx context.Context) (*Caller, bool) {
	if ctx == nil {
		return nil, false
	}

	caller, ok := ctx.Value(callerContextKey{}).(*Caller)
	if !ok || caller == nil {
		return nil, false
	}
	return caller, true
}
