package authsession

import "context"

type stateContextKey struct{}

func WithState(ctx context.Context, st *State) context.Context {
	return context.WithValue(ctx, stateContextKey{}, st)
}

// FromContext returns the request State, or nil before hydration.
func FromContext(ctx context.Context) *State {
	st, _ := ctx.Value(stateContextKey{}).(*State)
	return st
}
