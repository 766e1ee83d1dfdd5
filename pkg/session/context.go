package session

import "context"

type visitorContextKey struct{}

// WithVisitor stores the visitor id in ctx.
func WithVisitor(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorContextKey{}, visitorID)
}

// VisitorFromContext returns the visitor id set by Manager.Middleware.
func VisitorFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(visitorContextKey{}).(string)
	return id, ok && id != ""
}
