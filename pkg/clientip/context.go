package clientip

import (
	"context"
	"net/http"
)

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// Key returns the address stored by Middleware. It fits rate limiter key
// functions.
func Key(r *http.Request) string {
	return FromContext(r.Context())
}
