package authapi

import (
	"context"
	"net/http"
	"strings"
)

// TokenSource returns the bearer token for the request context, or "".
type TokenSource func(ctx context.Context) string

var unauthenticatedPaths = []string{"/auth/login", "/auth/register"}

// bearerTransport adds the Authorization header to outgoing requests,
// except login and register.
type bearerTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.tokens == nil || req.Header.Get("Authorization") != "" {
		return t.base.RoundTrip(req)
	}
	for _, p := range unauthenticatedPaths {
		if strings.HasSuffix(req.URL.Path, p) {
			return t.base.RoundTrip(req)
		}
	}
	token := t.tokens(req.Context())
	if token == "" {
		return t.base.RoundTrip(req)
	}
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+token)
	return t.base.RoundTrip(req)
}
