package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders are checked in order when proxies are trusted.
var DefaultHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For", "X-Real-IP"}

type Config struct {
	TrustProxy bool     `env:"CLIENTIP_TRUST_PROXY" envDefault:"false"`
	Headers    []string `env:"CLIENTIP_HEADERS" envSeparator:"," envDefault:"CF-Connecting-IP,X-Forwarded-For,X-Real-IP"`
}

type Resolver struct {
	headers []string
}

// New returns a Resolver. Headers are ignored unless cfg.TrustProxy is set.
func New(cfg Config) *Resolver {
	if !cfg.TrustProxy {
		return &Resolver{}
	}
	headers := cfg.Headers
	if len(headers) == 0 {
		headers = DefaultHeaders
	}
	return &Resolver{headers: headers}
}

// FromRequest returns the normalized client address, or "" when none of
// the sources holds a valid one. For X-Forwarded-For the first valid entry
// wins.
func (res *Resolver) FromRequest(r *http.Request) string {
	for _, h := range res.headers {
		for v := range strings.SplitSeq(r.Header.Get(h), ",") {
			if ip := normalize(v); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

// Middleware stores the resolved address in the request context.
func (res *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), res.FromRequest(r))))
	})
}

func normalize(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
