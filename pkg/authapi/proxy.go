package authapi

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
	"strings"

	"github.com/dmitrymomot/authportal/pkg/logger"
)

// Proxy forwards requests under prefix to the backend with the prefix
// removed, attaching the visitor's bearer token. Portal cookies are not
// forwarded.
func (c *Client) Proxy(prefix string) http.Handler {
	target := c.BaseURL()
	log := c.log
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			path := strings.TrimPrefix(pr.In.URL.Path, prefix)
			if path == "" {
				path = "/"
			}
			pr.Out.URL.Path = strings.TrimRight(target.Path, "/") + path
			pr.Out.URL.RawPath = ""
			pr.Out.Header.Del("Cookie")
			pr.SetXForwarded()
		},
		Transport: c.http.Transport,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.ErrorContext(r.Context(), "proxy request failed",
				logger.Path(r.URL.Path),
				logger.Error(err),
			)
			w.WriteHeader(http.StatusBadGateway)
		},
		ErrorLog: slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}
}
