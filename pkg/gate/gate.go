// Package gate decides, per request and before any session state is
// loaded, whether a path may be served. The only input besides the path is
// whether the request carries a token cookie.
package gate

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmitrymomot/authportal/pkg/logger"
)

type Action int

const (
	Allow Action = iota
	Redirect
)

func (a Action) String() string {
	if a == Redirect {
		return "redirect"
	}
	return "allow"
}

// Decision is the outcome for one request. Target is set for Redirect.
type Decision struct {
	Action Action
	Target string
}

type Config struct {
	EntryPath     string   `env:"GATE_ENTRY_PATH" envDefault:"/"`
	DashboardPath string   `env:"GATE_DASHBOARD_PATH" envDefault:"/dashboard"`
	AuthPrefix    string   `env:"GATE_AUTH_PREFIX" envDefault:"/auth"`
	Exclude       []string `env:"GATE_EXCLUDE" envSeparator:"," envDefault:"/api,/static,/healthz,/readyz,/_next/static,/_next/image,/favicon.ico"`
}

func DefaultConfig() Config {
	return Config{
		EntryPath:     "/",
		DashboardPath: "/dashboard",
		AuthPrefix:    "/auth",
		Exclude:       []string{"/api", "/static", "/healthz", "/readyz", "/_next/static", "/_next/image", "/favicon.ico"},
	}
}

type Gate struct {
	cfg Config
}

func New(cfg Config) *Gate {
	def := DefaultConfig()
	if cfg.EntryPath == "" {
		cfg.EntryPath = def.EntryPath
	}
	if cfg.DashboardPath == "" {
		cfg.DashboardPath = def.DashboardPath
	}
	if cfg.AuthPrefix == "" {
		cfg.AuthPrefix = def.AuthPrefix
	}
	if cfg.Exclude == nil {
		cfg.Exclude = def.Exclude
	}
	return &Gate{cfg: cfg}
}

// IsPublic reports whether path is the entry path or under the auth prefix.
func (g *Gate) IsPublic(path string) bool {
	return path == g.cfg.EntryPath || strings.HasPrefix(path, g.cfg.AuthPrefix)
}

// Excluded reports whether the gate skips path entirely.
func (g *Gate) Excluded(path string) bool {
	for _, p := range g.cfg.Exclude {
		if p != "" && strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// Decide is a pure function of the path and token presence.
func (g *Gate) Decide(path string, hasToken bool) Decision {
	if !g.IsPublic(path) && !hasToken {
		return Decision{Action: Redirect, Target: g.cfg.EntryPath}
	}
	if path == g.cfg.EntryPath && hasToken {
		return Decision{Action: Redirect, Target: g.cfg.DashboardPath}
	}
	return Decision{Action: Allow}
}

// Middleware applies Decide to every non-excluded request, answering
// redirects with 307. hasToken is normally credential.HasToken.
func (g *Gate) Middleware(hasToken func(*http.Request) bool, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("gate"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if g.Excluded(path) {
				next.ServeHTTP(w, r)
				return
			}
			d := g.Decide(path, hasToken(r))
			if d.Action == Redirect {
				log.DebugContext(r.Context(), "redirect", logger.Path(path), slog.String("target", d.Target))
				http.Redirect(w, r, d.Target, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
