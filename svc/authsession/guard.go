package authsession

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authportal/handler"
	"github.com/dmitrymomot/authportal/pkg/logger"
)

type GuardAction int

const (
	GuardWait GuardAction = iota
	GuardRedirect
	GuardRender
)

type GuardDecision struct {
	Action GuardAction
	Target string
}

// Decide is the route guard: wait while loading (or before hydration),
// redirect to entry when there is no user, render otherwise.
func Decide(st *State, entry string) GuardDecision {
	switch {
	case st == nil || st.Loading():
		return GuardDecision{Action: GuardWait}
	case !st.IsAuthenticated():
		return GuardDecision{Action: GuardRedirect, Target: entry}
	default:
		return GuardDecision{Action: GuardRender}
	}
}

type GuardOption func(*guardConfig)

type guardConfig struct {
	log *slog.Logger
}

// WithGuardLogger logs redirects that fail to render.
func WithGuardLogger(l *slog.Logger) GuardOption {
	return func(c *guardConfig) {
		if l != nil {
			c.log = l
		}
	}
}

// Guard wraps protected handlers. While waiting it serves loading and
// nothing else; without a user it redirects once to the entry path.
func Guard(entry string, loading http.Handler, opts ...GuardOption) func(http.Handler) http.Handler {
	cfg := &guardConfig{log: logger.Discard()}
	for _, opt := range opts {
		opt(cfg)
	}
	log := cfg.log.With(logger.Component("guard"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Decide(FromContext(r.Context()), entry)
			switch d.Action {
			case GuardWait:
				loading.ServeHTTP(w, r)
			case GuardRedirect:
				if err := handler.Redirect(d.Target).Render(w, r); err != nil {
					log.ErrorContext(r.Context(), "render guard redirect",
						logger.Path(r.URL.Path),
						logger.Error(err),
					)
				}
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}
