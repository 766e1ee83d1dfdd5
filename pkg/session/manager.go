package session

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrymomot/authportal/pkg/cookie"
	"github.com/dmitrymomot/authportal/pkg/logger"
)

// Manager binds a Store to the visitor carried by the request.
type Manager struct {
	store   Store
	cookies *cookie.Manager
	cfg     Config
	log     *slog.Logger
}

// New creates a Manager. A nil logger discards records.
func New(store Store, cookies *cookie.Manager, cfg Config, log *slog.Logger) *Manager {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultConfig().CookieName
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Manager{store: store, cookies: cookies, cfg: cfg, log: log}
}

// Middleware resolves the visitor id from the cookie, issuing a new one when
// it is missing or cannot be decrypted, and puts it into the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.Visitor(w, r)
		if err != nil {
			m.log.ErrorContext(r.Context(), "visitor id unavailable",
				logger.Component("session"),
				logger.Error(err),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithVisitor(r.Context(), id)))
	})
}

// Visitor returns the visitor id of the request, setting a fresh cookie when
// the browser has none.
func (m *Manager) Visitor(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, ok := VisitorFromContext(r.Context()); ok {
		return id, nil
	}
	if id, err := m.cookies.GetEncrypted(r, m.cfg.CookieName); err == nil && id != "" {
		return id, nil
	}
	id := uuid.NewString()
	if err := m.cookies.SetEncrypted(w, m.cfg.CookieName, id,
		cookie.WithMaxAge(int(m.cfg.VisitorTTL.Seconds())),
		cookie.WithHTTPOnly(true),
	); err != nil {
		return "", err
	}
	return id, nil
}

// Get reads key for the visitor in ctx.
func (m *Manager) Get(ctx context.Context, key string) (string, error) {
	id, ok := VisitorFromContext(ctx)
	if !ok {
		return "", ErrNoVisitor
	}
	return m.store.Get(ctx, id, key)
}

// Set writes key for the visitor in ctx.
func (m *Manager) Set(ctx context.Context, key, value string) error {
	id, ok := VisitorFromContext(ctx)
	if !ok {
		return ErrNoVisitor
	}
	return m.store.Set(ctx, id, key, value)
}

// Delete removes keys for the visitor in ctx. Without a visitor there is
// nothing to delete.
func (m *Manager) Delete(ctx context.Context, keys ...string) error {
	id, ok := VisitorFromContext(ctx)
	if !ok {
		return nil
	}
	return m.store.Delete(ctx, id, keys...)
}
