package credential

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/authportal/pkg/cookie"
	"github.com/dmitrymomot/authportal/pkg/logger"
	"github.com/dmitrymomot/authportal/pkg/session"
)

const (
	CookieName = "token"

	// CookieMaxAge is one day, in seconds.
	CookieMaxAge = 86400

	KeyToken = "token"
	KeyUser  = "user"
)

// Store is the visitor key-value medium. *session.Manager satisfies it.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// Snapshot is what the two mediums hold for the current request.
type Snapshot struct {
	StoredUser  string
	StoredToken string
	CookieToken string
}

// Keeper writes, reads and clears the persisted credential.
type Keeper struct {
	store   Store
	cookies *cookie.Manager
	log     *slog.Logger
}

func New(store Store, cookies *cookie.Manager, log *slog.Logger) *Keeper {
	if log == nil {
		log = logger.Discard()
	}
	return &Keeper{store: store, cookies: cookies, log: log.With(logger.Component("credential"))}
}

// HasToken reports whether the request carries a non-empty token cookie.
// It is the only notion of "authenticated" shared by the edge gate and
// session hydration.
func HasToken(r *http.Request) bool {
	c, err := r.Cookie(CookieName)
	return err == nil && c.Value != ""
}

// Persist stores token and user, then sets the token cookie. The cookie is
// not written when the store write fails.
func (k *Keeper) Persist(ctx context.Context, w http.ResponseWriter, token string, user json.RawMessage) error {
	if token == "" {
		return ErrEmptyToken
	}
	if len(user) == 0 || !json.Valid(user) {
		return ErrInvalidUser
	}

	if err := k.store.Set(ctx, KeyToken, token); err != nil {
		return errors.Join(ErrPersistStore, err)
	}
	if err := k.store.Set(ctx, KeyUser, string(user)); err != nil {
		return errors.Join(ErrPersistStore, err)
	}

	k.cookies.Set(w, CookieName, token,
		cookie.WithPath("/"),
		cookie.WithMaxAge(CookieMaxAge),
		cookie.WithHTTPOnly(false),
	)
	return nil
}

// Clear expires the token cookie, then removes the stored token and user.
// Clearing an already empty credential succeeds.
func (k *Keeper) Clear(ctx context.Context, w http.ResponseWriter) error {
	k.cookies.Delete(w, CookieName, cookie.WithPath("/"), cookie.WithHTTPOnly(false))

	if err := k.store.Delete(ctx, KeyToken, KeyUser); err != nil {
		k.log.WarnContext(ctx, "store entries left after cookie cleared", logger.Error(err))
		return errors.Join(ErrClearStore, err)
	}
	return nil
}

// Read returns what both mediums hold. Missing entries are empty strings.
func (k *Keeper) Read(ctx context.Context, r *http.Request) (Snapshot, error) {
	var snap Snapshot
	if c, err := r.Cookie(CookieName); err == nil {
		snap.CookieToken = c.Value
	}

	var err error
	if snap.StoredUser, err = k.get(ctx, KeyUser); err != nil {
		return snap, err
	}
	if snap.StoredToken, err = k.get(ctx, KeyToken); err != nil {
		return snap, err
	}
	return snap, nil
}

// Token returns the stored token, or "" when there is none.
func (k *Keeper) Token(ctx context.Context) string {
	tok, err := k.get(ctx, KeyToken)
	if err != nil {
		k.log.DebugContext(ctx, "stored token unavailable", logger.Error(err))
		return ""
	}
	return tok
}

func (k *Keeper) get(ctx context.Context, key string) (string, error) {
	v, err := k.store.Get(ctx, key)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, session.ErrKeyNotFound), errors.Is(err, session.ErrNoVisitor):
		return "", nil
	default:
		return "", errors.Join(ErrReadStore, err)
	}
}
