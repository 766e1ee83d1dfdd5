package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authportal/pkg/cookie"
	"github.com/dmitrymomot/authportal/pkg/session"
)

func newManager(t *testing.T) (*session.Manager, *session.MemoryStore) {
	t.Helper()
	cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	store := session.NewMemoryStore(time.Hour, 0)
	return session.New(store, cookies, session.DefaultConfig(), nil), store
}

func TestManagerMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("issues visitor cookie", func(t *testing.T) {
		t.Parallel()
		mgr, _ := newManager(t)

		var got string
		h := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := session.VisitorFromContext(r.Context())
			require.True(t, ok)
			got = id
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.NotEmpty(t, got)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "sid", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.NotEqual(t, got, cookies[0].Value)
	})

	t.Run("reuses visitor across requests", func(t *testing.T) {
		t.Parallel()
		mgr, _ := newManager(t)

		var ids []string
		h := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, _ := session.VisitorFromContext(r.Context())
			ids = append(ids, id)
		}))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		sid := rec.Result().Cookies()[0]

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(sid)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Len(t, ids, 2)
		assert.Equal(t, ids[0], ids[1])
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("tampered cookie gets a new visitor", func(t *testing.T) {
		t.Parallel()
		mgr, _ := newManager(t)

		var got string
		h := mgr.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = session.VisitorFromContext(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "garbage"})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.NotEmpty(t, got)
		assert.Len(t, rec.Result().Cookies(), 1)
	})
}

func TestManagerValues(t *testing.T) {
	t.Parallel()
	mgr, store := newManager(t)

	t.Run("without visitor", func(t *testing.T) {
		ctx := context.Background()
		_, err := mgr.Get(ctx, "token")
		assert.ErrorIs(t, err, session.ErrNoVisitor)
		assert.ErrorIs(t, mgr.Set(ctx, "token", "x"), session.ErrNoVisitor)
		assert.NoError(t, mgr.Delete(ctx, "token"))
	})

	t.Run("with visitor", func(t *testing.T) {
		ctx := session.WithVisitor(context.Background(), "v1")
		require.NoError(t, mgr.Set(ctx, "token", "abc"))

		v, err := store.Get(ctx, "v1", "token")
		require.NoError(t, err)
		assert.Equal(t, "abc", v)

		v, err = mgr.Get(ctx, "token")
		require.NoError(t, err)
		assert.Equal(t, "abc", v)

		require.NoError(t, mgr.Delete(ctx, "token"))
		_, err = mgr.Get(ctx, "token")
		assert.ErrorIs(t, err, session.ErrKeyNotFound)
	})
}
