package credential_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authportal/pkg/cookie"
	"github.com/dmitrymomot/authportal/pkg/credential"
	"github.com/dmitrymomot/authportal/pkg/session"
)

type failingStore struct {
	err error
}

func (s failingStore) Get(context.Context, string) (string, error) { return "", s.err }
func (s failingStore) Set(context.Context, string, string) error   { return s.err }
func (s failingStore) Delete(context.Context, ...string) error     { return s.err }

func setup(t *testing.T) (*credential.Keeper, *session.Manager, context.Context) {
	t.Helper()
	cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	mgr := session.New(session.NewMemoryStore(time.Hour, 0), cookies, session.DefaultConfig(), nil)
	ctx := session.WithVisitor(context.Background(), "visitor-1")
	return credential.New(mgr, cookies, nil), mgr, ctx
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestPersist(t *testing.T) {
	t.Parallel()

	t.Run("writes both mediums", func(t *testing.T) {
		t.Parallel()
		k, mgr, ctx := setup(t)
		rec := httptest.NewRecorder()

		require.NoError(t, k.Persist(ctx, rec, "tok-1", json.RawMessage(`{"id":1,"name":"Ana"}`)))

		tok, err := mgr.Get(ctx, credential.KeyToken)
		require.NoError(t, err)
		assert.Equal(t, "tok-1", tok)
		user, err := mgr.Get(ctx, credential.KeyUser)
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":1,"name":"Ana"}`, user)

		c := findCookie(rec, credential.CookieName)
		require.NotNil(t, c)
		assert.Equal(t, "tok-1", c.Value)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, credential.CookieMaxAge, c.MaxAge)
		assert.False(t, c.HttpOnly)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		t.Parallel()
		k, _, ctx := setup(t)
		err := k.Persist(ctx, httptest.NewRecorder(), "", json.RawMessage(`{}`))
		assert.ErrorIs(t, err, credential.ErrEmptyToken)
	})

	t.Run("rejects invalid user", func(t *testing.T) {
		t.Parallel()
		k, _, ctx := setup(t)
		err := k.Persist(ctx, httptest.NewRecorder(), "tok", json.RawMessage(`{oops`))
		assert.ErrorIs(t, err, credential.ErrInvalidUser)
	})

	t.Run("store failure skips cookie", func(t *testing.T) {
		t.Parallel()
		cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
		require.NoError(t, err)
		k := credential.New(failingStore{err: errors.New("down")}, cookies, nil)
		rec := httptest.NewRecorder()

		err = k.Persist(context.Background(), rec, "tok", json.RawMessage(`{}`))
		assert.ErrorIs(t, err, credential.ErrPersistStore)
		assert.Nil(t, findCookie(rec, credential.CookieName))
	})
}

func TestClear(t *testing.T) {
	t.Parallel()

	t.Run("clears both mediums", func(t *testing.T) {
		t.Parallel()
		k, mgr, ctx := setup(t)
		require.NoError(t, k.Persist(ctx, httptest.NewRecorder(), "tok", json.RawMessage(`{}`)))

		rec := httptest.NewRecorder()
		require.NoError(t, k.Clear(ctx, rec))

		_, err := mgr.Get(ctx, credential.KeyToken)
		assert.ErrorIs(t, err, session.ErrKeyNotFound)
		_, err = mgr.Get(ctx, credential.KeyUser)
		assert.ErrorIs(t, err, session.ErrKeyNotFound)

		c := findCookie(rec, credential.CookieName)
		require.NotNil(t, c)
		assert.Empty(t, c.Value)
		assert.Less(t, c.MaxAge, 0)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()
		k, _, ctx := setup(t)
		assert.NoError(t, k.Clear(ctx, httptest.NewRecorder()))
		assert.NoError(t, k.Clear(ctx, httptest.NewRecorder()))
	})

	t.Run("cookie cleared even when store fails", func(t *testing.T) {
		t.Parallel()
		cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
		require.NoError(t, err)
		k := credential.New(failingStore{err: errors.New("down")}, cookies, nil)
		rec := httptest.NewRecorder()

		err = k.Clear(context.Background(), rec)
		assert.ErrorIs(t, err, credential.ErrClearStore)
		assert.NotNil(t, findCookie(rec, credential.CookieName))
	})
}

func TestRead(t *testing.T) {
	t.Parallel()

	k, _, ctx := setup(t)
	require.NoError(t, k.Persist(ctx, httptest.NewRecorder(), "tok", json.RawMessage(`{"id":7}`)))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: credential.CookieName, Value: "tok"})

	snap, err := k.Read(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, credential.Snapshot{StoredUser: `{"id":7}`, StoredToken: "tok", CookieToken: "tok"}, snap)
	assert.Equal(t, "tok", k.Token(ctx))

	empty, err := k.Read(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, credential.Snapshot{}, empty)
	assert.Empty(t, k.Token(context.Background()))
}

func TestReadStoreFailure(t *testing.T) {
	t.Parallel()
	cookies, err := cookie.New([]string{"0123456789abcdef0123456789abcdef"})
	require.NoError(t, err)
	k := credential.New(failingStore{err: errors.New("down")}, cookies, nil)

	_, err = k.Read(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, credential.ErrReadStore)
}

func TestHasToken(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, credential.HasToken(req))

	req.AddCookie(&http.Cookie{Name: credential.CookieName, Value: ""})
	assert.False(t, credential.HasToken(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: credential.CookieName, Value: "abc"})
	assert.True(t, credential.HasToken(req))
}
