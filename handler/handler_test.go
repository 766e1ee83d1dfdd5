package handler_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authportal/binder"
	"github.com/dmitrymomot/authportal/handler"
)

type loginForm struct {
	Email string `form:"email"`
}

func text(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func postForm(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func dataStar(req *http.Request) *http.Request {
	req.Header.Set("Datastar-Request", "true")
	return req
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("binds and renders", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req loginForm) handler.Response {
			return handler.JSON(map[string]string{"email": req.Email})
		}, handler.WithBinders[handler.Context, loginForm](binder.Form()))

		rec := httptest.NewRecorder()
		h(rec, postForm("email=ana%40example.com"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"email":"ana@example.com"}`, rec.Body.String())
	})

	t.Run("not applicable binder skipped", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req loginForm) handler.Response {
			return handler.JSON(req.Email)
		}, handler.WithBinders[handler.Context, loginForm](binder.Form()))

		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bind error is a bad request", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(func(ctx handler.Context, req loginForm) handler.Response {
			return handler.JSON(nil)
		},
			handler.WithBinders[handler.Context, loginForm](binder.JSON()),
			handler.WithErrorHandler[handler.Context, loginForm](func(ctx handler.Context, err error) { got = err }),
		)

		h(httptest.NewRecorder(), postForm("email=x"))
		assert.ErrorIs(t, got, handler.ErrBadRequest)
		assert.ErrorIs(t, got, binder.ErrUnsupportedMediaType)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response { return nil })
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("http error status", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response {
			return handler.ResponseFunc(func(w http.ResponseWriter, r *http.Request) error {
				return handler.ErrNotFound
			})
		})
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("decorators outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		mark := func(name string) handler.Decorator[handler.Context, struct{}] {
			return func(next handler.HandlerFunc[handler.Context, struct{}]) handler.HandlerFunc[handler.Context, struct{}] {
				return func(ctx handler.Context, req struct{}) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response {
			order = append(order, "handler")
			return handler.JSON(nil)
		}, handler.WithDecorators(mark("a"), mark("b")))

		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"a", "b", "handler"}, order)
	})

	t.Run("context exposes request values", func(t *testing.T) {
		t.Parallel()
		type key struct{}
		h := handler.Wrap(func(ctx handler.Context, req struct{}) handler.Response {
			return handler.JSON(ctx.Value(key{}))
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), key{}, "v"))
		rec := httptest.NewRecorder()
		h(rec, req)
		assert.JSONEq(t, `"v"`, rec.Body.String())
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/dashboard").Render(rec, postForm("")))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	})

	t.Run("with code", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.RedirectWithCode("/", http.StatusTemporaryRedirect).Render(rec, httptest.NewRequest(http.MethodGet, "/x", nil)))
		assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	})

	t.Run("datastar", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/dashboard").Render(rec, dataStar(postForm(""))))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, rec.Body.String(), "/dashboard")
		assert.Empty(t, rec.Header().Get("Location"))
	})
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("plain renders full", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.TemplPartialStatus(http.StatusUnprocessableEntity, text("<form>partial</form>"), text("<html>full</html>"))
		require.NoError(t, resp.Render(rec, postForm("")))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "<html>full</html>", rec.Body.String())
		assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	})

	t.Run("datastar patches partial", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.TemplPartial(text("<form id=\"login\">partial</form>"), text("<html>full</html>"), handler.WithTarget("#login"))
		require.NoError(t, resp.Render(rec, dataStar(postForm(""))))
		body := rec.Body.String()
		assert.Contains(t, body, "datastar-patch-elements")
		assert.Contains(t, body, "partial")
		assert.NotContains(t, body, "full")
		assert.Contains(t, body, "#login")
	})

	t.Run("multi", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.TemplMulti(
			handler.Patch(text("<p id=\"a\">a</p>")),
			handler.Patch(text("<p id=\"b\">b</p>"), handler.WithPatchMode(handler.PatchAppend)),
		)
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, `<p id="a">a</p><p id="b">b</p>`, rec.Body.String())

		rec = httptest.NewRecorder()
		require.NoError(t, resp.Render(rec, dataStar(httptest.NewRequest(http.MethodGet, "/", nil))))
		assert.Equal(t, 2, strings.Count(rec.Body.String(), "event: datastar-patch-elements"))
	})

	t.Run("render error propagates", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		failing := templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })
		err := handler.Templ(failing).Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, err, boom)
	})
}

func TestIsDataStar(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.False(t, handler.IsDataStar(req))

	req.Header.Set("Accept", "text/event-stream")
	assert.True(t, handler.IsDataStar(req))

	assert.True(t, handler.IsDataStar(httptest.NewRequest(http.MethodGet, "/?datastar=%7B%7D", nil)))
	assert.True(t, handler.IsDataStar(dataStar(httptest.NewRequest(http.MethodGet, "/", nil))))
}

type localeContext struct {
	handler.Context
	lang string
}

func TestWrapWithContextFactory(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx localeContext, _ struct{}) handler.Response {
		return handler.JSON(map[string]string{"lang": ctx.lang})
	}, handler.WithContextFactory[localeContext, struct{}](func(w http.ResponseWriter, r *http.Request) localeContext {
		return localeContext{Context: handler.NewContext(w, r), lang: r.URL.Query().Get("lang")}
	}))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/?lang=pt-BR", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lang":"pt-BR"}`, rec.Body.String())
}

func TestWrapCustomContextWithoutFactoryPanics(t *testing.T) {
	t.Parallel()

	h := handler.Wrap(func(ctx localeContext, _ struct{}) handler.Response {
		return handler.JSON(nil)
	})

	assert.Panics(t, func() {
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}
