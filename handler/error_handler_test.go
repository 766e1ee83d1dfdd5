package handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/authportal/handler"
	"github.com/dmitrymomot/authportal/pkg/requestid"
	"github.com/dmitrymomot/authportal/pkg/validator"
)

func TestNewErrorHandler(t *testing.T) {
	t.Parallel()

	var page handler.ErrorPageParams
	var toast handler.ErrorToastParams
	cfg := handler.ErrorHandlerConfig{
		ErrorPage: func(p handler.ErrorPageParams) templ.Component {
			page = p
			return text("<h1>" + p.Error + "</h1>")
		},
		ErrorToast: func(p handler.ErrorToastParams) templ.Component {
			toast = p
			return text(`<div id="toast">` + p.Message + `</div>`)
		},
		Translate: func(ctx context.Context, key string) string {
			if key == "http.not_found" {
				return "Page not found"
			}
			return key
		},
	}
	eh := handler.NewErrorHandler(nil, cfg)

	t.Run("http error page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		req = req.WithContext(requestid.WithContext(req.Context(), "req-1"))
		rec := httptest.NewRecorder()

		eh(handler.NewContext(rec, req), fmt.Errorf("lookup: %w", handler.ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "<h1>Page not found</h1>", rec.Body.String())
		assert.Equal(t, "req-1", page.RequestID)
		assert.Equal(t, "/missing", page.RetryURL)
	})

	t.Run("unknown error is 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), errors.New("db down"))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "http.internal_server_error", page.Error)
	})

	t.Run("validation error is 400", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := validator.Apply(validator.Required("email", ""))
		eh(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), err)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "email: field is required", page.Error)
	})

	t.Run("datastar toast", func(t *testing.T) {
		req := dataStar(httptest.NewRequest(http.MethodPost, "/auth/login", nil))
		rec := httptest.NewRecorder()
		eh(handler.NewContext(rec, req), handler.ErrBadGateway)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "error", toast.Type)
		assert.Contains(t, rec.Body.String(), "#toasts")
	})

	t.Run("no page configured", func(t *testing.T) {
		t.Parallel()
		plain := handler.NewErrorHandler(nil, handler.ErrorHandlerConfig{})
		rec := httptest.NewRecorder()
		plain(handler.NewContext(rec, httptest.NewRequest(http.MethodGet, "/", nil)), handler.ErrUnauthorized)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "http.unauthorized")
	})
}
