package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/authportal/pkg/logger"
	"github.com/dmitrymomot/authportal/pkg/requestid"
	"github.com/dmitrymomot/authportal/pkg/validator"
)

type ErrorPageParams struct {
	Error      string
	StatusCode int
	RequestID  string
	RetryURL   string
}

type ErrorToastParams struct {
	Message   string
	Type      string // "error" or "warning"
	RequestID string
}

type ErrorHandlerConfig struct {
	// ErrorPage renders the full page for plain requests.
	ErrorPage func(ErrorPageParams) templ.Component

	// ErrorToast renders a toast for DataStar requests.
	ErrorToast func(ErrorToastParams) templ.Component

	// ToastTarget defaults to "#toasts".
	ToastTarget string

	// Translate resolves HTTPError keys. Keys are shown as-is when nil.
	Translate func(ctx context.Context, key string) string
}

type errorInfo struct {
	status  int
	message string
	kind    string
	level   slog.Level
}

func classifyError(ctx context.Context, cfg ErrorHandlerConfig, err error) errorInfo {
	info := errorInfo{
		status:  http.StatusInternalServerError,
		message: ErrInternalServerError.Key,
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		info.status = httpErr.Code
		info.message = httpErr.Key
	}
	if cfg.Translate != nil {
		info.message = cfg.Translate(ctx, info.message)
	}

	if ve := validator.ExtractValidationErrors(err); ve != nil {
		info.status = http.StatusBadRequest
		msgs := make([]string, 0, len(ve))
		for _, e := range ve {
			msgs = append(msgs, e.Field+": "+e.Message)
		}
		info.message = strings.Join(msgs, "; ")
	}

	info.kind, info.level = "error", slog.LevelError
	if info.status < http.StatusInternalServerError {
		info.kind, info.level = "warning", slog.LevelWarn
	}
	return info
}

// NewErrorHandler renders an error page for plain requests and a toast for
// DataStar requests. Every error is logged with the request id.
func NewErrorHandler(log *slog.Logger, cfg ErrorHandlerConfig) ErrorHandler[Context] {
	if cfg.ToastTarget == "" {
		cfg.ToastTarget = "#toasts"
	}
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("error_handler"))

	return func(ctx Context, err error) {
		r := ctx.Request()
		w := ctx.ResponseWriter()
		reqID := requestid.FromContext(r.Context())
		info := classifyError(r.Context(), cfg, err)

		log.LogAttrs(r.Context(), info.level, "request error",
			logger.Error(err),
			logger.Status(info.status),
			logger.Path(r.URL.Path),
			slog.String("method", r.Method),
			slog.Bool("datastar", IsDataStar(r)),
		)

		if IsDataStar(r) {
			if cfg.ErrorToast == nil {
				return
			}
			toast := cfg.ErrorToast(ErrorToastParams{Message: info.message, Type: info.kind, RequestID: reqID})
			if rerr := Templ(toast, WithTarget(cfg.ToastTarget), WithPatchMode(PatchAppend)).Render(w, r); rerr != nil {
				log.ErrorContext(r.Context(), "render error toast", logger.Error(rerr))
			}
			return
		}

		if cfg.ErrorPage == nil {
			http.Error(w, info.message, info.status)
			return
		}
		page := cfg.ErrorPage(ErrorPageParams{
			Error:      info.message,
			StatusCode: info.status,
			RequestID:  reqID,
			RetryURL:   r.URL.Path,
		})
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(info.status)
		if rerr := page.Render(r.Context(), w); rerr != nil {
			log.ErrorContext(r.Context(), "render error page", logger.Error(rerr))
		}
	}
}
