package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/authportal/pkg/clientip"
	"github.com/dmitrymomot/authportal/pkg/logger"
	"github.com/dmitrymomot/authportal/pkg/session"
)

// accessLog writes one record per request once the response is done.
func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	log = log.With(logger.Component("http"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "request",
				slog.String("method", r.Method),
				logger.Path(r.URL.Path),
				slog.String("client_ip", clientip.FromContext(r.Context())),
				logger.Status(status),
				logger.Duration(time.Since(start)),
				slog.Int("bytes", ww.BytesWritten()),
			)
		})
	}
}

func visitorExtractor(ctx context.Context) (slog.Attr, bool) {
	id, ok := session.VisitorFromContext(ctx)
	if !ok {
		return slog.Attr{}, false
	}
	return logger.VisitorID(id), true
}
