// Package httpserver runs the portal's http.Handler with sane timeouts and
// graceful shutdown on context cancellation, SIGINT or SIGTERM.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Liveness and Readiness build the /healthz and /readyz probes.
package httpserver
