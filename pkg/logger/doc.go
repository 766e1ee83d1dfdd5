// Package logger builds the portal's *slog.Logger.
//
// New assembles a text or JSON slog handler from functional options and wraps
// it with a context handler, which appends attributes pulled from the
// record's context (the request id set by requestid.Middleware, for example)
// every time a record is handled.
//
// Attribute helpers in attr.go keep key names consistent across packages:
//
//	log.WarnContext(ctx, "login rejected by backend",
//		logger.Component("authapi"),
//		logger.Status(resp.StatusCode),
//		logger.Error(err),
//	)
//
// Error returns an empty attribute for a nil error, so callers can pass it
// unconditionally.
//
// Environment presets:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Name),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
package logger
