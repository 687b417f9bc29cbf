// Package logger builds slog loggers with functional options and provides
// attribute constructors with consistent keys.
//
// New returns a *slog.Logger whose handler is wrapped by LogHandlerDecorator,
// which runs the registered ContextExtractor callbacks on every record. This
// is how request scoped values such as a request id reach log lines without
// being passed around explicitly.
//
//	log := logger.New(
//		logger.WithEnvironment("development", "responsedemo"),
//		logger.WithContextExtractors(requestid.LogExtractor),
//	)
//	log.InfoContext(ctx, "file sent", logger.Path(p), logger.Status(200))
//
// Config carries the same settings in environment form (LOG_LEVEL,
// LOG_FORMAT, LOG_SERVICE, APP_ENV) for use with pkg/config.
//
// Error returns an empty attribute for a nil error, so it can be passed
// unconditionally.
package logger
