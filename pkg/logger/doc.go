// Package logger builds [log/slog] loggers with context extraction and
// optional Sentry forwarding.
//
// # Basic Usage
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "prompt created", slog.String("id", p.ID))
//	// {"level":"INFO","msg":"prompt created","id":"my-prompt","request_id":"01J..."}
//
// Extractors run on every record, so attributes stored in the request
// context (request id, resource) appear without being passed explicitly.
//
// # Configuration
//
//	LOG_LEVEL          - debug | info | warn | error (default: info)
//	LOG_FORMAT         - json | text (default: json)
//	SENTRY_DSN         - enables Sentry when set
//	SENTRY_ENVIRONMENT - Sentry environment (default: production)
//	SENTRY_RELEASE     - release tag
//	SENTRY_MIN_LEVEL   - warn | error (default: warn)
//
// # Sentry
//
// With a DSN, records go to both the local handler and Sentry through
// [github.com/getsentry/sentry-go/slog]. Errors become Sentry issues and
// warnings are kept as logs. Register [Flush] as a shutdown hook so
// buffered events are delivered before exit.
//
// # Testing
//
// [NewNope] discards all output. [NewWithWriter] writes to any io.Writer,
// which lets tests assert on log lines.
package logger
