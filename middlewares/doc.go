// Package middlewares provides the admin server's HTTP middleware.
//
//   - [RequestID] assigns a ULID per request (or keeps a sane upstream one)
//     and [RequestIDExtractor] puts it on every log line.
//   - [Recover] converts panics into [PanicError].
//   - [Timeout] puts a deadline on the request context.
//   - [AccessLog] writes one structured line per request.
//   - [ErrorHandler] is the app's error handler: timeouts answer 503, HTTP
//     errors keep their status, anything else is a 500 carrying the request ID.
//
// Global middleware runs in the order given:
//
//	app := internal.New(
//	    internal.WithLogger(logger.New(cfg.Log, middlewares.RequestIDExtractor())),
//	    internal.WithErrorHandler(middlewares.ErrorHandler()),
//	    internal.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.AccessLog(),
//	        middlewares.Recover(),
//	    ),
//	)
//
// Global middleware does not see errors returned by route handlers; those
// are rendered before control returns. Pass [Timeout] as route middleware
// when the timeout itself should be logged.
package middlewares
