package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/promptdesk/internal"
)

// AccessLog logs one line per request after it completes. Register it after
// RequestID so the line carries the request ID.
func AccessLog() internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			start := time.Now()
			err := next(c)

			status := 0
			var size int64
			if rw, ok := c.Response().(*internal.ResponseWriter); ok {
				status, size = rw.Status(), rw.Size()
			}

			level := slog.LevelInfo
			if err != nil || status >= 500 {
				level = slog.LevelWarn
			}
			c.Logger().Log(c.Context(), level, "request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Int64("size", size),
				slog.Duration("duration", time.Since(start)),
				slog.Bool("htmx", c.IsHTMX()),
			)
			return err
		}
	}
}
