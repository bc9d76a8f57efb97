package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrymomot/promptdesk/internal"
)

// PanicError represents a recovered panic.
type PanicError struct {
	Value any
	// Stack is nil when stack capture is disabled.
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// TimeoutError represents a request that ran past its deadline.
type TimeoutError struct {
	Duration time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

// IsPanicError returns true if the error is a PanicError.
func IsPanicError(err error) bool {
	var pe *PanicError
	return errors.As(err, &pe)
}

// IsTimeoutError returns true if the error is a TimeoutError.
func IsTimeoutError(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te)
}

// ErrorHandler wraps the default handler so timeouts and expired request
// deadlines answer 503. Panics fall through to the default 500.
func ErrorHandler() internal.ErrorHandler {
	next := internal.DefaultErrorHandler(GetRequestID)
	return func(c internal.Context, err error) error {
		if IsTimeoutError(err) || errors.Is(err, context.DeadlineExceeded) {
			err = internal.NewHTTPError(http.StatusServiceUnavailable, "Request timed out", internal.WithError(err))
		}
		return next(c, err)
	}
}
