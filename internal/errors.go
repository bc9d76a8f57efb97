package internal

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// HTTPError carries everything an error handler needs to render a response.
type HTTPError struct {
	// Err is the underlying cause, logged but never shown.
	Err error
	// Message is the user-facing message.
	Message string
	Detail  string
	// ErrorCode is a stable machine-readable code, e.g. "slug_taken".
	ErrorCode string
	Code      int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	e := &HTTPError{Code: code, Message: message}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func WithDetail(detail string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Detail = detail
	}
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, opts...)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, opts...)
}

func ErrConflict(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusConflict, message, opts...)
}

func ErrUnprocessable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message, opts...)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, message, opts...)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return NewHTTPError(http.StatusServiceUnavailable, message, opts...)
}

func IsHTTPError(err error) bool {
	return AsHTTPError(err) != nil
}

// AsHTTPError extracts an HTTPError anywhere in err's chain, or nil.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// errorBody is the JSON shape of every API error.
type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

var errorFragment = template.Must(template.New("error").Parse(
	`<div class="error" role="alert" data-status="{{.Status}}"><strong>{{.Message}}</strong>{{if .Detail}}<p>{{.Detail}}</p>{{end}}</div>`,
))

type errorView struct {
	Message string
	Detail  string
	Status  int
}

// DefaultErrorHandler answers with JSON for API clients and an HTML
// fragment for browsers. Non-HTTPError errors become a logged 500.
// requestID may be nil.
func DefaultErrorHandler(requestID func(Context) string) ErrorHandler {
	return func(c Context, err error) error {
		httpErr := AsHTTPError(err)
		if httpErr == nil {
			httpErr = ErrInternal("Internal Server Error", WithError(err))
		}

		if httpErr.Code >= http.StatusInternalServerError {
			c.LogError("request failed",
				slog.Int("status", httpErr.Code),
				slog.String("error", err.Error()),
			)
		}

		if wantsJSON(c.Request()) {
			body := errorBody{Error: httpErr.Message, Code: httpErr.ErrorCode, Detail: httpErr.Detail}
			if requestID != nil {
				body.RequestID = requestID(c)
			}
			return c.JSON(httpErr.Code, body)
		}
		return c.Render(httpErr.Code, templ.FromGoHTML(errorFragment, errorView{
			Message: httpErr.Message,
			Detail:  httpErr.Detail,
			Status:  httpErr.Code,
		}))
	}
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
