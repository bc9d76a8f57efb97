package middlewares_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrymomot/promptdesk/internal"
	"github.com/dmitrymomot/promptdesk/pkg/logger"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// newApp builds an app with one GET / route and a JSON logger writing to buf.
func newApp(t *testing.T, buf *bytes.Buffer, h internal.HandlerFunc, mw ...internal.Middleware) http.Handler {
	t.Helper()
	log := logger.NewWithWriter(buf, logger.Config{Level: "debug", Format: "json"}, middlewaresExtractors()...)
	return internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(mw...),
		internal.WithErrorHandler(middlewaresErrorHandler()),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", h)
		})),
	)
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
