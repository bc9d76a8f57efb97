package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptdesk/internal"
	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/internal/handlers"
	"github.com/dmitrymomot/promptdesk/internal/lookup"
	"github.com/dmitrymomot/promptdesk/middlewares"
	"github.com/dmitrymomot/promptdesk/pkg/cookie"
	"github.com/dmitrymomot/promptdesk/pkg/logger"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

var errBackendDown = errors.New("backend down")

const noticeSecret = "admin-notice-secret-for-tests-0123456789"

// downBackend fails every lookup.
type downBackend struct{}

func (downBackend) Count(context.Context, string, string, string) (int, error) {
	return 0, errBackendDown
}

func (downBackend) SelectPrefix(context.Context, string, string, string) ([]string, error) {
	return nil, errBackendDown
}

type fixture struct {
	app   http.Handler
	svc   *content.Service
	index *lookup.Memory
}

// newFixture wires every handler against an in-memory store. A given
// backend replaces the store's own index for lookups.
func newFixture(t *testing.T, backend ...slugfield.Backend) fixture {
	t.Helper()

	index := lookup.NewMemory()
	store := content.NewMemoryStore(content.WithIndex(index))

	var b slugfield.Backend = index
	if len(backend) > 0 {
		b = backend[0]
	}
	svc := content.NewService(content.DefaultRegistry(), store, b)

	notices, err := cookie.New(noticeSecret)
	require.NoError(t, err)

	app := internal.New(
		internal.WithLogger(logger.NewNope()),
		internal.WithErrorHandler(middlewares.ErrorHandler()),
		internal.WithHandlers(
			handlers.NewLookup(svc, 0),
			handlers.NewRecords(svc),
			handlers.NewAdmin(svc, 0, handlers.WithNotices(notices)),
		),
	)
	return fixture{app: app, svc: svc, index: index}
}

func (f fixture) seed(t *testing.T, resource string, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := f.svc.Create(context.Background(), resource, content.Input{Name: name})
		require.NoError(t, err)
	}
}

func (f fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.app.ServeHTTP(rec, req)
	return rec
}

func (f fixture) get(target string) *httptest.ResponseRecorder {
	return f.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (f fixture) sendJSON(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	return f.do(req)
}

func (f fixture) postForm(target string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return f.do(req)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func newRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}
