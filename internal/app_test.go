package internal_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/promptdesk/internal"
	"github.com/dmitrymomot/promptdesk/pkg/htmx"
)

type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

type ctxKey struct{}

func tag(name string, order *[]string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			*order = append(*order, name)
			return next(c)
		}
	}
}

func do(t *testing.T, h http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAppRoutingAndParams(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.Route("/api/{resource}", func(r internal.Router) {
			r.GET("/{id}", func(c internal.Context) error {
				return c.JSON(http.StatusOK, map[string]any{
					"resource": c.Param("resource"),
					"id":       c.Param("id"),
					"limit":    internal.QueryDefault(c, "limit", 20),
				})
			})
		})
	})))

	rec := do(t, app, http.MethodGet, "/api/prompts/my-prompt?limit=5", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "prompts", got["resource"])
	assert.Equal(t, "my-prompt", got["id"])
	assert.InDelta(t, 5, got["limit"], 0)
}

func TestAppMiddlewareOrderAndContextValues(t *testing.T) {
	t.Parallel()

	var order []string
	app := internal.New(
		internal.WithMiddleware(tag("global", &order), func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				c.Set(ctxKey{}, "from-middleware")
				return next(c)
			}
		}),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error {
				order = append(order, "handler")
				return c.String(http.StatusOK, internal.ContextValue[string](c, ctxKey{}))
			}, tag("route-1", &order), tag("route-2", &order))
		})),
	)

	rec := do(t, app, http.MethodGet, "/", "", nil)
	assert.Equal(t, "from-middleware", rec.Body.String())
	assert.Equal(t, []string{"global", "route-1", "route-2", "handler"}, order)
}

func TestAppDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/api/conflict", func(internal.Context) error {
			return internal.ErrConflict("slug is taken", internal.WithErrorCode("slug_taken"))
		})
		r.GET("/admin/boom", func(internal.Context) error {
			return errors.New("database exploded")
		})
	})))

	t.Run("api routes get json", func(t *testing.T) {
		t.Parallel()
		rec := do(t, app, http.MethodGet, "/api/conflict", "", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":"slug is taken","code":"slug_taken"}`, rec.Body.String())
	})

	t.Run("unknown errors are 500 without leaking the cause", func(t *testing.T) {
		t.Parallel()
		rec := do(t, app, http.MethodGet, "/admin/boom", "", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `role="alert"`)
		assert.NotContains(t, rec.Body.String(), "exploded")
	})

	t.Run("htmx gets the fragment with 200", func(t *testing.T) {
		t.Parallel()
		rec := do(t, app, http.MethodGet, "/admin/boom", "", map[string]string{htmx.HeaderHXRequest: "true"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `data-status="500"`)
	})
}

func TestContextBindJSON(t *testing.T) {
	t.Parallel()

	type input struct {
		Name string `json:"name" sanitize:"trim,strip"`
	}

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.POST("/api/echo", func(c internal.Context) error {
			var in input
			if err := c.BindJSON(&in); err != nil {
				return err
			}
			return c.JSON(http.StatusOK, in)
		})
	})))

	rec := do(t, app, http.MethodPost, "/api/echo", `{"name":"  <b>Summarizer</b> "}`, nil)
	assert.JSONEq(t, `{"name":"Summarizer"}`, rec.Body.String())

	rec = do(t, app, http.MethodPost, "/api/echo", `{"name":1}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, app, http.MethodPost, "/api/echo", `{"other":"x"}`, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, app, http.MethodPost, "/api/echo", ``, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAppHealthAndMount(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHealthChecks(
			internal.WithReadinessCheck("db", func(context.Context) error { return errors.New("down") }),
			internal.WithHealthTimeout(time.Second),
		),
		internal.WithMount("/metrics", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		})),
	)

	assert.Equal(t, http.StatusOK, do(t, app, http.MethodGet, "/health/live", "", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, do(t, app, http.MethodGet, "/health/ready", "", nil).Code)
	assert.Equal(t, "metrics", do(t, app, http.MethodGet, "/metrics", "", nil).Body.String())
}

func TestAppRunLifecycle(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/ping", func(c internal.Context) error { return c.String(http.StatusOK, "pong") })
	})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan net.Addr, 1)
	var started, stopped atomic.Bool
	done := make(chan error, 1)
	go func() {
		done <- app.Run("127.0.0.1:0",
			internal.WithContext(ctx),
			internal.OnReady(func(a net.Addr) { addrCh <- a }),
			internal.StartupHook(func(context.Context) error { started.Store(true); return nil }),
			internal.ShutdownHook(func(context.Context) error { stopped.Store(true); return nil }),
		)
	}()

	var addr net.Addr
	select {
	case addr = <-addrCh:
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	assert.True(t, started.Load())

	resp, err := http.Get("http://" + addr.String() + "/ping")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, stopped.Load())
}

func TestAppRunStartupHookFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("migrate failed")
	err := internal.New().Run("127.0.0.1:0",
		internal.StartupHook(func(context.Context) error { return boom }),
	)
	require.ErrorIs(t, err, internal.ErrStartupHook)
	require.ErrorIs(t, err, boom)
}
