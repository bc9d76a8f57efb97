package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrymomot/promptdesk/internal"
	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// Lookup serves the resolver backend over HTTP.
type Lookup struct {
	svc     *content.Service
	timeout time.Duration
}

// NewLookup creates the lookup routes. A positive timeout bounds every
// backend call.
func NewLookup(svc *content.Service, timeout time.Duration) *Lookup {
	return &Lookup{svc: svc, timeout: timeout}
}

func (h *Lookup) Routes(r internal.Router) {
	r.GET("/api/lookup/{resource}/count", h.count)
	r.GET("/api/lookup/{resource}/values", h.values)
	r.GET("/api/slugs/check", h.check)
}

type countResponse struct {
	Count int `json:"count"`
}

type valuesResponse struct {
	Values []string `json:"values"`
}

func (h *Lookup) count(c internal.Context) error {
	t, err := h.target(c, c.Param("resource"))
	if err != nil {
		return err
	}
	value := c.Query("value")
	if value == "" {
		return internal.ErrBadRequest("Query parameter value is required")
	}

	ctx, cancel := h.context(c)
	defer cancel()

	n, err := h.svc.Backend().Count(ctx, t.Resource, t.Field, value)
	if err != nil {
		return internal.ErrServiceUnavailable("Lookup backend unavailable", internal.WithError(err))
	}
	return c.JSON(http.StatusOK, countResponse{Count: n})
}

func (h *Lookup) values(c internal.Context) error {
	t, err := h.target(c, c.Param("resource"))
	if err != nil {
		return err
	}
	// An empty prefix would list the whole table.
	prefix := c.Query("prefix")
	if prefix == "" {
		return internal.ErrBadRequest("Query parameter prefix is required")
	}

	ctx, cancel := h.context(c)
	defer cancel()

	values, err := h.svc.Backend().SelectPrefix(ctx, t.Resource, t.Field, prefix)
	if err != nil {
		return internal.ErrServiceUnavailable("Lookup backend unavailable", internal.WithError(err))
	}
	if values == nil {
		values = []string{}
	}
	return c.JSON(http.StatusOK, valuesResponse{Values: values})
}

func (h *Lookup) check(c internal.Context) error {
	resource := c.Query("resource")
	if resource == "" {
		return internal.ErrBadRequest("Query parameter resource is required")
	}

	ctx, cancel := h.context(c)
	defer cancel()

	res, err := h.svc.Check(ctx, resource, internal.QueryDefault(c, "field", content.IdentifierField), c.Query("value"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Lookup) target(c internal.Context, resource string) (slugfield.Target, error) {
	t, err := h.svc.Registry().Target(resource, internal.QueryDefault(c, "field", content.IdentifierField))
	if err != nil {
		return slugfield.Target{}, httpError(err)
	}
	return t, nil
}

func (h *Lookup) context(c internal.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.Context())
	}
	return context.WithTimeout(c.Context(), h.timeout)
}
