package lookup

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrymomot/promptdesk/pkg/cache"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

// DefaultCacheTTL is how long lookup answers are served from cache.
const DefaultCacheTTL = 5 * time.Second

// CachedOption configures a Cached backend.
type CachedOption func(*Cached)

// WithCacheTTL overrides DefaultCacheTTL.
func WithCacheTTL(d time.Duration) CachedOption {
	return func(c *Cached) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// Cached serves repeated lookups from a cache and collapses concurrent
// misses for the same key into one backend call.
//
// Keys have the form "{resource}:{kind}:{field}:{value}" so that
// Invalidate can drop a whole resource by prefix.
type Cached struct {
	next   slugfield.Backend
	counts cache.Cache[int]
	values cache.Cache[[]string]
	ttl    time.Duration

	countLoads  cache.Group[int]
	selectLoads cache.Group[[]string]
}

// NewCached wraps next with the given caches.
func NewCached(next slugfield.Backend, counts cache.Cache[int], values cache.Cache[[]string], opts ...CachedOption) *Cached {
	c := &Cached{
		next:   next,
		counts: counts,
		values: values,
		ttl:    DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cached) Count(ctx context.Context, resource, field, value string) (int, error) {
	key := cacheKey(resource, "count", field, value)
	return c.countLoads.GetOrSet(ctx, c.counts, key, func(ctx context.Context) (int, time.Duration, error) {
		n, err := c.next.Count(ctx, resource, field, value)
		return n, c.ttl, err
	})
}

func (c *Cached) SelectPrefix(ctx context.Context, resource, field, prefix string) ([]string, error) {
	key := cacheKey(resource, "values", field, prefix)
	return c.selectLoads.GetOrSet(ctx, c.values, key, func(ctx context.Context) ([]string, time.Duration, error) {
		vs, err := c.next.SelectPrefix(ctx, resource, field, prefix)
		return vs, c.ttl, err
	})
}

// Invalidate drops every cached answer for resource.
func (c *Cached) Invalidate(ctx context.Context, resource string) error {
	prefix := resource + ":"
	err := errors.Join(
		c.counts.DeletePrefix(ctx, prefix),
		c.values.DeletePrefix(ctx, prefix),
	)
	if err != nil {
		return errors.Join(ErrInvalidate, err)
	}
	return nil
}

func cacheKey(resource, kind, field, value string) string {
	return strings.Join([]string{resource, kind, field, value}, ":")
}

var _ slugfield.Backend = (*Cached)(nil)
