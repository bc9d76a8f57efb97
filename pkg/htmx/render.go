package htmx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// Renderable is satisfied by templ.Component.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Config holds response headers and out-of-band components for one render.
type Config struct {
	OOBComponents []Renderable
	Retarget      string
	Reswap        SwapStrategy
	PushURL       string
	// Triggers maps client event names to an optional detail payload.
	Triggers    map[string]any
	AfterSettle []string
	Refresh     bool
}

// RenderOption configures HTMX render behavior.
type RenderOption func(*Config)

// NewConfig creates a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders sets HTMX headers on the response. It must run before
// WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) error {
	if c == nil {
		return nil
	}

	h := w.Header()
	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if c.PushURL != "" {
		h.Set(HeaderHXPushURL, c.PushURL)
	}
	if len(c.Triggers) > 0 {
		v, err := encodeTriggers(c.Triggers)
		if err != nil {
			return err
		}
		h.Set(HeaderHXTrigger, v)
	}
	if len(c.AfterSettle) > 0 {
		h.Set(HeaderHXTriggerSet, strings.Join(c.AfterSettle, ", "))
	}
	if c.Refresh {
		h.Set(HeaderHXRefresh, "true")
	}
	return nil
}

// encodeTriggers uses the short comma form when no event carries a payload.
func encodeTriggers(events map[string]any) (string, error) {
	names := slices.Sorted(maps.Keys(events))
	plain := true
	for _, n := range names {
		if events[n] != nil {
			plain = false
			break
		}
	}
	if plain {
		return strings.Join(names, ", "), nil
	}
	b, err := json.Marshal(events)
	if err != nil {
		return "", fmt.Errorf("htmx: encode trigger: %w", err)
	}
	return string(b), nil
}

// Render writes headers, status, the main component and then every
// out-of-band component.
func Render(ctx context.Context, w http.ResponseWriter, status int, main Renderable, opts ...RenderOption) error {
	cfg := NewConfig(opts...)
	if err := cfg.ApplyHeaders(w); err != nil {
		return err
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(status)

	if main != nil {
		if err := main.Render(ctx, w); err != nil {
			return err
		}
	}
	for _, c := range cfg.OOBComponents {
		if err := c.Render(ctx, w); err != nil {
			return err
		}
	}
	return nil
}

// WithOOB appends out-of-band components to render after the main component.
// Components must include id and hx-swap-oob attributes.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) {
		c.OOBComponents = append(c.OOBComponents, components...)
	}
}

// WithRetarget sets the HX-Retarget header.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

// WithReswap sets the HX-Reswap header.
func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) {
		c.Reswap = strategy
	}
}

// WithPushURL sets the HX-Push-Url header. Pass "false" to keep the URL.
func WithPushURL(url string) RenderOption {
	return func(c *Config) {
		c.PushURL = url
	}
}

// WithTrigger fires client events without a payload.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.trigger(e, nil)
		}
	}
}

// WithTriggerDetail fires a client event carrying detail as event.detail.
func WithTriggerDetail(event string, detail any) RenderOption {
	return func(c *Config) {
		c.trigger(event, detail)
	}
}

// WithTriggerAfterSettle sets the HX-Trigger-After-Settle header.
func WithTriggerAfterSettle(events ...string) RenderOption {
	return func(c *Config) {
		c.AfterSettle = append(c.AfterSettle, events...)
	}
}

// WithRefresh forces a full page refresh.
func WithRefresh() RenderOption {
	return func(c *Config) {
		c.Refresh = true
	}
}

func (c *Config) trigger(event string, detail any) {
	if c.Triggers == nil {
		c.Triggers = make(map[string]any)
	}
	c.Triggers[event] = detail
}
