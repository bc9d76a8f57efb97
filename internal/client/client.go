package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/promptdesk/internal/content"
	"github.com/dmitrymomot/promptdesk/pkg/slugfield"
)

var (
	ErrInvalidURL = errors.New("client: invalid base url")
	ErrRequest    = errors.New("client: request failed")
	ErrDecode     = errors.New("client: invalid response body")
)

// DefaultTimeout bounds every request made with the default http.Client.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("client: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("client: %d %s", e.Status, e.Message)
}

// AsAPIError extracts an APIError from err's chain, or nil.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithHeader adds a header to every request, e.g. an auth token set by a
// reverse proxy.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// Client is an API client. It is safe for concurrent use.
type Client struct {
	base   *url.URL
	http   *http.Client
	header http.Header
}

var _ slugfield.Backend = (*Client)(nil)

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, errors.Join(ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, baseURL)
	}

	c := &Client{
		base:   u,
		http:   &http.Client{Timeout: DefaultTimeout},
		header: http.Header{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type countResponse struct {
	Count int `json:"count"`
}

type valuesResponse struct {
	Values []string `json:"values"`
}

// Count implements slugfield.Backend.
func (c *Client) Count(ctx context.Context, resource, field, value string) (int, error) {
	var resp countResponse
	q := url.Values{"field": {field}, "value": {value}}
	if err := c.do(ctx, http.MethodGet, "/api/lookup/"+url.PathEscape(resource)+"/count", q, nil, &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// SelectPrefix implements slugfield.Backend.
func (c *Client) SelectPrefix(ctx context.Context, resource, field, prefix string) ([]string, error) {
	var resp valuesResponse
	q := url.Values{"field": {field}, "prefix": {prefix}}
	if err := c.do(ctx, http.MethodGet, "/api/lookup/"+url.PathEscape(resource)+"/values", q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// Check asks the server for the first free slug based on value.
func (c *Client) Check(ctx context.Context, resource, field, value string) (content.CheckResult, error) {
	var res content.CheckResult
	q := url.Values{"resource": {resource}, "field": {field}, "value": {value}}
	err := c.do(ctx, http.MethodGet, "/api/slugs/check", q, nil, &res)
	return res, err
}

// CreateRecord stores a record. An empty in.ID lets the server derive one.
func (c *Client) CreateRecord(ctx context.Context, resource string, in content.Input) (content.Record, error) {
	var rec content.Record
	err := c.do(ctx, http.MethodPost, "/api/"+url.PathEscape(resource), nil, in, &rec)
	return rec, err
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	u := *c.base
	u.Path += path
	u.RawQuery = q.Encode()

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return errors.Join(ErrRequest, err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), r)
	if err != nil {
		return errors.Join(ErrRequest, err)
	}
	for k, v := range c.header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Join(ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		// A body that is not the JSON error shape still yields the status.
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Join(ErrDecode, err)
	}
	return nil
}
