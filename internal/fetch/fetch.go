// Package fetch downloads the season leaders page.
//
// A single GET is issued with fixed headers. Any transport failure or
// non-success status is returned as an error; there is no retry and no
// response caching.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nao1215/mlbleaders/internal/config"
	"github.com/nao1215/mlbleaders/internal/log"
)

var (
	// ErrTransport matches every *TransportError.
	ErrTransport = errors.New("transport error")

	// ErrHTTPStatus matches every *StatusError.
	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// StatusError is returned when the server answers with a 4xx or 5xx status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

// Error implements error.
func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// Is makes errors.Is(err, ErrHTTPStatus) succeed.
func (e *StatusError) Is(target error) bool {
	return target == ErrHTTPStatus
}

// TransportError wraps DNS, connection, and timeout failures.
type TransportError struct {
	URL string
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrTransport) succeed.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// Client fetches pages over HTTP.
type Client struct {
	http    *resty.Client
	headers map[string]string
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithHeaders sets the headers sent with every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		c.headers = maps.Clone(headers)
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client with the default timeout and no headers.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    resty.New(),
		headers: make(map[string]string),
		logger:  slog.Default(),
	}
	c.http.SetTimeout(config.DefaultTimeout)

	for _, opt := range opts {
		opt(c)
	}
	c.http.SetHeaders(c.headers)
	return c
}

// NewClientFromConfig creates a Client using the timeout and headers in cfg.
func NewClientFromConfig(cfg *config.Config, opts ...Option) *Client {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithHeaders(cfg.RequestHeaders()),
	}
	return NewClient(append(base, opts...)...)
}

// Fetch performs one GET and returns the body as text.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	c.logger.Debug("request", "url", url, log.HeaderAttrs(c.headers))

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return "", &TransportError{URL: url, Err: err}
	}

	c.logger.Debug("response",
		"url", url,
		"status", res.StatusCode(),
		"bytes", len(res.Body()),
		"elapsed", res.Time(),
	)

	if res.IsError() {
		return "", &StatusError{
			URL:        url,
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
		}
	}

	return res.String(), nil
}
