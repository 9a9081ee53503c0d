// Package gateway wraps outbound calls to the management backend.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is used when no backend URL is configured.
	DefaultBaseURL = "http://194.163.158.235:3000"
	// DefaultTimeout bounds every backend call.
	DefaultTimeout = 10 * time.Second
	// Prefix is prepended to every management resource path.
	Prefix = "/gestion"

	maxBodySize = 8 << 20
)

// Recorder observes backend calls.
type Recorder interface {
	ObserveBackend(method, resource, outcome string, elapsed time.Duration)
}

// Config configures the gateway client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRecorder installs a call recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

// Client issues JSON requests against one backend base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	recorder   Recorder
}

// New constructs a Client. A blank base URL falls back to DefaultBaseURL.
func New(cfg Config, opts ...Option) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the resolved backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends body as JSON to Prefix+path and decodes a successful JSON answer into out.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		c.observe(method, path, err, time.Since(start))
	}()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("gateway: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+Prefix+path, reader)
	if err != nil {
		return fmt.Errorf("gateway: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: path, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &Error{Kind: KindNetwork, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{
			Kind:     KindRejected,
			Method:   method,
			Path:     path,
			Status:   resp.StatusCode,
			Messages: parseMessages(raw),
		}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func (c *Client) observe(method, path string, err error, elapsed time.Duration) {
	if c.recorder == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		if gwErr, ok := err.(*Error); ok {
			outcome = gwErr.Kind.String()
		}
	}
	c.recorder.ObserveBackend(method, resourceLabel(path), outcome, elapsed)
}

// resourceLabel keeps metric cardinality bounded by dropping item identifiers.
func resourceLabel(path string) string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return "root"
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	return trimmed
}
