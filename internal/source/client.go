// Package source implements the HTTP client for the analytics backend.
//
// A Client issues exactly one GET per query and classifies the outcome as a
// payload or a NetworkError, StatusError, or ParseError. It never retries;
// retry policy belongs to the fetch orchestrator.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "donorlens"

	// maxErrorBody caps how much of an error body is read for the message.
	maxErrorBody = 4 << 10
)

// Query is the minimal view of a query the client needs. fetch.Query
// satisfies it.
type Query interface {
	QueryName() string
	QueryPath() string
}

// Client fetches analytics payloads from a base URL.
type Client struct {
	baseURL    string
	userAgent  string
	timeout    time.Duration
	httpClient *http.Client
}

// Option customises client instantiation.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout. A client passed with
// WithHTTPClient is copied, never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// New constructs a Client for the given base URL. Trailing slashes are
// trimmed so query paths can always start with "/".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Fetch performs one GET for q. An empty token sends the request without an
// Authorization header; the backend decides how to answer.
func (c *Client) Fetch(ctx context.Context, q Query, token string) Result {
	name := q.QueryName()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+q.QueryPath(), nil)
	if err != nil {
		return Failure(&NetworkError{Query: name, Err: fmt.Errorf("build request: %w", err)})
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Failure(&NetworkError{Query: name, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return Failure(&StatusError{
			Query:   name,
			Code:    resp.StatusCode,
			Message: extractError(io.LimitReader(resp.Body, maxErrorBody)),
		})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Failure(&NetworkError{Query: name, Err: fmt.Errorf("read body: %w", err)})
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Failure(&ParseError{Query: name, Err: errors.New("empty body")})
	}
	var probe any
	if err := json.Unmarshal(body, &probe); err != nil {
		return Failure(&ParseError{Query: name, Err: err})
	}

	return Success(json.RawMessage(body))
}

// extractError pulls a human-readable message out of an error body.
func extractError(body io.Reader) string {
	data, err := io.ReadAll(body)
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return strings.TrimSpace(string(data))
	}
	for _, msg := range []string{payload.Error, payload.Message, payload.Detail} {
		if msg = strings.TrimSpace(msg); msg != "" {
			return msg
		}
	}
	return ""
}
