// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package client talks to the Mlomp content API. A Client owns the base
// URL, the HTTP transport and the bearer token source; Resource and Auth
// build typed operations on top of it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"mlomp/internal/metrics"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// TokenFunc returns the bearer token for the request context, or "" when
// the caller is anonymous.
type TokenFunc func(ctx context.Context) string

// Client is a small JSON/multipart HTTP client for the content API.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenFunc
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithToken installs the token source consulted on every request.
func WithToken(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// New creates a Client for the API rooted at baseURL (e.g.
// "http://localhost:5000/api").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

type tokenKey struct{}

// WithTokenContext returns a context whose requests carry the given bearer
// token, overriding the client's TokenFunc.
func WithTokenContext(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func (c *Client) bearer(ctx context.Context) string {
	if tok, ok := ctx.Value(tokenKey{}).(string); ok {
		return tok
	}
	if c.token != nil {
		return c.token(ctx)
	}
	return ""
}

// request describes one API call.
type request struct {
	resource string
	op       string
	method   string
	path     string
	body     io.Reader
	// contentType is the multipart content type when body is a form; empty
	// means JSON.
	contentType string
}

// do executes req and decodes a successful JSON response into out (which
// may be nil). Every failure is returned as *Error.
func (c *Client) do(ctx context.Context, req request, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.ClientCallsTotal.WithLabelValues(req.resource, req.op, metrics.Outcome(err)).Inc()
		metrics.ClientCallDuration.WithLabelValues(req.resource, req.op).Observe(time.Since(start).Seconds())
	}()

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, req.body)
	if err != nil {
		return &Error{Resource: req.resource, Op: req.op, Message: GenericMessage, Err: err}
	}

	if tok := c.bearer(ctx); tok != "" {
		httpReq.Header.Set("Authorization", "Bearer "+tok)
	}
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	} else {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		slog.Debug("api call failed", "resource", req.resource, "op", req.op, "error", err)
		return &Error{Resource: req.resource, Op: req.op, Message: GenericMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &Error{
			Resource: req.resource,
			Op:       req.op,
			Status:   resp.StatusCode,
			Message:  extractMessage(body),
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{
			Resource: req.resource,
			Op:       req.op,
			Status:   resp.StatusCode,
			Message:  GenericMessage,
			Err:      fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// jsonBody marshals v for a JSON request.
func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return bytes.NewReader(b), nil
}

// extractMessage pulls a human-readable message out of an error body:
// the JSON "message" field first, then the trimmed text body.
func extractMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && strings.TrimSpace(payload.Message) != "" {
		return payload.Message
	}
	if json.Valid(body) {
		return GenericMessage
	}
	text := strings.TrimSpace(string(body))
	if text == "" || strings.HasPrefix(text, "<") {
		return GenericMessage
	}
	return text
}
