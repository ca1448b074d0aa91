// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package strapi is a small REST client for the Strapi headless CMS that
// holds the site's categories, authors and articles. Calls fail soft: an
// HTTP error status or an unparseable body yields no data instead of an
// error, and callers substitute an empty value.
package strapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// Client issues authenticated requests against a Strapi REST API.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *slog.Logger
	reqID   func(context.Context) string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (which has no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRequestID sets a function that reads the caller's request id from the
// context. When it returns "" a fresh id is generated per call.
func WithRequestID(fn func(context.Context) string) Option {
	return func(c *Client) { c.reqID = fn }
}

// New creates a client for the API rooted at baseURL (e.g. "http://localhost:1337").
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestOptions describes a single API call. A zero Method means GET.
// Body, when non-nil, is JSON-encoded as-is.
type RequestOptions struct {
	Method string
	Query  url.Values
	Body   any
}

// Request performs a call to endpoint (e.g. "/api/articles") and returns the
// raw JSON response. A non-2xx status or a body that is not valid JSON is
// logged and reported as (nil, nil). Only transport failures, such as a
// refused connection or a cancelled context, are returned as errors.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("strapi marshal: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("strapi request: %w", err)
	}

	var requestID string
	if c.reqID != nil {
		requestID = c.reqID(ctx)
	}
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("strapi http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("strapi read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("strapi API error",
			"method", method,
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"body", string(respBody),
			"request_id", requestID,
		)
		return nil, nil
	}

	if !json.Valid(respBody) {
		c.log.Warn("strapi returned invalid JSON",
			"method", method,
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"request_id", requestID,
		)
		return nil, nil
	}

	c.log.Debug("strapi request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"request_id", requestID,
	)
	return respBody, nil
}
