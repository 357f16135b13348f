// Package api implements the single outbound HTTP entry point to the
// catering backend. Every request made by the stores goes through the
// Client, which attaches the bearer token, tags requests, and
// normalizes failures into the domain error taxonomy.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"canopus/config"
	domainerrors "canopus/internal/domain/errors"
	"canopus/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// TokenSource supplies the current bearer token at request time, so a
// token rotated by the session store is picked up immediately. An empty
// string means no Authorization header is sent.
type TokenSource func() string

// Client is the configured HTTP adapter. It implements no retry and no
// timeout policy beyond the transport default; callers that need
// resilience add it themselves.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
	logger  *slog.Logger
}

// Params holds dependencies for the Client, injected by Fx.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
	Token  TokenSource
}

// NewClient creates the API client from configuration.
func NewClient(params Params) *Client {
	return New(params.Config.API.BaseURL, params.Config.API.Timeout, params.Token, params.Logger)
}

// New constructs a Client directly; used by tests and by NewClient.
func New(baseURL string, timeout time.Duration, token TokenSource, logger *slog.Logger) *Client {
	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		logger:  logger,
	}
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request. The response body, if any, is
// decoded into out when out is non-nil.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// errorBody is the backend's error payload shape.
type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "failed to marshal request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log().Debug("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)

		return domainerrors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	c.log().Debug("request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.errorFrom(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "failed to decode response body")
	}

	return nil
}

// errorFrom normalizes a non-2xx response into the domain taxonomy,
// carrying the server's message as details when one is present.
func (c *Client) errorFrom(resp *http.Response) error {
	var payload errorBody
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		_ = json.Unmarshal(raw, &payload)
	}

	return domainerrors.FromStatus(resp.StatusCode, payload.Message)
}

func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.Default()
	}

	return c.logger
}
