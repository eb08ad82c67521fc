// Copyright (c) 2026 John Dewey

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER
// DEALINGS IN THE SOFTWARE.

// Package client is the HTTP client behind the "bazaar client" commands.
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

	"github.com/hashicorp/go-retryablehttp"

	"github.com/retr0h/bazaar/internal/api/common"
	"github.com/retr0h/bazaar/internal/config"
	"github.com/retr0h/bazaar/internal/telemetry"
)

const defaultTimeout = 30 * time.Second

// Client talks to a bazaar API server.
type Client struct {
	baseURL string
	logger  *slog.Logger

	// reads retries transient failures; writes never retry so a mutation is
	// sent, and audited, at most once.
	reads  *http.Client
	writes *http.Client
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// authTransport stamps the bearer token and trace context on every request
// and logs the exchange at debug level.
type authTransport struct {
	base       http.RoundTripper
	authHeader string
	logger     *slog.Logger
}

// New creates a Client for appConfig.API.Client.
func New(
	logger *slog.Logger,
	appConfig config.Config,
) *Client {
	transport := &authTransport{
		base:   http.DefaultTransport,
		logger: logger,
	}
	if token := appConfig.API.Client.Security.BearerToken; token != "" {
		transport.authHeader = "Bearer " + token
	}

	retrying := retryablehttp.NewClient()
	retrying.HTTPClient = &http.Client{Transport: transport, Timeout: defaultTimeout}
	retrying.Logger = logger
	retrying.RetryMax = 3
	retrying.RetryWaitMin = 100 * time.Millisecond
	retrying.RetryWaitMax = 2 * time.Second
	retrying.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		baseURL: strings.TrimRight(appConfig.API.Client.URL, "/"),
		logger:  logger,
		reads:   retrying.StandardClient(),
		writes:  &http.Client{Transport: transport, Timeout: defaultTimeout},
	}
}

// RoundTrip implements http.RoundTripper.
func (t *authTransport) RoundTrip(
	req *http.Request,
) (*http.Response, error) {
	req = req.Clone(req.Context())
	if t.authHeader != "" {
		req.Header.Set("Authorization", t.authHeader)
	}
	telemetry.InjectTraceContextToHeader(req.Context(), req.Header)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	if err != nil {
		t.logger.Debug("http request failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL.String()),
			slog.String("error", err.Error()),
			slog.Duration("duration", duration),
		)
		return nil, err
	}

	t.logger.Debug("http response",
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration),
	)

	return resp, nil
}

// do sends a JSON request and decodes a JSON response into out.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	in any,
	out any,
) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	hc := c.writes
	if method == http.MethodGet {
		hc = c.reads
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp common.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr != nil || errResp.Error == "" {
			errResp.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
