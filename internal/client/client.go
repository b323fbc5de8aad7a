// Package client submits captured frames to the attendance endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/kozaktomas/face-attendance/internal/attendance"
	"github.com/kozaktomas/face-attendance/internal/constants"
)

// RequestIDHeader carries a per-attempt identifier for log correlation.
const RequestIDHeader = "X-Request-Id"

// Client is an HTTP client for the attendance endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// New creates a client for the given endpoint URL. A zero timeout leaves the
// request bounded only by ctx and the transport defaults.
func New(endpoint string, timeout time.Duration) (*Client, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid endpoint URL %q: scheme must be http or https", endpoint)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid endpoint URL %q: missing host", endpoint)
	}

	return &Client{
		endpoint:   parsed.String(),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Endpoint returns the URL submissions are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends exactly one POST with req as JSON. Any JSON response is
// returned as is, whatever its status code; the caller inspects Success.
// Transport failures and non-JSON bodies are reported as *NetworkError.
func (c *Client) Submit(ctx context.Context, req attendance.Request) (*attendance.Response, error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(httpReq) //nolint:gosec // endpoint validated in New
	if err != nil {
		return nil, &NetworkError{Op: "send", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read", Status: resp.StatusCode, Err: err}
	}

	var result attendance.Response
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &NetworkError{Op: "decode", Status: resp.StatusCode, Err: fmt.Errorf("%w: %s", err, truncate(body, constants.MaxErrorBodyLength))}
	}

	return &result, nil
}

// truncate shortens a response body for error messages.
func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
