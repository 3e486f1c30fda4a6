package gateway

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

	apperrors "cinebook/internal/errors"
	"cinebook/internal/metrics"
)

// TokenSource supplies the session token attached to every call.
type TokenSource interface {
	Token(ctx context.Context) string
}

// Config holds gateway client settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is the typed REST client for the booking backend. All seat, booking
// and payment endpoints go through it.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// APIError is a non-2xx backend response that is not a recognized condition.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}

// NewClient creates a gateway client. tokens may be nil for unauthenticated
// use in tests.
func NewClient(cfg Config, tokens TokenSource) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens: tokens,
	}
}

// do sends one JSON request with the session token attached and decodes the
// response into out (when non-nil). Expired-token responses are detected here
// so that every operation maps them to the same session-expired signal.
func (c *Client) do(ctx context.Context, operation, method, path string, body, out any) error {
	err := c.roundTrip(ctx, method, path, body, out)
	metrics.ObserveGatewayCall(operation, err)
	if err != nil {
		return fmt.Errorf("%s: %w", operation, err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(ctx); token != "" {
			req.Header.Set("x-auth-token", token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		if isTokenExpired(string(raw)) {
			return fmt.Errorf("%s: %w", strings.TrimSpace(string(raw)), apperrors.ErrSessionExpired)
		}
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// isTokenExpired matches the backend's expired-token error bodies. The
// backend reports this only as message text, so detection is by substring.
func isTokenExpired(body string) bool {
	return strings.Contains(strings.ToLower(body), "token expired")
}

// StatusCode extracts the HTTP status from an error returned by the client,
// or 0 when the error carries none.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
