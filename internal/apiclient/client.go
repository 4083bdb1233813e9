// Package apiclient is the REST client both bots use to talk to the
// CheerUp API service. It reuses the service model types so the wire
// format is defined in exactly one place.
package apiclient

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

// ErrNotFound mirrors the API's 404 responses.
var ErrNotFound = errors.New("apiclient: not found")

// TokenIssuer mints the bearer token attached to every request when
// service auth is enabled.
type TokenIssuer interface {
	Enabled() bool
	Issue(serviceName string) (string, error)
}

// Config describes how to reach the API service.
type Config struct {
	BaseURL     string
	ServiceName string
	Tokens      TokenIssuer
	HTTPClient  *http.Client
}

// Client is safe for concurrent use; it holds only the shared http.Client.
type Client struct {
	baseURL     string
	serviceName string
	tokens      TokenIssuer
	httpClient  *http.Client
}

// New constructs a Client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("apiclient: base url is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL:     baseURL,
		serviceName: cfg.ServiceName,
		tokens:      cfg.Tokens,
		httpClient:  httpClient,
	}, nil
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). A 404 comes back as ErrNotFound; any other non-2xx status is an
// error carrying the response body.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	if in != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil && c.tokens.Enabled() {
		token, err := c.tokens.Issue(c.serviceName)
		if err != nil {
			return fmt.Errorf("apiclient: issue service token: %w", err)
		}
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer response.Body.Close()

	if response.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(io.LimitReader(response.Body, 512))
		return fmt.Errorf("apiclient: %s %s: status %d: %s", method, path, response.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}
