package solc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client talks to the compiler service over HTTP. It applies no retry or
// timeout policy of its own beyond the injected http.Client; callers decide
// how long a compile is allowed to run via the context.
type Client struct {
	URL        string
	HTTPClient *http.Client

	// MockResponder short-circuits the HTTP call when set; used by tests and
	// mock mode.
	MockResponder func(Input) (*Output, error)
}

// NewClient creates a compiler client for the given service URL.
func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		URL:        url,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// Compile submits a standard-JSON request and decodes the response. Compiler
// diagnostics are data, not errors: a response full of compile errors still
// returns a nil error here.
func (c *Client) Compile(ctx context.Context, input Input) (*Output, error) {
	if c.MockResponder != nil {
		return c.MockResponder(input)
	}

	if c.URL == "" {
		return nil, fmt.Errorf("compiler service URL is not configured")
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal compile request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.URL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach compiler service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("compiler service returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var output Output
	if err := json.NewDecoder(resp.Body).Decode(&output); err != nil {
		return nil, fmt.Errorf("failed to decode compiler output: %w", err)
	}
	return &output, nil
}
