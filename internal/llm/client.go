package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultURL is the Anthropic Messages API endpoint.
	DefaultURL = "https://api.anthropic.com/v1/messages"
	// APIVersion is sent as the anthropic-version header on every call.
	APIVersion = "2023-06-01"
	// Model is the only model the relay talks to. Clients cannot change it.
	Model = "claude-3-haiku-20240307"
)

// Client is a client for the Anthropic Messages API.
// It holds no credential; every call carries the caller's key.
type Client struct {
	URL    string
	client *http.Client
}

// NewClient creates a new Messages API client.
// A zero timeout leaves the upstream call unbounded.
func NewClient(url string, timeout time.Duration) *Client {
	httpClient := http.DefaultClient
	if timeout > 0 {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		URL:    url,
		client: httpClient,
	}
}

// CreateMessage posts payload to the Messages API using apiKey and returns the
// raw status and body. Non-2xx statuses are not errors; only transport and
// encoding failures are.
func (c *Client) CreateMessage(ctx context.Context, apiKey string, payload MessagesRequest) (*Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("anthropic-version", APIVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       raw,
	}, nil
}
