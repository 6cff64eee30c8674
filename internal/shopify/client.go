// Package shopify talks to the remote commerce platform: the storefront
// GraphQL surface for catalog reads and cart mutations, and the admin REST
// surface for direct order creation. It is the only package that sees raw
// platform responses; everything above it works with domain types and the
// error taxonomy in internal/domain.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Config holds the platform coordinates for one store.
type Config struct {
	StoreDomain     string
	StorefrontToken string
	AdminToken      string
	APIVersion      string
	Timeout         time.Duration

	// BaseURL overrides https://StoreDomain, for tests and proxies.
	BaseURL string
}

// Client issues storefront GraphQL requests.
type Client struct {
	httpClient      *http.Client
	endpoint        string
	storefrontToken string
}

// New builds a storefront client from cfg.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		endpoint:        fmt.Sprintf("%s/api/%s/graphql.json", cfg.baseURL(), cfg.APIVersion),
		storefrontToken: cfg.StorefrontToken,
	}
}

func (c Config) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return "https://" + c.StoreDomain
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// execute posts one GraphQL document and decodes the data envelope into
// out. Top-level GraphQL errors and non-2xx statuses come back as a
// TransportError; mutation-level user errors are the caller's to inspect.
func (c *Client) execute(ctx context.Context, op, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("%s: encode request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.storefrontToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportErr(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportErr(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return transportErr(op, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(raw)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return transportErr(op, fmt.Errorf("decode response: %w", err))
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return remoteErr(op, messages)
	}
	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return transportErr(op, fmt.Errorf("decode data: %w", err))
		}
	}
	return nil
}

func truncate(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
