package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrNotFound = errors.New("shopify: not found")

// APIError is a non-200 response from either Shopify API, carrying the
// upstream status so handlers can propagate it.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Shopify API error: %s", e.Body)
}

// GraphQLError is a 200 response whose body carries top-level GraphQL
// errors. Treated as a caller error (bad query parameters).
type GraphQLError struct {
	Errors []json.RawMessage
}

func (e *GraphQLError) Error() string {
	raw, _ := json.Marshal(e.Errors)
	return fmt.Sprintf("shopify graphql errors: %s", raw)
}

// StorefrontClient issues GraphQL queries against the Storefront API and
// relays results verbatim.
type StorefrontClient struct {
	baseURL     string
	accessToken string
	http        *http.Client
}

func NewStorefrontClient(storeDomain, accessToken, apiVersion string, timeout time.Duration) *StorefrontClient {
	return &StorefrontClient{
		baseURL:     fmt.Sprintf("https://%s/api/%s/graphql.json", storeDomain, apiVersion),
		accessToken: accessToken,
		http:        &http.Client{Timeout: timeout},
	}
}

// NewStorefrontClientWithBaseURL is used by tests to target a fake API.
func NewStorefrontClientWithBaseURL(baseURL, accessToken string, timeout time.Duration) *StorefrontClient {
	return &StorefrontClient{
		baseURL:     baseURL,
		accessToken: accessToken,
		http:        &http.Client{Timeout: timeout},
	}
}

func (c *StorefrontClient) Configured() bool {
	return c.accessToken != ""
}

// Execute posts a query and returns the decoded data map keyed by root
// field. Top-level GraphQL errors come back as *GraphQLError.
func (c *StorefrontClient) Execute(ctx context.Context, query string, variables map[string]any) (map[string]json.RawMessage, error) {
	payload := map[string]any{"query": query}
	if len(variables) > 0 {
		payload["variables"] = variables
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storefront request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var envelope struct {
		Data   map[string]json.RawMessage `json:"data"`
		Errors []json.RawMessage          `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return nil, &GraphQLError{Errors: envelope.Errors}
	}
	return envelope.Data, nil
}
