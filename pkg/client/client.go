// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is a typed Go client for the Folio REST API.

Every call maps to one request against the query-style endpoints under the
API base URL. Server error text is surfaced verbatim through [*RequestError].
There is no retry and no optimistic locking: the last write wins.

# Usage

	cfg, _ := client.LoadConfig()
	c := client.New(cfg)
	if _, err := c.Login(ctx, email, password); err != nil { ... }
	entries, err := c.ListContent(ctx, "product", client.ListOptions{All: true})
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration

// Config holds the client settings.
type Config struct {
	// BaseURL points at the API root, e.g. https://example.com/api.
	BaseURL string `env:"FOLIO_API_URL" envDefault:"http://localhost:8080/api"`

	// Timeout bounds each request.
	Timeout time.Duration `env:"FOLIO_API_TIMEOUT" envDefault:"30s"`

	// Token is an optional pre-issued bearer token.
	Token string `env:"FOLIO_API_TOKEN"`
}

// LoadConfig reads [Config] from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("client: failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// # Client

// Client talks to one Folio API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// Option customizes a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying transport, typically in tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// New constructs a [Client] from cfg.
func New(cfg Config, options ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		token:      cfg.Token,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// SetToken replaces the bearer token. An empty token makes requests anonymous.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// # Transport

// envelope is the error half of every API response. Success payloads are
// decoded separately into the caller's target.
type envelope struct {
	OK      *bool         `json:"ok"`
	Error   string        `json:"error"`
	Code    string        `json:"code"`
	Details []FieldDetail `json:"details"`
}

/*
do sends one request and decodes the success envelope into out.

Parameters:
  - method: HTTP method
  - path: endpoint relative to the base URL, e.g. "content"
  - query: optional query parameters
  - body: JSON-encoded when non-nil
  - out: decoded from the response body when non-nil

Returns:
  - error: *RequestError for transport failures, non-2xx statuses and ok=false bodies
*/
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, reader, contentType, out)
}

func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	target := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return &RequestError{Message: err.Error(), Err: err}
	}
	request.Header.Set("Accept", "application/json")
	if contentType != "" {
		request.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return &RequestError{Message: "Request failed: " + err.Error(), Err: err}
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return &RequestError{StatusCode: response.StatusCode, Message: "Request failed: " + err.Error(), Err: err}
	}

	var head envelope
	decodeErr := json.Unmarshal(raw, &head)

	failed := response.StatusCode < 200 || response.StatusCode > 299 || (decodeErr == nil && head.OK != nil && !*head.OK)
	if failed {
		requestErr := &RequestError{StatusCode: response.StatusCode, Code: head.Code, Message: head.Error, Details: head.Details}
		if requestErr.Message == "" {
			requestErr.Message = http.StatusText(response.StatusCode)
		}
		return requestErr
	}

	if decodeErr != nil {
		return &RequestError{StatusCode: response.StatusCode, Message: "Malformed response: " + decodeErr.Error(), Err: decodeErr}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &RequestError{StatusCode: response.StatusCode, Message: "Malformed response: " + err.Error(), Err: err}
	}
	return nil
}

// idQuery builds the ?<name>=<id> query used by single-resource endpoints.
func idQuery(name, id string) url.Values {
	return url.Values{name: []string{id}}
}

// MessageResponse is the body of mutations that only confirm.
type MessageResponse struct {
	ID      string `json:"id,omitempty"`
	Message string `json:"message"`
}
