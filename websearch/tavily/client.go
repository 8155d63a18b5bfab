// Copyright 2025 Vincent Spruyt
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vspruyt/infogen/websearch"
)

const defaultBaseURL = "https://api.tavily.com"

// Client talks to the Tavily search and extract APIs. It implements both
// websearch.SearchProvider and websearch.ExtractionProvider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxRetries int
	logger     *slog.Logger
}

var (
	_ websearch.SearchProvider     = (*Client)(nil)
	_ websearch.ExtractionProvider = (*Client)(nil)
)

// Option is a functional option for configuring a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithMaxRetries sets how many times a rate-limited call is retried before
// giving up with ErrRateLimited.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		c.maxRetries = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With("component", "tavily")
	}
}

// NewClient creates a Tavily API client.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, websearch.ErrMissingAPIKey
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		maxRetries: 3,
		logger:     slog.Default().With("component", "tavily"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// postJSON sends one API call, retrying with exponential backoff while the
// provider answers 429. Other non-2xx statuses fail immediately.
func (c *Client) postJSON(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	backoff := 500 * time.Millisecond
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			err = json.NewDecoder(resp.Body).Decode(dest)
			resp.Body.Close()
			return err

		case resp.StatusCode == http.StatusTooManyRequests:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if attempt >= c.maxRetries {
				c.logger.Warn("rate limited, retries exhausted", "path", path, "attempts", attempt+1)
				return websearch.ErrRateLimited
			}
			c.logger.Debug("rate limited, backing off", "path", path, "attempt", attempt+1, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			backoff *= 2

		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			return websearch.ErrUnauthorized

		default:
			detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			resp.Body.Close()
			return fmt.Errorf("tavily: unexpected status %d: %s", resp.StatusCode, detail)
		}
	}
}
