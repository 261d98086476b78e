// Package binance fetches spot ticker prices from the Binance public REST API.
package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.binance.com"

	defaultHTTPTimeout  = 10 * time.Second
	defaultRetryBackoff = 200 * time.Millisecond
	defaultMaxRetries   = 3
)

// Client calls the unauthenticated Binance ticker endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

// Option customises the Binance client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (primarily for tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/"); trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithMaxRetries sets how many attempts a request makes before giving up.
func WithMaxRetries(maxRetries int) Option {
	return func(c *Client) {
		if maxRetries > 0 {
			c.maxRetries = maxRetries
		}
	}
}

// NewClient constructs a Binance client with sane defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type tickerPriceResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

// TickerPrice returns the latest traded price for a symbol, e.g. "BTCUSDT".
func (c *Client) TickerPrice(ctx context.Context, symbol string) (float64, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return 0, fmt.Errorf("binance: symbol is required")
	}

	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", c.baseURL, url.QueryEscape(symbol))
	var out tickerPriceResponse
	if err := c.doGet(ctx, endpoint, &out); err != nil {
		return 0, err
	}
	price, err := strconv.ParseFloat(out.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("binance: parse price %q: %w", out.Price, err)
	}
	return price, nil
}

func (c *Client) doGet(ctx context.Context, endpoint string, result interface{}) error {
	backoff := defaultRetryBackoff
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("binance: build request: %w", err)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("binance: read response: %w", readErr)
			} else if resp.StatusCode < http.StatusOK || resp.StatusCode >= 300 {
				lastErr = fmt.Errorf("binance: http status %d: %s", resp.StatusCode, string(body))
			} else if result != nil {
				if err := json.Unmarshal(body, result); err != nil {
					return fmt.Errorf("binance: decode response: %w", err)
				}
				return nil
			} else {
				return nil
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("binance: request failed")
}
