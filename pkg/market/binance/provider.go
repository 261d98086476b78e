package binance

import (
	"context"
	"net/http"
	"time"

	"mindtrade-api/pkg/market"
)

const defaultProviderTimeout = 8 * time.Second

// Provider adapts the Binance client to the generic market.Provider contract.
type Provider struct {
	client  *Client
	timeout time.Duration
}

type providerConfig struct {
	timeout       time.Duration
	clientOptions []Option
}

// ProviderOption customises the Binance provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the default per-call timeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClientOptions passes options to the underlying Binance client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientOptions = append(cfg.clientOptions, options...)
	}
}

// NewProvider constructs a Binance market provider.
func NewProvider(opts ...ProviderOption) *Provider {
	cfg := &providerConfig{timeout: defaultProviderTimeout}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Provider{
		client:  NewClient(cfg.clientOptions...),
		timeout: cfg.timeout,
	}
}

func init() {
	market.RegisterProvider("binance", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.BaseURL != "" {
			clientOptions = append(clientOptions, WithBaseURL(cfg.BaseURL))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.MaxRetries > 0 {
			clientOptions = append(clientOptions, WithMaxRetries(cfg.MaxRetries))
		}
		if len(clientOptions) > 0 {
			opts = append(opts, WithClientOptions(clientOptions...))
		}
		return NewProvider(opts...), nil
	})
}

// CurrentPrice implements market.Provider.
func (p *Provider) CurrentPrice(ctx context.Context, symbol string) (market.Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	price, err := p.client.TickerPrice(ctx, symbol)
	if err != nil {
		return market.Quote{}, err
	}
	return market.Quote{Symbol: symbol, Price: price, At: time.Now()}, nil
}
