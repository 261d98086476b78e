// Package static provides an in-memory price provider for tests, offline use
// and as the cache the price monitor refreshes into.
package static

import (
	"context"
	"strings"
	"sync"
	"time"

	"mindtrade-api/pkg/market"
)

// Provider serves prices from an in-memory table.
type Provider struct {
	mu     sync.RWMutex
	quotes map[string]market.Quote
}

// NewProvider constructs an empty static provider.
func NewProvider() *Provider {
	return &Provider{quotes: make(map[string]market.Quote)}
}

// NewProviderWithPrices seeds the provider from a symbol → price table.
func NewProviderWithPrices(prices map[string]float64) *Provider {
	p := NewProvider()
	now := time.Now()
	for symbol, price := range prices {
		p.store(market.Quote{Symbol: symbol, Price: price, At: now})
	}
	return p
}

func init() {
	market.RegisterProvider("static", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		return NewProviderWithPrices(cfg.Prices), nil
	})
}

func normalise(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func (p *Provider) store(quote market.Quote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.quotes[normalise(quote.Symbol)] = quote
}

// SetPrice records or refreshes the price for a symbol.
func (p *Provider) SetPrice(symbol string, price float64) {
	p.store(market.Quote{Symbol: normalise(symbol), Price: price, At: time.Now()})
}

// SetQuote records a complete quote, preserving its timestamp.
func (p *Provider) SetQuote(quote market.Quote) {
	p.store(quote)
}

// CurrentPrice implements market.Provider. A missing or non-positive price
// yields market.ErrPriceUnavailable.
func (p *Provider) CurrentPrice(ctx context.Context, symbol string) (market.Quote, error) {
	if err := ctx.Err(); err != nil {
		return market.Quote{}, err
	}
	p.mu.RLock()
	quote, ok := p.quotes[normalise(symbol)]
	p.mu.RUnlock()
	if !ok || quote.Price <= 0 {
		return market.Quote{}, market.ErrPriceUnavailable
	}
	return quote, nil
}
