// Package market exposes exchange-agnostic current prices behind a small
// provider interface, with a registry so deployments pick providers from
// configuration.
package market

import (
	"context"
	"errors"
	"time"
)

// ErrPriceUnavailable is returned when a provider has no price for a symbol.
// Callers treat it as "fall back to a market order", never as a hard failure.
var ErrPriceUnavailable = errors.New("market: price unavailable")

// Quote is a point-in-time price observation.
type Quote struct {
	Symbol string
	Price  float64
	At     time.Time
}

// Provider exposes exchange-agnostic market prices.
type Provider interface {
	// CurrentPrice returns the latest quote for the specified symbol.
	CurrentPrice(ctx context.Context, symbol string) (Quote, error)
}
