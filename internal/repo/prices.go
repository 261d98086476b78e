package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/stores/redis"

	cacheutil "mindtrade-api/internal/cache"
	"mindtrade-api/pkg/market"
)

var _ market.QuoteRecorder = (PricesRepo)(nil)

// PricesRepo mirrors the latest observed quote per symbol into Redis so other
// processes can read prices without hitting a market provider.
type PricesRepo interface {
	RecordQuote(ctx context.Context, provider string, quote market.Quote) error
	LatestQuote(ctx context.Context, symbol string) (*market.Quote, error)
}

// quotePayload is the msgpack wire form of a cached quote.
type quotePayload struct {
	Provider string  `msgpack:"provider"`
	Symbol   string  `msgpack:"symbol"`
	Price    float64 `msgpack:"price"`
	At       int64   `msgpack:"at"` // unix milliseconds
}

type pricesRepo struct {
	redis *redis.Redis
	ttl   cacheutil.TTLSet
}

func newPricesRepo(deps Dependencies) PricesRepo {
	return &pricesRepo{
		redis: deps.Redis,
		ttl:   deps.TTL,
	}
}

func (r *pricesRepo) RecordQuote(ctx context.Context, provider string, quote market.Quote) error {
	if r.redis == nil {
		return nil
	}
	payload := quotePayload{
		Provider: provider,
		Symbol:   quote.Symbol,
		Price:    quote.Price,
		At:       quote.At.UnixMilli(),
	}
	encoded, err := msgpack.Marshal(payload)
	if err != nil {
		return fmt.Errorf("pricesRepo.RecordQuote encode: %w", err)
	}
	ttl := cacheutil.PriceTTL(r.ttl)
	if ttl <= 0 {
		return nil
	}
	key := cacheutil.PriceLatestKey(quote.Symbol)
	if err := r.redis.SetexCtx(ctx, key, string(encoded), int(ttl/time.Second)); err != nil {
		return fmt.Errorf("pricesRepo.RecordQuote set %s: %w", key, err)
	}
	return nil
}

// LatestQuote returns the most recent recorded quote, or nil when the key has
// expired or was never written.
func (r *pricesRepo) LatestQuote(ctx context.Context, symbol string) (*market.Quote, error) {
	if r.redis == nil {
		return nil, nil
	}
	raw, err := r.redis.GetCtx(ctx, cacheutil.PriceLatestKey(symbol))
	if err != nil {
		return nil, fmt.Errorf("pricesRepo.LatestQuote get: %w", err)
	}
	if raw == "" {
		return nil, nil
	}
	var payload quotePayload
	if err := msgpack.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("pricesRepo.LatestQuote decode: %w", err)
	}
	return &market.Quote{
		Symbol: payload.Symbol,
		Price:  payload.Price,
		At:     time.UnixMilli(payload.At),
	}, nil
}
