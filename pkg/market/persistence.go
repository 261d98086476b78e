package market

import "context"

// QuoteRecorder lets providers persist observed quotes to external stores.
type QuoteRecorder interface {
	// RecordQuote persists a single price observation for the provider.
	RecordQuote(ctx context.Context, provider string, quote Quote) error
}

// NoopQuoteRecorder discards every quote.
type NoopQuoteRecorder struct{}

func (NoopQuoteRecorder) RecordQuote(ctx context.Context, provider string, quote Quote) error {
	return nil
}
