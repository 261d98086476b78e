package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"mindtrade-api/internal/cli"
	"mindtrade-api/internal/config"
	"mindtrade-api/internal/svc"
	"mindtrade-api/pkg/market"
	"mindtrade-api/pkg/market/static"
)

const (
	priceInterval   = 2 * time.Minute  // Price refresh interval
	apiTimeout      = 5 * time.Second  // Timeout for individual provider calls
	shutdownTimeout = 10 * time.Second // Grace period for shutdown
)

var monitoredSymbols = []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds)
	log.Println("[main] Starting price monitor...")

	configPath := "etc/mindtrade.yaml"
	appCfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("[main] Warning: Failed to load app config: %v", err)
		log.Printf("[main] Using default configuration")
		appCfg = &config.Config{Env: "test"}
	}

	log.Printf("[main] Configuration loaded:")
	for _, line := range cli.ConfigSummaryLines(appCfg) {
		log.Printf("  - %s", line)
	}

	svcCtx := svc.NewServiceContext(*appCfg)
	if svcCtx.DefaultMarket == nil {
		log.Fatalf("[main] No default market provider configured")
	}

	// The monitor mirrors live prices into a static provider so submissions
	// keep classifying against the last known price when the upstream API is
	// briefly unavailable.
	mirror := findStaticMirror(svcCtx.MarketProviders)
	if mirror == nil {
		log.Println("[main] No static mirror provider configured, prices are logged only")
	}

	var recorder market.QuoteRecorder = market.NoopQuoteRecorder{}
	if svcCtx.Repos != nil {
		recorder = svcCtx.Repos.Prices
	}

	log.Printf("  - Monitored Symbols: %v", monitoredSymbols)
	log.Printf("  - Refresh Interval: %s", priceInterval)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runPriceMonitor(ctx, appCfg.Market.Value.Default, svcCtx.DefaultMarket, mirror, recorder)
	}()

	log.Println("[main] Price monitor started. Press Ctrl+C to stop.")

	<-ctx.Done()
	log.Println("[main] Shutdown signal received, stopping tasks...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("[main] All tasks stopped cleanly")
	case <-shutdownCtx.Done():
		log.Println("[main] Shutdown timeout exceeded, forcing exit")
	}

	log.Println("[main] Price monitor stopped")
}

// findStaticMirror returns the first configured static provider, if any.
func findStaticMirror(providers map[string]market.Provider) *static.Provider {
	for _, provider := range providers {
		if mirror, ok := provider.(*static.Provider); ok {
			return mirror
		}
	}
	return nil
}

// runPriceMonitor refreshes monitored symbol prices on a schedule.
func runPriceMonitor(ctx context.Context, providerName string, source market.Provider, mirror *static.Provider, recorder market.QuoteRecorder) {
	ticker := time.NewTicker(priceInterval)
	defer ticker.Stop()

	// Run once immediately on startup
	refreshPrices(ctx, providerName, source, mirror, recorder)

	for {
		select {
		case <-ctx.Done():
			log.Println("[price] Stopping price monitor")
			return
		case <-ticker.C:
			refreshPrices(ctx, providerName, source, mirror, recorder)
		}
	}
}

// refreshPrices fetches each monitored symbol and fans the quote out to the
// mirror and the recorder.
func refreshPrices(parentCtx context.Context, providerName string, source market.Provider, mirror *static.Provider, recorder market.QuoteRecorder) {
	if parentCtx.Err() != nil {
		return
	}

	for _, symbol := range monitoredSymbols {
		func(sym string) {
			ctx, cancel := context.WithTimeout(parentCtx, apiTimeout)
			defer cancel()

			start := time.Now()
			quote, err := source.CurrentPrice(ctx, sym)
			elapsed := time.Since(start)

			if err != nil {
				log.Printf("[price.%s] [ERROR] %v, took %dms", sym, err, elapsed.Milliseconds())
				return
			}
			if quote.Price <= 0 {
				log.Printf("[price.%s] [WARN] invalid price=%f, took %dms", sym, quote.Price, elapsed.Milliseconds())
				return
			}

			log.Printf("[price.%s] [OK] price=%.2f, took %dms", sym, quote.Price, elapsed.Milliseconds())

			if mirror != nil {
				mirror.SetQuote(quote)
			}
			if err := recorder.RecordQuote(ctx, providerName, quote); err != nil {
				log.Printf("[price.%s] [WARN] record quote: %v", sym, err)
			}
		}(symbol)
	}
}
