package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeromicro/go-zero/core/logx"
	"github.com/zeromicro/go-zero/core/stores/redis"

	cacheutil "mindtrade-api/internal/cache"
	"mindtrade-api/internal/model"
	"mindtrade-api/pkg/mindset"
	"mindtrade-api/pkg/trade"
)

const historyRecentLimit = 20

var _ trade.HistorySource = (HistoryRepo)(nil)

// HistoryRepo summarises closed trades for the mindset engine. Summaries are
// cached in Redis for the medium TTL because they only change when a
// position closes.
type HistoryRepo interface {
	HistorySummary(ctx context.Context, userID string) (*mindset.TradeHistorySummary, error)
	RecordClosedTrade(ctx context.Context, row *model.Trades) error
}

type historyRepo struct {
	trades model.TradesModel
	redis  *redis.Redis
	ttl    cacheutil.TTLSet
}

func newHistoryRepo(deps Dependencies) HistoryRepo {
	return &historyRepo{
		trades: deps.TradesModel,
		redis:  deps.Redis,
		ttl:    deps.TTL,
	}
}

// historySummaryPayload is the msgpack wire form of a cached summary.
type historySummaryPayload struct {
	TotalTrades int      `msgpack:"total"`
	WinRatePct  float64  `msgpack:"win_rate"`
	Recent      []string `msgpack:"recent"`
}

func (r *historyRepo) HistorySummary(ctx context.Context, userID string) (*mindset.TradeHistorySummary, error) {
	key := cacheutil.HistorySummaryKey(userID)
	if cached := r.getCached(ctx, key); cached != nil {
		return cached, nil
	}

	stats, err := r.trades.StatsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("historyRepo.HistorySummary stats: %w", err)
	}
	if stats.Total == 0 {
		// No closed trades yet: report nothing so the engine falls back to
		// its neutral estimate.
		return nil, nil
	}

	recent, err := r.trades.RecentByUser(ctx, userID, historyRecentLimit)
	if err != nil {
		return nil, fmt.Errorf("historyRepo.HistorySummary recent: %w", err)
	}

	summary := &mindset.TradeHistorySummary{
		TotalTrades: stats.Total,
		WinRatePct:  100 * float64(stats.Wins) / float64(stats.Total),
	}
	for _, row := range recent {
		result := mindset.Loss
		if row.Win {
			result = mindset.Win
		}
		summary.RecentResults = append(summary.RecentResults, mindset.TradeOutcome{Result: result})
	}

	r.setCached(ctx, key, summary)
	return summary, nil
}

// RecordClosedTrade appends to the closed-trade log and drops the cached
// summary so the next read reflects it.
func (r *historyRepo) RecordClosedTrade(ctx context.Context, row *model.Trades) error {
	if _, err := r.trades.Insert(ctx, row); err != nil {
		return fmt.Errorf("historyRepo.RecordClosedTrade: %w", err)
	}
	if r.redis != nil {
		if _, err := r.redis.DelCtx(ctx, cacheutil.HistorySummaryKey(row.UserId)); err != nil {
			logx.WithContext(ctx).Errorf("drop history summary cache for %s: %v", row.UserId, err)
		}
	}
	return nil
}

func (r *historyRepo) getCached(ctx context.Context, key string) *mindset.TradeHistorySummary {
	if r.redis == nil {
		return nil
	}
	raw, err := r.redis.GetCtx(ctx, key)
	if err != nil || raw == "" {
		return nil
	}
	var payload historySummaryPayload
	if err := msgpack.Unmarshal([]byte(raw), &payload); err != nil {
		logx.WithContext(ctx).Errorf("decode history summary cache %s: %v", key, err)
		return nil
	}
	summary := &mindset.TradeHistorySummary{
		TotalTrades: payload.TotalTrades,
		WinRatePct:  payload.WinRatePct,
	}
	for _, result := range payload.Recent {
		summary.RecentResults = append(summary.RecentResults, mindset.TradeOutcome{
			Result: mindset.TradeResult(result),
		})
	}
	return summary
}

func (r *historyRepo) setCached(ctx context.Context, key string, summary *mindset.TradeHistorySummary) {
	if r.redis == nil {
		return
	}
	payload := historySummaryPayload{
		TotalTrades: summary.TotalTrades,
		WinRatePct:  summary.WinRatePct,
	}
	for _, outcome := range summary.RecentResults {
		payload.Recent = append(payload.Recent, string(outcome.Result))
	}
	encoded, err := msgpack.Marshal(payload)
	if err != nil {
		logx.WithContext(ctx).Errorf("encode history summary cache %s: %v", key, err)
		return
	}
	ttl := cacheutil.HistorySummaryTTL(r.ttl)
	if ttl <= 0 {
		return
	}
	if err := r.redis.SetexCtx(ctx, key, string(encoded), int(ttl/time.Second)); err != nil {
		logx.WithContext(ctx).Errorf("set history summary cache %s: %v", key, err)
	}
}
