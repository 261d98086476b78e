package model

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ TradesModel = (*customTradesModel)(nil)

var (
	tradesFieldNames = []string{
		"id", "user_id", "symbol", "direction",
		"entry_price", "exit_price", "quantity", "leverage",
		"pnl", "win", "opened_at", "closed_at",
	}
	tradesRows = strings.Join(tradesFieldNames, ", ")
)

// Trades mirrors a row in the trades table. A row is written once per closed
// position, so every column is settled by the time it lands here.
type Trades struct {
	Id         int64     `db:"id"`
	UserId     string    `db:"user_id"`
	Symbol     string    `db:"symbol"`
	Direction  string    `db:"direction"`
	EntryPrice float64   `db:"entry_price"`
	ExitPrice  float64   `db:"exit_price"`
	Quantity   float64   `db:"quantity"`
	Leverage   int64     `db:"leverage"`
	Pnl        float64   `db:"pnl"`
	Win        bool      `db:"win"`
	OpenedAt   time.Time `db:"opened_at"`
	ClosedAt   time.Time `db:"closed_at"`
}

// TradeStats aggregates a user's closed trades.
type TradeStats struct {
	Total  int     `db:"total"`
	Wins   int     `db:"wins"`
	Losses int     `db:"losses"`
	NetPnl float64 `db:"net_pnl"`
}

type (
	// TradesModel exposes read/write helpers over the closed-trade log.
	TradesModel interface {
		Insert(ctx context.Context, data *Trades) (int64, error)
		RecentByUser(ctx context.Context, userID string, limit int) ([]Trades, error)
		RecentBySymbols(ctx context.Context, userID string, symbols []string, limit int) ([]Trades, error)
		StatsByUser(ctx context.Context, userID string) (*TradeStats, error)
	}

	customTradesModel struct {
		*defaultTradesModel
	}

	defaultTradesModel struct {
		sqlc.CachedConn
		table string
	}
)

// NewTradesModel returns a model for the trades table.
func NewTradesModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) TradesModel {
	return &customTradesModel{
		defaultTradesModel: &defaultTradesModel{
			CachedConn: sqlc.NewConn(conn, c, opts...),
			table:      "public.trades",
		},
	}
}

func (m *defaultTradesModel) Insert(ctx context.Context, data *Trades) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s
(user_id, symbol, direction, entry_price, exit_price, quantity, leverage, pnl, win, opened_at, closed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id`, m.table)

	var id int64
	err := m.QueryRowNoCacheCtx(ctx, &id, query,
		data.UserId, data.Symbol, data.Direction,
		data.EntryPrice, data.ExitPrice, data.Quantity, data.Leverage,
		data.Pnl, data.Win, data.OpenedAt, data.ClosedAt)
	if err != nil {
		return 0, fmt.Errorf("trades.Insert: %w", err)
	}
	return id, nil
}

// RecentByUser returns trades ordered by close time descending. Limit defaults
// to 20 when non-positive, which matches what the history scorer consumes.
func (m *defaultTradesModel) RecentByUser(ctx context.Context, userID string, limit int) ([]Trades, error) {
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM %s
WHERE user_id = $1
ORDER BY closed_at DESC
LIMIT $2`, tradesRows, m.table)

	var rows []Trades
	if err := m.QueryRowsNoCacheCtx(ctx, &rows, query, userID, limit); err != nil {
		return nil, fmt.Errorf("trades.RecentByUser query: %w", err)
	}
	return rows, nil
}

// RecentBySymbols behaves like RecentByUser restricted to the given symbols.
// An empty symbol list falls back to the unrestricted query.
func (m *defaultTradesModel) RecentBySymbols(ctx context.Context, userID string, symbols []string, limit int) ([]Trades, error) {
	if len(symbols) == 0 {
		return m.RecentByUser(ctx, userID, limit)
	}
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`SELECT %s FROM %s
WHERE user_id = $1 AND symbol = ANY($2)
ORDER BY closed_at DESC
LIMIT $3`, tradesRows, m.table)

	var rows []Trades
	if err := m.QueryRowsNoCacheCtx(ctx, &rows, query, userID, pq.Array(symbols), limit); err != nil {
		return nil, fmt.Errorf("trades.RecentBySymbols query: %w", err)
	}
	return rows, nil
}

func (m *defaultTradesModel) StatsByUser(ctx context.Context, userID string) (*TradeStats, error) {
	query := fmt.Sprintf(`SELECT
    count(*) AS total,
    count(*) FILTER (WHERE win) AS wins,
    count(*) FILTER (WHERE NOT win) AS losses,
    COALESCE(sum(pnl), 0) AS net_pnl
FROM %s
WHERE user_id = $1`, m.table)

	var stats TradeStats
	if err := m.QueryRowNoCacheCtx(ctx, &stats, query, userID); err != nil {
		return nil, fmt.Errorf("trades.StatsByUser query: %w", err)
	}
	return &stats, nil
}
