package model

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/sqlc"
	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

var _ PositionsModel = (*customPositionsModel)(nil)

const (
	PositionStatusOpen   = "open"
	PositionStatusClosed = "closed"
)

var (
	positionsFieldNames = []string{
		"id", "user_id", "symbol", "direction", "order_type", "status",
		"entry_price", "stop_loss", "take_profit", "margin", "leverage",
		"quantity", "position_value", "liquidation_price",
		"setup_score", "mindset_score", "recommendation",
		"opened_at", "closed_at",
	}
	positionsRows = strings.Join(positionsFieldNames, ", ")

	cacheMindtradePositionsIdPrefix = "cache:mindtrade:positions:id:"
)

// Positions mirrors a row in the positions table.
type Positions struct {
	Id               int64         `db:"id"`
	UserId           string        `db:"user_id"`
	Symbol           string        `db:"symbol"`
	Direction        string        `db:"direction"`
	OrderType        string        `db:"order_type"`
	Status           string        `db:"status"`
	EntryPrice       float64       `db:"entry_price"`
	StopLoss         float64       `db:"stop_loss"`
	TakeProfit       float64       `db:"take_profit"`
	Margin           float64       `db:"margin"`
	Leverage         int64         `db:"leverage"`
	Quantity         float64       `db:"quantity"`
	PositionValue    float64       `db:"position_value"`
	LiquidationPrice float64       `db:"liquidation_price"`
	SetupScore       sql.NullInt64 `db:"setup_score"`
	MindsetScore     int64         `db:"mindset_score"`
	Recommendation   string        `db:"recommendation"`
	OpenedAt         time.Time     `db:"opened_at"`
	ClosedAt         sql.NullTime  `db:"closed_at"`
}

type (
	// PositionsModel wraps the default CRUD methods and adds the queries the
	// trade flow needs.
	PositionsModel interface {
		Insert(ctx context.Context, data *Positions) (int64, error)
		FindOne(ctx context.Context, id int64) (*Positions, error)
		CountOpenByUser(ctx context.Context, userID string) (int, error)
		OpenByUser(ctx context.Context, userID string) ([]Positions, error)
		MarkClosed(ctx context.Context, id int64, closedAt time.Time) error
	}

	customPositionsModel struct {
		*defaultPositionsModel
	}

	defaultPositionsModel struct {
		sqlc.CachedConn
		table string
	}
)

// NewPositionsModel returns a model for the positions table.
func NewPositionsModel(conn sqlx.SqlConn, c cache.CacheConf, opts ...cache.Option) PositionsModel {
	return &customPositionsModel{
		defaultPositionsModel: &defaultPositionsModel{
			CachedConn: sqlc.NewConn(conn, c, opts...),
			table:      "public.positions",
		},
	}
}

func (m *defaultPositionsModel) Insert(ctx context.Context, data *Positions) (int64, error) {
	query := fmt.Sprintf(`INSERT INTO %s
(user_id, symbol, direction, order_type, status,
 entry_price, stop_loss, take_profit, margin, leverage,
 quantity, position_value, liquidation_price,
 setup_score, mindset_score, recommendation, opened_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
RETURNING id`, m.table)

	var id int64
	err := m.QueryRowNoCacheCtx(ctx, &id, query,
		data.UserId, data.Symbol, data.Direction, data.OrderType, data.Status,
		data.EntryPrice, data.StopLoss, data.TakeProfit, data.Margin, data.Leverage,
		data.Quantity, data.PositionValue, data.LiquidationPrice,
		data.SetupScore, data.MindsetScore, data.Recommendation, data.OpenedAt)
	if err != nil {
		return 0, fmt.Errorf("positions.Insert: %w", err)
	}
	return id, nil
}

func (m *defaultPositionsModel) FindOne(ctx context.Context, id int64) (*Positions, error) {
	key := fmt.Sprintf("%s%d", cacheMindtradePositionsIdPrefix, id)
	var resp Positions
	err := m.QueryRowCtx(ctx, &resp, key, func(ctx context.Context, conn sqlx.SqlConn, v any) error {
		query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 LIMIT 1", positionsRows, m.table)
		return conn.QueryRowCtx(ctx, v, query, id)
	})
	switch err {
	case nil:
		return &resp, nil
	case sqlc.ErrNotFound:
		return nil, ErrNotFound
	default:
		return nil, err
	}
}

func (m *defaultPositionsModel) CountOpenByUser(ctx context.Context, userID string) (int, error) {
	query := fmt.Sprintf("SELECT count(*) FROM %s WHERE user_id = $1 AND status = $2", m.table)
	var count int
	if err := m.QueryRowNoCacheCtx(ctx, &count, query, userID, PositionStatusOpen); err != nil {
		return 0, fmt.Errorf("positions.CountOpenByUser: %w", err)
	}
	return count, nil
}

func (m *defaultPositionsModel) OpenByUser(ctx context.Context, userID string) ([]Positions, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s
WHERE user_id = $1 AND status = $2
ORDER BY opened_at DESC`, positionsRows, m.table)

	var rows []Positions
	if err := m.QueryRowsNoCacheCtx(ctx, &rows, query, userID, PositionStatusOpen); err != nil {
		return nil, fmt.Errorf("positions.OpenByUser: %w", err)
	}
	return rows, nil
}

func (m *defaultPositionsModel) MarkClosed(ctx context.Context, id int64, closedAt time.Time) error {
	key := fmt.Sprintf("%s%d", cacheMindtradePositionsIdPrefix, id)
	_, err := m.ExecCtx(ctx, func(ctx context.Context, conn sqlx.SqlConn) (sql.Result, error) {
		query := fmt.Sprintf("UPDATE %s SET status = $1, closed_at = $2 WHERE id = $3", m.table)
		return conn.ExecCtx(ctx, query, PositionStatusClosed, closedAt, id)
	}, key)
	if err != nil {
		return fmt.Errorf("positions.MarkClosed: %w", err)
	}
	return nil
}
