package repo

import (
	"context"
	"database/sql"
	"fmt"

	"mindtrade-api/internal/model"
	"mindtrade-api/pkg/trade"
)

var _ trade.PositionStore = (PositionsRepo)(nil)

// PositionsRepo persists paper positions. It satisfies the trade flow's
// position store.
type PositionsRepo interface {
	OpenPosition(ctx context.Context, rec trade.OpenPositionRecord) error
	CountOpen(ctx context.Context, userID string) (int, error)
	OpenByUser(ctx context.Context, userID string) ([]model.Positions, error)
}

type positionsRepo struct {
	positions model.PositionsModel
}

func newPositionsRepo(deps Dependencies) PositionsRepo {
	return &positionsRepo{
		positions: deps.PositionsModel,
	}
}

func (r *positionsRepo) OpenPosition(ctx context.Context, rec trade.OpenPositionRecord) error {
	row := &model.Positions{
		UserId:           rec.UserID,
		Symbol:           rec.Symbol,
		Direction:        string(rec.Direction),
		OrderType:        string(rec.OrderType),
		Status:           model.PositionStatusOpen,
		EntryPrice:       rec.EntryPrice,
		StopLoss:         rec.StopLoss,
		TakeProfit:       rec.TakeProfit,
		Margin:           rec.Margin,
		Leverage:         int64(rec.Leverage),
		Quantity:         rec.Quantity,
		PositionValue:    rec.PositionValue,
		LiquidationPrice: rec.Liquidation,
		MindsetScore:     int64(rec.MindsetScore),
		Recommendation:   string(rec.Recommendation),
		OpenedAt:         rec.OpenedAt,
	}
	if rec.SetupScore != nil {
		row.SetupScore = sql.NullInt64{Int64: int64(*rec.SetupScore), Valid: true}
	}

	if _, err := r.positions.Insert(ctx, row); err != nil {
		return fmt.Errorf("positionsRepo.OpenPosition: %w", err)
	}
	return nil
}

func (r *positionsRepo) CountOpen(ctx context.Context, userID string) (int, error) {
	count, err := r.positions.CountOpenByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("positionsRepo.CountOpen: %w", err)
	}
	return count, nil
}

func (r *positionsRepo) OpenByUser(ctx context.Context, userID string) ([]model.Positions, error) {
	rows, err := r.positions.OpenByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("positionsRepo.OpenByUser: %w", err)
	}
	return rows, nil
}
