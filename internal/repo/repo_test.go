package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeromicro/go-zero/core/stores/sqlx"

	"mindtrade-api/internal/model"
	"mindtrade-api/pkg/mindset"
	"mindtrade-api/pkg/position"
	"mindtrade-api/pkg/trade"
)

type fakePositionsModel struct {
	rows   []model.Positions
	nextID int64
}

func (f *fakePositionsModel) Insert(_ context.Context, data *model.Positions) (int64, error) {
	f.nextID++
	row := *data
	row.Id = f.nextID
	f.rows = append(f.rows, row)
	return f.nextID, nil
}

func (f *fakePositionsModel) FindOne(_ context.Context, id int64) (*model.Positions, error) {
	for i := range f.rows {
		if f.rows[i].Id == id {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakePositionsModel) CountOpenByUser(_ context.Context, userID string) (int, error) {
	count := 0
	for _, row := range f.rows {
		if row.UserId == userID && row.Status == model.PositionStatusOpen {
			count++
		}
	}
	return count, nil
}

func (f *fakePositionsModel) OpenByUser(_ context.Context, userID string) ([]model.Positions, error) {
	var out []model.Positions
	for _, row := range f.rows {
		if row.UserId == userID && row.Status == model.PositionStatusOpen {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakePositionsModel) MarkClosed(_ context.Context, id int64, closedAt time.Time) error {
	for i := range f.rows {
		if f.rows[i].Id == id {
			f.rows[i].Status = model.PositionStatusClosed
			return nil
		}
	}
	return model.ErrNotFound
}

type fakeTradesModel struct {
	rows []model.Trades
}

func (f *fakeTradesModel) Insert(_ context.Context, data *model.Trades) (int64, error) {
	f.rows = append(f.rows, *data)
	return int64(len(f.rows)), nil
}

func (f *fakeTradesModel) RecentByUser(_ context.Context, userID string, limit int) ([]model.Trades, error) {
	var out []model.Trades
	for i := len(f.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if f.rows[i].UserId == userID {
			out = append(out, f.rows[i])
		}
	}
	return out, nil
}

func (f *fakeTradesModel) RecentBySymbols(ctx context.Context, userID string, _ []string, limit int) ([]model.Trades, error) {
	return f.RecentByUser(ctx, userID, limit)
}

func (f *fakeTradesModel) StatsByUser(_ context.Context, userID string) (*model.TradeStats, error) {
	stats := &model.TradeStats{}
	for _, row := range f.rows {
		if row.UserId != userID {
			continue
		}
		stats.Total++
		stats.NetPnl += row.Pnl
		if row.Win {
			stats.Wins++
		} else {
			stats.Losses++
		}
	}
	return stats, nil
}

type fakeAssessmentsModel struct {
	rows      []model.MindsetAssessments
	decisions map[int64]string
}

func (f *fakeAssessmentsModel) Insert(_ context.Context, data *model.MindsetAssessments) (int64, error) {
	row := *data
	row.Id = int64(len(f.rows) + 1)
	f.rows = append(f.rows, row)
	return row.Id, nil
}

func (f *fakeAssessmentsModel) FindOne(_ context.Context, id int64) (*model.MindsetAssessments, error) {
	for i := range f.rows {
		if f.rows[i].Id == id {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeAssessmentsModel) LatestByUser(_ context.Context, userID string) (*model.MindsetAssessments, error) {
	for i := len(f.rows) - 1; i >= 0; i-- {
		if f.rows[i].UserId == userID {
			row := f.rows[i]
			return &row, nil
		}
	}
	return nil, model.ErrNotFound
}

func (f *fakeAssessmentsModel) RecordDecision(_ context.Context, id int64, decision string) error {
	if f.decisions == nil {
		f.decisions = make(map[int64]string)
	}
	f.decisions[id] = decision
	return nil
}

type fakeDisciplineModel struct {
	rows map[string]model.DisciplineChecks // key user|day
}

func (f *fakeDisciplineModel) FindByUserDay(_ context.Context, userID, day string) (*model.DisciplineChecks, error) {
	row, ok := f.rows[userID+"|"+day]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &row, nil
}

func (f *fakeDisciplineModel) Upsert(_ context.Context, data *model.DisciplineChecks) error {
	if f.rows == nil {
		f.rows = make(map[string]model.DisciplineChecks)
	}
	f.rows[data.UserId+"|"+data.Day] = *data
	return nil
}

// stubConn satisfies the connection dependency without a real database.
type stubConn struct {
	sqlx.SqlConn
}

func fakeDeps() Dependencies {
	return Dependencies{
		DBConn:                  stubConn{},
		PositionsModel:          &fakePositionsModel{},
		TradesModel:             &fakeTradesModel{},
		MindsetAssessmentsModel: &fakeAssessmentsModel{},
		DisciplineChecksModel:   &fakeDisciplineModel{},
	}
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := New(Dependencies{})
	assert.Error(t, err, "empty dependencies should be rejected")

	deps := fakeDeps()
	deps.TradesModel = nil
	_, err = New(deps)
	assert.Error(t, err, "missing model should be rejected")

	_, err = New(fakeDeps())
	assert.NoError(t, err)
}

func TestPositionsRepo_OpenAndCount(t *testing.T) {
	positions := &fakePositionsModel{}
	deps := fakeDeps()
	deps.PositionsModel = positions
	set, err := New(deps)
	require.NoError(t, err)

	score := 85
	rec := trade.OpenPositionRecord{
		UserID:         "u1",
		Symbol:         "BTCUSDT",
		Direction:      position.Long,
		OrderType:      trade.OrderLimit,
		EntryPrice:     100,
		StopLoss:       95,
		TakeProfit:     115,
		Margin:         100,
		Leverage:       10,
		Quantity:       10,
		PositionValue:  1000,
		Liquidation:    91,
		SetupScore:     &score,
		MindsetScore:   88,
		Recommendation: mindset.Ready,
		OpenedAt:       time.Now(),
	}
	require.NoError(t, set.Positions.OpenPosition(context.Background(), rec))

	count, err := set.Positions.CountOpen(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	open, err := set.Positions.OpenByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "LONG", open[0].Direction)
	assert.Equal(t, "LIMIT", open[0].OrderType)
	require.True(t, open[0].SetupScore.Valid, "setup score should persist for custom mode")
	assert.EqualValues(t, 85, open[0].SetupScore.Int64)
}

func TestPositionsRepo_NilSetupScore(t *testing.T) {
	positions := &fakePositionsModel{}
	deps := fakeDeps()
	deps.PositionsModel = positions
	set, err := New(deps)
	require.NoError(t, err)

	rec := trade.OpenPositionRecord{
		UserID:    "u1",
		Symbol:    "ETHUSDT",
		Direction: position.Short,
		OrderType: trade.OrderMarket,
		OpenedAt:  time.Now(),
	}
	require.NoError(t, set.Positions.OpenPosition(context.Background(), rec))
	assert.False(t, positions.rows[0].SetupScore.Valid, "pattern mode leaves setup score NULL")
}

func TestHistoryRepo_Summary(t *testing.T) {
	trades := &fakeTradesModel{}
	deps := fakeDeps()
	deps.TradesModel = trades
	set, err := New(deps)
	require.NoError(t, err)

	now := time.Now()
	for i, win := range []bool{true, true, false, true} {
		_, err := trades.Insert(context.Background(), &model.Trades{
			UserId:   "u1",
			Symbol:   "BTCUSDT",
			Win:      win,
			Pnl:      float64(10 - 5*i),
			ClosedAt: now.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	summary, err := set.History.HistorySummary(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, 4, summary.TotalTrades)
	assert.InDelta(t, 75.0, summary.WinRatePct, 1e-9)
	require.Len(t, summary.RecentResults, 4)
	assert.Equal(t, mindset.Win, summary.RecentResults[0].Result, "most recent first")
	assert.Equal(t, mindset.Loss, summary.RecentResults[1].Result)
}

func TestHistoryRepo_NoTradesReportsNil(t *testing.T) {
	set, err := New(fakeDeps())
	require.NoError(t, err)

	summary, err := set.History.HistorySummary(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Nil(t, summary, "no closed trades should leave history unknown")
}

func TestDisciplineRepo_RoundTrip(t *testing.T) {
	set, err := New(fakeDeps())
	require.NoError(t, err)

	snapshot, err := set.Discipline.DisciplineSnapshot(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, snapshot, "missing day should report nil")

	want := mindset.DisciplineSnapshot{
		AffirmationDone: true,
		HabitDone:       true,
		ComboCount:      3,
	}
	require.NoError(t, set.Discipline.RecordToday(context.Background(), "u1", want))

	snapshot, err = set.Discipline.DisciplineSnapshot(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, snapshot)
	assert.Equal(t, want, *snapshot)
}

func TestAssessmentsRepo_RecordAndLatest(t *testing.T) {
	set, err := New(fakeDeps())
	require.NoError(t, err)

	rec := trade.AssessmentRecord{
		UserID: "u1",
		Symbol: "BTCUSDT",
		Mindset: &mindset.Assessment{
			TotalScore:     57,
			Recommendation: mindset.Caution,
			Estimated:      []string{"history", "discipline"},
		},
		Accepted:  false,
		Reason:    "mindset recommends caution",
		CreatedAt: time.Now(),
	}
	require.NoError(t, set.Assessments.RecordAssessment(context.Background(), rec))

	latest, err := set.Assessments.Latest(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 57, latest.MindsetScore)
	assert.Equal(t, "caution", latest.Recommendation)
	assert.Equal(t, []string{"history", "discipline"}, latest.Estimated)
	assert.False(t, latest.Accepted)
	assert.Nil(t, latest.SetupScore)

	require.NoError(t, set.Assessments.RecordDecision(context.Background(), latest.ID, mindset.DecisionSkip))
}

func TestAssessmentsRepo_LatestEmpty(t *testing.T) {
	set, err := New(fakeDeps())
	require.NoError(t, err)

	latest, err := set.Assessments.Latest(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, latest)
}
