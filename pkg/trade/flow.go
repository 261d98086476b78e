package trade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"mindtrade-api/pkg/assess"
	"mindtrade-api/pkg/market"
	"mindtrade-api/pkg/mindset"
	"mindtrade-api/pkg/position"
)

// ErrSuperseded is returned when a newer submission started while this one
// was still fetching context. The stale result is discarded, never persisted.
var ErrSuperseded = errors.New("trade: submission superseded by a newer one")

// Flow wires the scoring modules to their collaborators and runs the
// submission pipeline.
type Flow struct {
	cfg         *Config
	scorer      *assess.Scorer
	engine      *mindset.Engine
	provider    market.Provider
	positions   PositionStore
	assessments AssessmentStore
	history     HistorySource
	discipline  DisciplineSource
	notifier    Notifier

	mu          sync.Mutex
	generations map[string]uint64
}

// FlowOption customises Flow construction.
type FlowOption func(*Flow)

// WithScorer injects a configured setup quality scorer.
func WithScorer(scorer *assess.Scorer) FlowOption {
	return func(f *Flow) {
		if scorer != nil {
			f.scorer = scorer
		}
	}
}

// WithEngine injects a configured mindset engine.
func WithEngine(engine *mindset.Engine) FlowOption {
	return func(f *Flow) {
		if engine != nil {
			f.engine = engine
		}
	}
}

// WithMarketProvider injects the price source used by order classification.
func WithMarketProvider(provider market.Provider) FlowOption {
	return func(f *Flow) { f.provider = provider }
}

// WithPositionStore injects the opened-position persistence.
func WithPositionStore(store PositionStore) FlowOption {
	return func(f *Flow) {
		if store != nil {
			f.positions = store
		}
	}
}

// WithAssessmentStore injects the assessment trace persistence.
func WithAssessmentStore(store AssessmentStore) FlowOption {
	return func(f *Flow) {
		if store != nil {
			f.assessments = store
		}
	}
}

// WithHistorySource injects the trade history collaborator.
func WithHistorySource(source HistorySource) FlowOption {
	return func(f *Flow) { f.history = source }
}

// WithDisciplineSource injects the habit tracking collaborator.
func WithDisciplineSource(source DisciplineSource) FlowOption {
	return func(f *Flow) { f.discipline = source }
}

// WithNotifier injects the post-open notifier.
func WithNotifier(notifier Notifier) FlowOption {
	return func(f *Flow) {
		if notifier != nil {
			f.notifier = notifier
		}
	}
}

// NewFlow constructs a Flow. All collaborators default to noops so the flow
// degrades rather than failing when a deployment wires only part of them.
func NewFlow(cfg *Config, opts ...FlowOption) *Flow {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	f := &Flow{
		cfg:         cfg,
		scorer:      assess.NewScorer(nil),
		engine:      mindset.NewEngine(nil),
		positions:   noopPositionStore{},
		assessments: noopAssessmentStore{},
		notifier:    noopNotifier{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// bumpGeneration starts a new submission generation for one user. Only
// submissions from the same user supersede each other.
func (f *Flow) bumpGeneration(userID string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.generations == nil {
		f.generations = make(map[string]uint64)
	}
	f.generations[userID]++
	return f.generations[userID]
}

func (f *Flow) currentGeneration(userID string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.generations[userID]
}

// BuildContext fetches market price, trade history and discipline state
// best-effort within the configured timeout. Missing collaborators or fetch
// failures leave the corresponding field nil.
func (f *Flow) BuildContext(ctx context.Context, userID, symbol string) *Context {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.FetchTimeout)
	defer cancel()

	out := &Context{}
	if f.provider != nil {
		quote, err := f.provider.CurrentPrice(ctx, symbol)
		if err != nil {
			logx.WithContext(ctx).Infof("trade: market price unavailable symbol=%s err=%v", symbol, err)
		} else {
			out.Quote = &quote
		}
	}
	if f.history != nil {
		history, err := f.history.HistorySummary(ctx, userID)
		if err != nil {
			logx.WithContext(ctx).Infof("trade: history unavailable user=%s err=%v", userID, err)
		} else {
			out.History = history
		}
	}
	if f.discipline != nil {
		snapshot, err := f.discipline.DisciplineSnapshot(ctx, userID)
		if err != nil {
			logx.WithContext(ctx).Infof("trade: discipline unavailable user=%s err=%v", userID, err)
		} else {
			out.Discipline = snapshot
		}
	}
	return out
}

// Submit runs one submission attempt end to end. Validation failures return
// an error; scoring gates return a non-accepted result with a reason.
func (f *Flow) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	gen := f.bumpGeneration(req.Account.UserID)

	raw := req.Raw
	if strings.TrimSpace(raw.Symbol) == "" {
		raw.Symbol = req.Symbol
	}
	setup, err := position.ParseSetup(raw)
	if err != nil {
		return nil, err
	}
	if err := setup.Validate(req.Account.AvailableBalance); err != nil {
		return nil, err
	}

	if f.cfg.MaxOpenPositions > 0 {
		open, err := f.positions.CountOpen(ctx, req.Account.UserID)
		if err != nil {
			logx.WithContext(ctx).Errorf("trade: count open positions user=%s err=%v", req.Account.UserID, err)
		} else if open >= f.cfg.MaxOpenPositions {
			return &SubmitResult{
				Reason: fmt.Sprintf("open position limit reached (%d)", f.cfg.MaxOpenPositions),
			}, nil
		}
	}

	enriched := f.BuildContext(ctx, req.Account.UserID, setup.Symbol)
	if f.currentGeneration(req.Account.UserID) != gen {
		return nil, ErrSuperseded
	}

	projection := position.Compute(setup)
	var marketPrice float64
	if enriched.Quote != nil {
		marketPrice = enriched.Quote.Price
	}
	classification := position.Classify(setup.Direction, setup.Entry, marketPrice)
	orderType := OrderMarket
	if classification.IsLimitOrder {
		orderType = OrderLimit
	}

	result := &SubmitResult{
		OrderType:      orderType,
		Projection:     projection,
		Classification: classification,
	}

	// An entry on the wrong side of the live market never executes silently:
	// the caller must confirm re-pricing to market before the order proceeds.
	if classification.InvalidLimit && !req.ConfirmReprice {
		result.Reason = fmt.Sprintf("entry %.4f is on the wrong side of market %.4f for a %s limit order; confirm re-pricing to market to proceed", setup.Entry, marketPrice, setup.Direction)
		f.recordAssessment(ctx, req, setup.Symbol, result)
		return result, nil
	}

	if setup.Mode == position.ModeCustom {
		custom := assess.Levels{Entry: setup.Entry, StopLoss: setup.StopLoss, TakeProfit: setup.TakeProfit}
		pattern := custom
		if req.PatternLevels != nil {
			pattern = *req.PatternLevels
		}
		setupAssessment := f.scorer.Assess(custom, pattern, setup.Direction, setup.Leverage)
		result.Setup = &setupAssessment
		if setupAssessment.Blocked {
			result.Reason = setupAssessment.BlockReason
			f.recordAssessment(ctx, req, setup.Symbol, result)
			return result, nil
		}
	}

	mind, err := f.engine.Calculate(req.Emotional, enriched.History, enriched.Discipline)
	if err != nil {
		return nil, err
	}
	result.Mindset = mind

	if !mind.Proceedable(req.Override) {
		result.Reason = fmt.Sprintf("mindset recommends %s", mind.Recommendation)
		f.recordAssessment(ctx, req, setup.Symbol, result)
		return result, nil
	}

	entry := setup.Entry
	if orderType == OrderMarket && marketPrice > 0 {
		entry = marketPrice
	}
	record := OpenPositionRecord{
		UserID:         req.Account.UserID,
		Symbol:         setup.Symbol,
		Direction:      setup.Direction,
		Mode:           setup.Mode,
		OrderType:      orderType,
		EntryPrice:     entry,
		StopLoss:       setup.StopLoss,
		TakeProfit:     setup.TakeProfit,
		Margin:         setup.Margin,
		Leverage:       setup.Leverage,
		Quantity:       projection.Quantity,
		PositionValue:  projection.PositionValue,
		Liquidation:    projection.LiquidationPrice,
		MindsetScore:   mind.TotalScore,
		Recommendation: mind.Recommendation,
		OpenedAt:       time.Now(),
	}
	if result.Setup != nil {
		score := result.Setup.Score
		record.SetupScore = &score
	}

	if f.currentGeneration(req.Account.UserID) != gen {
		return nil, ErrSuperseded
	}
	if err := f.positions.OpenPosition(ctx, record); err != nil {
		result.Reason = "position could not be persisted"
		f.recordAssessment(ctx, req, setup.Symbol, result)
		return nil, fmt.Errorf("trade: open position: %w", err)
	}
	result.Accepted = true
	result.Record = &record
	f.recordAssessment(ctx, req, setup.Symbol, result)

	if err := f.notifier.NotifyOpened(ctx, record); err != nil {
		logx.WithContext(ctx).Errorf("trade: notify opened user=%s symbol=%s err=%v", record.UserID, record.Symbol, err)
	}
	return result, nil
}

func (f *Flow) recordAssessment(ctx context.Context, req SubmitRequest, symbol string, result *SubmitResult) {
	rec := AssessmentRecord{
		UserID:     req.Account.UserID,
		Symbol:     symbol,
		Setup:      result.Setup,
		Mindset:    result.Mindset,
		Accepted:   result.Accepted,
		Reason:     result.Reason,
		Overridden: req.Override,
		CreatedAt:  time.Now(),
	}
	if err := f.assessments.RecordAssessment(ctx, rec); err != nil {
		logx.WithContext(ctx).Errorf("trade: record assessment user=%s symbol=%s err=%v", rec.UserID, symbol, err)
	}
}
