package trade

import (
	"context"

	"mindtrade-api/pkg/mindset"
)

// PositionStore persists opened paper positions.
type PositionStore interface {
	OpenPosition(ctx context.Context, rec OpenPositionRecord) error
	CountOpen(ctx context.Context, userID string) (int, error)
}

// AssessmentStore captures the scored trace of every submission attempt.
type AssessmentStore interface {
	RecordAssessment(ctx context.Context, rec AssessmentRecord) error
}

// HistorySource supplies the trade history sub-score input.
type HistorySource interface {
	HistorySummary(ctx context.Context, userID string) (*mindset.TradeHistorySummary, error)
}

// DisciplineSource supplies today's ritual completion snapshot.
type DisciplineSource interface {
	DisciplineSnapshot(ctx context.Context, userID string) (*mindset.DisciplineSnapshot, error)
}

// Notifier fires after a position opens successfully.
type Notifier interface {
	NotifyOpened(ctx context.Context, rec OpenPositionRecord) error
}

type noopPositionStore struct{}

func (noopPositionStore) OpenPosition(ctx context.Context, rec OpenPositionRecord) error {
	return nil
}

func (noopPositionStore) CountOpen(ctx context.Context, userID string) (int, error) {
	return 0, nil
}

type noopAssessmentStore struct{}

func (noopAssessmentStore) RecordAssessment(ctx context.Context, rec AssessmentRecord) error {
	return nil
}

type noopNotifier struct{}

func (noopNotifier) NotifyOpened(ctx context.Context, rec OpenPositionRecord) error { return nil }
