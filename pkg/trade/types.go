// Package trade orchestrates the paper-trade submission flow: setup parsing
// and validation, position projection, order classification, setup quality
// assessment and the mindset gate, with best-effort context enrichment.
package trade

import (
	"time"

	"mindtrade-api/pkg/assess"
	"mindtrade-api/pkg/market"
	"mindtrade-api/pkg/mindset"
	"mindtrade-api/pkg/position"
)

// OrderType distinguishes how the paper order would be placed.
type OrderType string

const (
	OrderMarket OrderType = "MARKET"
	OrderLimit  OrderType = "LIMIT"
)

// Account carries the caller's paper account state relevant to validation.
type Account struct {
	UserID           string
	AvailableBalance float64
}

// SubmitRequest is the full input to one submission attempt.
type SubmitRequest struct {
	Account Account
	Symbol  string
	Raw     position.RawSetup

	// PatternLevels holds the recommended levels a custom setup deviates
	// from. When nil, custom submissions are assessed against their own
	// levels; pattern-mode submissions skip quality assessment.
	PatternLevels *assess.Levels

	Emotional mindset.EmotionalResponse

	// Override lets the user proceed past a caution or stop recommendation.
	Override bool

	// ConfirmReprice acknowledges that an entry on the wrong side of the
	// live market may be re-priced and executed as a market order. Without
	// it an invalid limit configuration is returned for confirmation.
	ConfirmReprice bool
}

// Context is the enrichment data fetched before scoring. Every field is
// optional; missing data degrades the flow rather than failing it.
type Context struct {
	Quote      *market.Quote
	History    *mindset.TradeHistorySummary
	Discipline *mindset.DisciplineSnapshot
}

// OpenPositionRecord is what gets persisted when a submission opens.
type OpenPositionRecord struct {
	UserID         string
	Symbol         string
	Direction      position.Direction
	Mode           position.Mode
	OrderType      OrderType
	EntryPrice     float64
	StopLoss       float64
	TakeProfit     float64
	Margin         float64
	Leverage       int
	Quantity       float64
	PositionValue  float64
	Liquidation    float64
	SetupScore     *int
	MindsetScore   int
	Recommendation mindset.Recommendation
	OpenedAt       time.Time
}

// AssessmentRecord is the persisted trace of one scored submission, whether
// or not it opened.
type AssessmentRecord struct {
	UserID     string
	Symbol     string
	Setup      *assess.Assessment
	Mindset    *mindset.Assessment
	Accepted   bool
	Reason     string
	Overridden bool
	CreatedAt  time.Time
}

// SubmitResult reports the outcome of one submission attempt.
type SubmitResult struct {
	Accepted bool
	Reason   string

	OrderType      OrderType
	Projection     position.Projection
	Classification position.Classification
	Setup          *assess.Assessment
	Mindset        *mindset.Assessment
	Record         *OpenPositionRecord
}
