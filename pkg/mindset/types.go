// Package mindset computes a trader readiness score from self-reported
// emotional state, recent trading history and daily discipline habits, and
// gates trade submission on the result.
package mindset

import (
	"fmt"
	"time"
)

// Mood is the self-reported emotional state.
type Mood string

const (
	MoodCalm    Mood = "calm"
	MoodNeutral Mood = "neutral"
	MoodAnxious Mood = "anxious"
	MoodExcited Mood = "excited"
)

// SleepQuality is the self-reported sleep rating.
type SleepQuality string

const (
	SleepGood    SleepQuality = "good"
	SleepAverage SleepQuality = "average"
	SleepPoor    SleepQuality = "poor"
)

// EmotionalResponse is the one-shot self-report collected at the start of an
// assessment session. FomoLevel and RevengeUrge are 1-5 scales where 1 means
// none and 5 means severe.
type EmotionalResponse struct {
	Mood         Mood
	EnergyLevel  int
	SleepQuality SleepQuality
	FomoLevel    int
	RevengeUrge  int
}

// Validate rejects out-of-range self-reports before any scoring runs.
func (e EmotionalResponse) Validate() error {
	switch e.Mood {
	case MoodCalm, MoodNeutral, MoodAnxious, MoodExcited:
	default:
		return fmt.Errorf("mindset: invalid mood %q", e.Mood)
	}
	switch e.SleepQuality {
	case SleepGood, SleepAverage, SleepPoor:
	default:
		return fmt.Errorf("mindset: invalid sleep quality %q", e.SleepQuality)
	}
	if e.EnergyLevel < 1 || e.EnergyLevel > 5 {
		return fmt.Errorf("mindset: energy level must be 1-5, got %d", e.EnergyLevel)
	}
	if e.FomoLevel < 1 || e.FomoLevel > 5 {
		return fmt.Errorf("mindset: fomo level must be 1-5, got %d", e.FomoLevel)
	}
	if e.RevengeUrge < 1 || e.RevengeUrge > 5 {
		return fmt.Errorf("mindset: revenge urge must be 1-5, got %d", e.RevengeUrge)
	}
	return nil
}

// TradeResult is the outcome of a closed trade.
type TradeResult string

const (
	Win  TradeResult = "WIN"
	Loss TradeResult = "LOSS"
)

// TradeOutcome is one entry of the recent-results list.
type TradeOutcome struct {
	Result TradeResult
}

// TradeHistorySummary is provided by the trade-history collaborator.
// RecentResults is ordered most recent first.
type TradeHistorySummary struct {
	TotalTrades   int
	WinRatePct    float64
	RecentResults []TradeOutcome
}

// DisciplineSnapshot reports which daily ritual categories were completed
// today, provided by the habit-tracking collaborator.
type DisciplineSnapshot struct {
	AffirmationDone bool
	HabitDone       bool
	GoalDone        bool
	ActionDone      bool
	ComboCount      int
}

// Recommendation is the four-tier readiness verdict.
type Recommendation string

const (
	Ready   Recommendation = "ready"
	Prepare Recommendation = "prepare"
	Caution Recommendation = "caution"
	Stop    Recommendation = "stop"
)

// UserDecision records how the user acted on a scored assessment.
type UserDecision string

const (
	DecisionProceed UserDecision = "proceed"
	DecisionBreathe UserDecision = "breathe"
	DecisionConsult UserDecision = "consult"
	DecisionSkip    UserDecision = "skip"
)

// Valid reports whether the decision is one of the supported values.
func (d UserDecision) Valid() bool {
	switch d {
	case DecisionProceed, DecisionBreathe, DecisionConsult, DecisionSkip:
		return true
	}
	return false
}

// SubScore is one weighted component of the total.
type SubScore struct {
	Score    float64
	Weight   float64
	Weighted float64
}

// Breakdown carries the three weighted sub-scores.
type Breakdown struct {
	Emotional  SubScore
	History    SubScore
	Discipline SubScore
}

// Assessment is the scored output of the engine. Estimated lists the
// sub-scores that fell back to neutral defaults because collaborator data
// was unavailable, so callers can display them as estimates.
type Assessment struct {
	TotalScore     int
	Recommendation Recommendation
	CanProceed     bool
	Suggestions    []string
	Breakdown      Breakdown
	Estimated      []string
	Timestamp      time.Time
	UserDecision   UserDecision
}

// Proceedable reports whether submission may go ahead. Caution and stop both
// gate by default; a single explicit override unlocks either (the tiers
// differ in tone, not in gating behaviour).
func (a *Assessment) Proceedable(override bool) bool {
	return a.CanProceed || override
}
