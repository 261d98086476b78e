package assess

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mindtrade-api/pkg/position"
)

func pattern() Levels { return Levels{Entry: 100, StopLoss: 95, TakeProfit: 110} }

func TestAssess_MissingStopLossHardBlocks(t *testing.T) {
	s := NewScorer(nil)
	out := s.Assess(Levels{Entry: 100, StopLoss: 0, TakeProfit: 110}, pattern(), position.Long, 10)

	assert.Zero(t, out.Score, "hard block forces score to zero")
	assert.True(t, out.Blocked)
	assert.NotEmpty(t, out.BlockReason)
	assert.Empty(t, out.Warnings, "no other rule runs after a hard block")
}

func TestAssess_HardBlockIgnoresOtherInputs(t *testing.T) {
	s := NewScorer(nil)
	// Extreme deviations and leverage must not matter once SL is missing.
	out := s.Assess(Levels{Entry: 500, StopLoss: -1, TakeProfit: 1}, pattern(), position.Short, 100)
	assert.Zero(t, out.Score)
	assert.True(t, out.Blocked)
}

func TestAssess_GoodSetupKeepsHighScore(t *testing.T) {
	s := NewScorer(nil)
	// R:R = |106-101|/|101-98| = 1.67 (success), entry deviation 1% (no
	// penalty), stop tightened (no penalty), target pulled in (no penalty).
	out := s.Assess(Levels{Entry: 101, StopLoss: 98, TakeProfit: 106}, pattern(), position.Long, 10)

	assert.False(t, out.Blocked)
	assert.Equal(t, 100, out.Score)
	assert.InDelta(t, 1.6667, out.RiskReward, 1e-3)
	assert.InDelta(t, 1.0, out.Deviations.EntryPct, 1e-9)
	assert.NotEmpty(t, out.Successes, "findings are reported even for a clean setup")
}

func TestAssess_PoorRiskRewardDeducts(t *testing.T) {
	s := NewScorer(nil)
	// R:R = 2/5 = 0.4 < 1.0 → −20.
	out := s.Assess(Levels{Entry: 100, StopLoss: 95, TakeProfit: 102}, pattern(), position.Long, 10)
	assert.Equal(t, 80, out.Score)
	assert.NotEmpty(t, out.Warnings)
	assert.NotEmpty(t, out.Recommendations, "poor R:R recommends widening TP or tightening SL")
}

func TestAssess_EntryDeviationDeducts(t *testing.T) {
	s := NewScorer(nil)
	// Entry 3% off pattern → −15; R:R |110.3-103|/|103-98| = 1.46 keeps its note.
	out := s.Assess(Levels{Entry: 103, StopLoss: 98, TakeProfit: 110.3}, pattern(), position.Long, 10)
	assert.Equal(t, 85, out.Score)
}

func TestAssess_StopWideningDeducts(t *testing.T) {
	s := NewScorer(nil)
	// Long stop moved from 95 to 90 (−5.3%) widens risk → −15. R:R = 10/10 = 1.0 (no deduction).
	out := s.Assess(Levels{Entry: 100, StopLoss: 90, TakeProfit: 110}, pattern(), position.Long, 10)
	assert.Equal(t, 85, out.Score)

	// A tighter stop is not penalised.
	tight := s.Assess(Levels{Entry: 100, StopLoss: 97, TakeProfit: 110}, pattern(), position.Long, 10)
	assert.Equal(t, 100, tight.Score)
}

func TestAssess_ShortStopWideningIsMirrored(t *testing.T) {
	s := NewScorer(nil)
	shortPattern := Levels{Entry: 100, StopLoss: 105, TakeProfit: 90}
	// Short stop moved up from 105 to 110 (+4.8%) widens risk.
	out := s.Assess(Levels{Entry: 100, StopLoss: 110, TakeProfit: 90}, shortPattern, position.Short, 10)
	assert.Equal(t, 85, out.Score)
}

func TestAssess_TargetExtensionDeducts(t *testing.T) {
	s := NewScorer(nil)
	// TP moved from 110 to 120 (+9.1%) → −10; R:R = 20/5 = 4.0 (success).
	out := s.Assess(Levels{Entry: 100, StopLoss: 95, TakeProfit: 120}, pattern(), position.Long, 10)
	assert.Equal(t, 90, out.Score)
}

func TestAssess_LeverageTiers(t *testing.T) {
	s := NewScorer(nil)
	clean := Levels{Entry: 100, StopLoss: 95, TakeProfit: 110}

	assert.Equal(t, 100, s.Assess(clean, pattern(), position.Long, 20).Score, "20x carries no penalty")
	assert.Equal(t, 90, s.Assess(clean, pattern(), position.Long, 50).Score, "50x is high leverage")
	assert.Equal(t, 80, s.Assess(clean, pattern(), position.Long, 100).Score, "100x is very high leverage")
}

func TestAssess_ScoreClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RiskRewardPenalty = 100
	cfg.EntryDeviationPenalty = 100
	s := NewScorer(cfg)
	out := s.Assess(Levels{Entry: 110, StopLoss: 109, TakeProfit: 110.5}, pattern(), position.Long, 100)
	assert.GreaterOrEqual(t, out.Score, 0)
	assert.LessOrEqual(t, out.Score, 100)
}
