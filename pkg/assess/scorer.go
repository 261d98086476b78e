// Package assess scores user-edited trade setups against the original
// pattern-suggested levels, producing a 0-100 quality score with
// human-readable findings.
package assess

import (
	"fmt"
	"math"

	"mindtrade-api/pkg/position"
)

// Levels bundles the three price levels of a setup.
type Levels struct {
	Entry      float64
	StopLoss   float64
	TakeProfit float64
}

// Deviations reports how far the custom levels drifted from the pattern, in
// percent of the pattern level (signed).
type Deviations struct {
	EntryPct      float64
	StopLossPct   float64
	TakeProfitPct float64
}

// Assessment is the scorer output. Callers display the findings as a
// checklist, not just the number, so warnings, successes and recommendations
// are always populated even for a high score.
type Assessment struct {
	Score           int
	Blocked         bool
	BlockReason     string
	RiskReward      float64
	Deviations      Deviations
	Warnings        []string
	Successes       []string
	Recommendations []string
}

// Scorer evaluates custom setups against configured thresholds.
type Scorer struct {
	cfg *Config
}

// NewScorer constructs a Scorer. A nil config uses the defaults.
func NewScorer(cfg *Config) *Scorer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Scorer{cfg: cfg}
}

// Assess runs the fixed-order scoring rules over a custom setup. A missing
// stop loss hard-blocks the setup before any other rule is evaluated.
func (s *Scorer) Assess(custom, pattern Levels, direction position.Direction, leverage int) Assessment {
	if custom.StopLoss <= 0 {
		return Assessment{
			Score:       0,
			Blocked:     true,
			BlockReason: "no stop loss set; a setup without a stop loss cannot be submitted",
			Recommendations: []string{
				"Set a stop loss before submitting the trade",
			},
		}
	}

	out := Assessment{Score: 100}
	cfg := s.cfg

	// Risk:reward of the custom levels themselves.
	riskDistance := math.Abs(custom.Entry - custom.StopLoss)
	if riskDistance > 0 {
		out.RiskReward = math.Abs(custom.TakeProfit-custom.Entry) / riskDistance
	}
	switch {
	case out.RiskReward < cfg.MinRiskReward:
		out.Score -= cfg.RiskRewardPenalty
		out.Warnings = append(out.Warnings, fmt.Sprintf("risk:reward %.2f is below %.1f; the trade risks more than it stands to gain", out.RiskReward, cfg.MinRiskReward))
		out.Recommendations = append(out.Recommendations, "Widen the take profit or tighten the stop loss to improve risk:reward")
	case out.RiskReward >= cfg.GoodRiskReward:
		out.Successes = append(out.Successes, fmt.Sprintf("strong risk:reward of %.2f", out.RiskReward))
	default:
		out.Successes = append(out.Successes, fmt.Sprintf("acceptable risk:reward of %.2f", out.RiskReward))
	}

	// Entry deviation from the pattern suggestion.
	out.Deviations.EntryPct = deviationPct(custom.Entry, pattern.Entry)
	switch {
	case math.Abs(out.Deviations.EntryPct) > cfg.MaxEntryDeviationPct:
		out.Score -= cfg.EntryDeviationPenalty
		out.Warnings = append(out.Warnings, fmt.Sprintf("entry deviates %.1f%% from the pattern suggestion", out.Deviations.EntryPct))
		out.Recommendations = append(out.Recommendations, "Move the entry closer to the pattern-suggested level")
	case math.Abs(out.Deviations.EntryPct) < cfg.TightEntryDeviationPct:
		out.Successes = append(out.Successes, "entry tracks the pattern suggestion closely")
	}

	// A stop moved to widen risk relative to the pattern is penalised; a
	// tighter stop is not.
	out.Deviations.StopLossPct = deviationPct(custom.StopLoss, pattern.StopLoss)
	if widensRisk(direction, out.Deviations.StopLossPct, cfg.MaxStopWideningPct) {
		out.Score -= cfg.StopWideningPenalty
		out.Warnings = append(out.Warnings, fmt.Sprintf("stop loss moved %.1f%% beyond the pattern stop, widening the risk", out.Deviations.StopLossPct))
	}

	// A target moved further away than the pattern is harder to reach.
	out.Deviations.TakeProfitPct = deviationPct(custom.TakeProfit, pattern.TakeProfit)
	if extendsTarget(direction, out.Deviations.TakeProfitPct, cfg.MaxTargetExtensionPct) {
		out.Score -= cfg.TargetExtensionPenalty
		out.Warnings = append(out.Warnings, fmt.Sprintf("take profit moved %.1f%% further out than the pattern target", out.Deviations.TakeProfitPct))
		out.Recommendations = append(out.Recommendations, "Move the take profit closer to the pattern target")
	}

	switch {
	case leverage > cfg.VeryHighLeverage:
		out.Score -= cfg.VeryHighLeveragePenalty
		out.Warnings = append(out.Warnings, fmt.Sprintf("%dx leverage is very high; liquidation risk is severe", leverage))
		out.Recommendations = append(out.Recommendations, fmt.Sprintf("Reduce leverage to %dx or below", cfg.HighLeverage))
	case leverage > cfg.HighLeverage:
		out.Score -= cfg.HighLeveragePenalty
		out.Warnings = append(out.Warnings, fmt.Sprintf("%dx is high leverage", leverage))
	}

	if out.Score < 0 {
		out.Score = 0
	}
	if out.Score > 100 {
		out.Score = 100
	}
	return out
}

func deviationPct(custom, pattern float64) float64 {
	if pattern == 0 {
		return 0
	}
	return (custom - pattern) / pattern * 100
}

// widensRisk reports whether the stop move increases loss distance: for a
// LONG the stop moved down, for a SHORT the stop moved up.
func widensRisk(direction position.Direction, slDeviationPct, threshold float64) bool {
	switch direction {
	case position.Long:
		return slDeviationPct < -threshold
	case position.Short:
		return slDeviationPct > threshold
	}
	return false
}

// extendsTarget reports whether the take profit was moved further from entry
// than the pattern target: up for a LONG, down for a SHORT.
func extendsTarget(direction position.Direction, tpDeviationPct, threshold float64) bool {
	switch direction {
	case position.Long:
		return tpDeviationPct > threshold
	case position.Short:
		return tpDeviationPct < -threshold
	}
	return false
}
