package position

import "math"

// liquidationBuffer approximates the maintenance margin fraction retained at
// liquidation. The resulting price entry*(1 ± 0.9/leverage) ignores
// exchange-specific maintenance tiers and is an approximation, not an
// exchange-accurate figure.
const liquidationBuffer = 0.9

// Projection is the derived output of Compute. It has no independent
// lifecycle; it is a pure function of the setup and is recomputed on every
// input change.
type Projection struct {
	PositionValue             float64
	Quantity                  float64
	RiskAmount                float64
	RewardAmount              float64
	RiskRewardRatio           float64
	RoePercent                float64
	RiskRoePercent            float64
	LiquidationPrice          float64
	StopLossBeyondLiquidation bool
}

// Compute derives position sizing, risk and reward amounts, ROE percentages
// and the approximate liquidation price for a setup. All divisions guard
// against zero denominators and return 0 instead of NaN or Inf.
func Compute(s Setup) Projection {
	var p Projection

	p.PositionValue = s.Margin * float64(s.Leverage)
	if s.Entry > 0 {
		p.Quantity = p.PositionValue / s.Entry
	}

	p.RiskAmount = math.Abs(s.Entry-s.StopLoss) * p.Quantity
	p.RewardAmount = math.Abs(s.TakeProfit-s.Entry) * p.Quantity
	if p.RiskAmount > 0 {
		p.RiskRewardRatio = p.RewardAmount / p.RiskAmount
	}
	if s.Margin > 0 {
		p.RoePercent = p.RewardAmount / s.Margin * 100
		p.RiskRoePercent = p.RiskAmount / s.Margin * 100
	}

	if s.Leverage > 0 {
		offset := liquidationBuffer / float64(s.Leverage)
		switch s.Direction {
		case Long:
			p.LiquidationPrice = s.Entry * (1 - offset)
			// A stop at or beyond liquidation can never execute; the
			// position is liquidated first.
			p.StopLossBeyondLiquidation = s.StopLoss > 0 && s.StopLoss <= p.LiquidationPrice
		case Short:
			p.LiquidationPrice = s.Entry * (1 + offset)
			p.StopLossBeyondLiquidation = s.StopLoss > 0 && s.StopLoss >= p.LiquidationPrice
		}
	}
	return p
}
