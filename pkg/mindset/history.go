package mindset

// Weights within the history sub-score.
const (
	winRateWeight = 0.50
	recentWeight  = 0.30
	streakWeight  = 0.20

	streakBase     = 60.0
	winStreakStep  = 10.0
	lossStreakStep = 15.0
	streakFloor    = 20.0
	streakCeil     = 100.0
)

// HistoryScore converts the trading history summary into a 0-100 sub-score.
// A trader with zero recorded trades receives the neutral score so newcomers
// are not penalised for lacking history.
func (e *Engine) HistoryScore(history TradeHistorySummary) float64 {
	if history.TotalTrades == 0 {
		return e.cfg.NeutralHistoryScore
	}
	return winRateScore(history.WinRatePct)*winRateWeight +
		recentResultsScore(history.RecentResults)*recentWeight +
		streakScore(history.RecentResults)*streakWeight
}

func winRateScore(winRatePct float64) float64 {
	switch {
	case winRatePct >= 60:
		return 100
	case winRatePct >= 50:
		return 80
	case winRatePct >= 40:
		return 60
	default:
		return 40
	}
}

// recentResultsScore tiers on wins among the last five trades.
func recentResultsScore(recent []TradeOutcome) float64 {
	wins := 0
	for i, outcome := range recent {
		if i >= 5 {
			break
		}
		if outcome.Result == Win {
			wins++
		}
	}
	switch wins {
	case 5, 4:
		return 100
	case 3:
		return 80
	case 2:
		return 60
	case 1:
		return 40
	default:
		return 20
	}
}

// streakScore starts at a neutral base and moves up per consecutive win or
// down per consecutive loss in the most recent streak, clamped to
// [streakFloor, streakCeil]. Losses weigh heavier than wins.
func streakScore(recent []TradeOutcome) float64 {
	if len(recent) == 0 {
		return streakBase
	}
	lead := recent[0].Result
	length := 0
	for _, outcome := range recent {
		if outcome.Result != lead {
			break
		}
		length++
	}
	score := streakBase
	if lead == Win {
		score += float64(length) * winStreakStep
	} else {
		score -= float64(length) * lossStreakStep
	}
	if score < streakFloor {
		return streakFloor
	}
	if score > streakCeil {
		return streakCeil
	}
	return score
}
