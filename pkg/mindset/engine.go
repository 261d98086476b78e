package mindset

import (
	"math"
	"time"
)

// Tier suggestion lists shown to the user alongside the verdict. The lists
// are fixed copy, not computed.
var (
	readySuggestions = []string{
		"You're in a good state to trade — follow your plan",
	}
	prepareSuggestions = []string{
		"Take a two-minute breathing exercise before entering",
		"Re-read today's affirmations",
	}
	cautionSuggestions = []string{
		"Talk the setup through with the advisor before committing",
		"Run the breathing ritual and re-assess",
	}
	stopSuggestions = []string{
		"Step away from the charts for today",
		"Log how you're feeling instead of trading it",
	}
)

// Engine combines the three weighted sub-scores into a readiness verdict.
// It is pure and safe for concurrent use; all state lives in the inputs.
type Engine struct {
	cfg *Config
}

// NewEngine constructs an Engine. A nil config uses the defaults.
func NewEngine(cfg *Config) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Engine{cfg: cfg}
}

// Calculate scores an assessment from the self-report and the collaborator
// snapshots. A nil history or discipline snapshot is a degraded input, not
// an error: the affected sub-score falls back to its documented neutral
// default and is listed in Estimated so callers can mark it as such.
func (e *Engine) Calculate(resp EmotionalResponse, history *TradeHistorySummary, discipline *DisciplineSnapshot) (*Assessment, error) {
	if err := resp.Validate(); err != nil {
		return nil, err
	}

	out := &Assessment{Timestamp: time.Now()}

	emotional := EmotionalScore(resp)

	var historyScore float64
	if history == nil {
		historyScore = e.cfg.NeutralHistoryScore
		out.Estimated = append(out.Estimated, "history")
	} else {
		historyScore = e.HistoryScore(*history)
	}

	var disciplineScore float64
	if discipline == nil {
		disciplineScore = DisciplineScore(DisciplineSnapshot{})
		out.Estimated = append(out.Estimated, "discipline")
	} else {
		disciplineScore = DisciplineScore(*discipline)
	}

	out.Breakdown = Breakdown{
		Emotional:  weighted(emotional, e.cfg.EmotionalWeight),
		History:    weighted(historyScore, e.cfg.HistoryWeight),
		Discipline: weighted(disciplineScore, e.cfg.DisciplineWeight),
	}
	total := out.Breakdown.Emotional.Weighted + out.Breakdown.History.Weighted + out.Breakdown.Discipline.Weighted
	out.TotalScore = int(math.Round(total))
	if out.TotalScore < 0 {
		out.TotalScore = 0
	}
	if out.TotalScore > 100 {
		out.TotalScore = 100
	}

	out.Recommendation, out.CanProceed, out.Suggestions = e.tier(out.TotalScore)
	return out, nil
}

func (e *Engine) tier(total int) (Recommendation, bool, []string) {
	switch {
	case total >= e.cfg.ReadyThreshold:
		return Ready, true, readySuggestions
	case total >= e.cfg.PrepareThreshold:
		return Prepare, true, prepareSuggestions
	case total >= e.cfg.CautionThreshold:
		return Caution, false, cautionSuggestions
	default:
		return Stop, false, stopSuggestions
	}
}

func weighted(score, weight float64) SubScore {
	return SubScore{Score: score, Weight: weight, Weighted: score * weight}
}
