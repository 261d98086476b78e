package mindset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calmResponse() EmotionalResponse {
	return EmotionalResponse{
		Mood:         MoodCalm,
		EnergyLevel:  3,
		SleepQuality: SleepGood,
		FomoLevel:    1,
		RevengeUrge:  1,
	}
}

func TestEmotionalScore_CalmOptimalIsPerfect(t *testing.T) {
	assert.InDelta(t, 100.0, EmotionalScore(calmResponse()), 1e-9)
}

func TestEmotionalScore_ExcitementPenalisedLikeFear(t *testing.T) {
	excited := calmResponse()
	excited.Mood = MoodExcited
	anxious := calmResponse()
	anxious.Mood = MoodAnxious
	assert.Less(t, EmotionalScore(excited), EmotionalScore(anxious), "euphoria scores below anxiety")
}

func TestEmotionalScore_EnergyIsSymmetric(t *testing.T) {
	low := calmResponse()
	low.EnergyLevel = 1
	high := calmResponse()
	high.EnergyLevel = 5
	assert.Equal(t, EmotionalScore(low), EmotionalScore(high), "too little and too much energy penalise alike")
}

func TestEmotionalScore_UrgesInvert(t *testing.T) {
	severe := calmResponse()
	severe.FomoLevel = 5
	severe.RevengeUrge = 5
	// (6-5)*20 = 20 on both 20% components versus 100 for level 1.
	assert.InDelta(t, 100-0.2*80-0.2*80, EmotionalScore(severe), 1e-9)
}

func TestHistoryScore_NoTradesIsNeutral(t *testing.T) {
	e := NewEngine(nil)
	assert.Equal(t, 70.0, e.HistoryScore(TradeHistorySummary{TotalTrades: 0}), "new traders score a neutral 70")
}

func TestHistoryScore_WinRateTiers(t *testing.T) {
	e := NewEngine(nil)
	recent := []TradeOutcome{{Win}, {Loss}, {Win}, {Loss}, {Win}} // 3 wins → 80; streak 1 win → 70
	base := recentResultsScore(recent)*recentWeight + streakScore(recent)*streakWeight

	for _, tc := range []struct {
		winRate float64
		tier    float64
	}{
		{65, 100}, {55, 80}, {45, 60}, {30, 40},
	} {
		got := e.HistoryScore(TradeHistorySummary{TotalTrades: 20, WinRatePct: tc.winRate, RecentResults: recent})
		assert.InDelta(t, tc.tier*winRateWeight+base, got, 1e-9, "win rate %.0f%%", tc.winRate)
	}
}

func TestStreakScore_ClampsAndDirection(t *testing.T) {
	losses := []TradeOutcome{{Loss}, {Loss}, {Loss}, {Loss}, {Loss}}
	assert.Equal(t, 20.0, streakScore(losses), "a deep losing streak clamps at the floor")

	wins := []TradeOutcome{{Win}, {Win}, {Win}, {Win}, {Win}}
	assert.Equal(t, 100.0, streakScore(wins), "a long winning streak clamps at the ceiling")

	assert.Equal(t, 60.0, streakScore(nil), "no recent trades keeps the neutral base")
}

func TestDisciplineScore_CategoriesAndCombo(t *testing.T) {
	all := DisciplineSnapshot{AffirmationDone: true, HabitDone: true, GoalDone: true, ActionDone: true}
	assert.Equal(t, 100.0, DisciplineScore(all))

	all.ComboCount = 10
	assert.Equal(t, 100.0, DisciplineScore(all), "combo bonus cannot push past 100")

	half := DisciplineSnapshot{AffirmationDone: true, GoalDone: true, ComboCount: 2}
	assert.Equal(t, 60.0, DisciplineScore(half), "two categories plus a 10-point combo bonus")

	assert.Equal(t, 0.0, DisciplineScore(DisciplineSnapshot{}), "missing data scores zero, never crashes")
}

func TestCalculate_ReadyScenario(t *testing.T) {
	e := NewEngine(nil)
	discipline := &DisciplineSnapshot{AffirmationDone: true, HabitDone: true, GoalDone: true, ActionDone: true}
	out, err := e.Calculate(calmResponse(), &TradeHistorySummary{TotalTrades: 0}, discipline)
	require.NoError(t, err)

	// round(100*0.4 + 70*0.3 + 100*0.3) = 91
	assert.Equal(t, 91, out.TotalScore)
	assert.Equal(t, Ready, out.Recommendation)
	assert.True(t, out.CanProceed)
	assert.Empty(t, out.Estimated)
	assert.InDelta(t, 40.0, out.Breakdown.Emotional.Weighted, 1e-9)
	assert.InDelta(t, 21.0, out.Breakdown.History.Weighted, 1e-9)
	assert.InDelta(t, 30.0, out.Breakdown.Discipline.Weighted, 1e-9)
}

func TestCalculate_MissingCollaboratorsDegrade(t *testing.T) {
	e := NewEngine(nil)
	out, err := e.Calculate(calmResponse(), nil, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"history", "discipline"}, out.Estimated, "fallbacks are documented in the breakdown")
	// 100*0.4 + 70*0.3 + 0*0.3 = 61 → prepare
	assert.Equal(t, 61, out.TotalScore)
	assert.Equal(t, Prepare, out.Recommendation)
	assert.True(t, out.CanProceed)
	assert.NotEmpty(t, out.Suggestions)
}

func TestCalculate_CautionAndStopBothGate(t *testing.T) {
	e := NewEngine(nil)
	rough := EmotionalResponse{Mood: MoodAnxious, EnergyLevel: 1, SleepQuality: SleepPoor, FomoLevel: 4, RevengeUrge: 3}
	losses := &TradeHistorySummary{TotalTrades: 10, WinRatePct: 20, RecentResults: []TradeOutcome{{Loss}, {Loss}, {Loss}, {Loss}, {Loss}}}

	caution, err := e.Calculate(rough, losses, &DisciplineSnapshot{AffirmationDone: true, HabitDone: true, GoalDone: true, ActionDone: true})
	require.NoError(t, err)
	assert.Equal(t, Caution, caution.Recommendation)
	assert.False(t, caution.CanProceed)
	assert.True(t, caution.Proceedable(true), "explicit override unlocks caution")

	stop, err := e.Calculate(rough, losses, nil)
	require.NoError(t, err)
	assert.Equal(t, Stop, stop.Recommendation)
	assert.False(t, stop.CanProceed)
	assert.True(t, stop.Proceedable(true), "the same single override hook applies to stop")
}

func TestCalculate_InvalidResponseRejectedBeforeScoring(t *testing.T) {
	e := NewEngine(nil)
	bad := calmResponse()
	bad.FomoLevel = 9
	_, err := e.Calculate(bad, nil, nil)
	assert.Error(t, err)
}

func TestCalculate_TotalAlwaysInRange(t *testing.T) {
	e := NewEngine(nil)
	responses := []EmotionalResponse{
		calmResponse(),
		{Mood: MoodExcited, EnergyLevel: 5, SleepQuality: SleepPoor, FomoLevel: 5, RevengeUrge: 5},
	}
	histories := []*TradeHistorySummary{
		nil,
		{TotalTrades: 3, WinRatePct: 100, RecentResults: []TradeOutcome{{Win}, {Win}, {Win}}},
		{TotalTrades: 50, WinRatePct: 10, RecentResults: []TradeOutcome{{Loss}, {Loss}, {Loss}, {Loss}, {Loss}}},
	}
	for _, resp := range responses {
		for _, history := range histories {
			out, err := e.Calculate(resp, history, nil)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, out.TotalScore, 0)
			assert.LessOrEqual(t, out.TotalScore, 100)
		}
	}
}
