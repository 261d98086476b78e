package mindset

// Weights within the emotional sub-score.
const (
	moodWeight    = 0.30
	energyWeight  = 0.15
	sleepWeight   = 0.15
	fomoWeight    = 0.20
	revengeWeight = 0.20
)

// moodScores penalises over-excitement as hard as fear: euphoria before a
// trade is as risky as anxiety.
var moodScores = map[Mood]float64{
	MoodCalm:    100,
	MoodNeutral: 70,
	MoodAnxious: 40,
	MoodExcited: 30,
}

// energyScores is symmetric: both depleted and wired score poorly, level 3
// is the optimum.
var energyScores = map[int]float64{
	1: 50,
	2: 80,
	3: 100,
	4: 80,
	5: 50,
}

var sleepScores = map[SleepQuality]float64{
	SleepGood:    100,
	SleepAverage: 70,
	SleepPoor:    40,
}

// EmotionalScore converts the self-report into a 0-100 sub-score. The input
// must already be validated; unknown values score zero for their component.
func EmotionalScore(resp EmotionalResponse) float64 {
	return moodScores[resp.Mood]*moodWeight +
		energyScores[resp.EnergyLevel]*energyWeight +
		sleepScores[resp.SleepQuality]*sleepWeight +
		urgencyScore(resp.FomoLevel)*fomoWeight +
		urgencyScore(resp.RevengeUrge)*revengeWeight
}

// urgencyScore inverts a 1-5 urge scale: level 1 (none) scores 100, level 5
// (severe) scores 20.
func urgencyScore(level int) float64 {
	if level < 1 || level > 5 {
		return 0
	}
	return float64(6-level) * 20
}
