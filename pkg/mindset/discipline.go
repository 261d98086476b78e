package mindset

const (
	categoryPoints = 25.0
	comboBonusStep = 5.0
	comboBonusCap  = 20.0
)

// DisciplineScore awards points per completed daily category plus a capped
// combo bonus, clamped to 100. Uncompleted categories simply score nothing;
// missing data never fails the assessment.
func DisciplineScore(snapshot DisciplineSnapshot) float64 {
	score := 0.0
	for _, done := range []bool{snapshot.AffirmationDone, snapshot.HabitDone, snapshot.GoalDone, snapshot.ActionDone} {
		if done {
			score += categoryPoints
		}
	}
	if snapshot.ComboCount > 0 {
		bonus := float64(snapshot.ComboCount) * comboBonusStep
		if bonus > comboBonusCap {
			bonus = comboBonusCap
		}
		score += bonus
	}
	if score > 100 {
		return 100
	}
	return score
}
