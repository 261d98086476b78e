package mindset

import "fmt"

// SessionState tracks an assessment session through its lifecycle.
type SessionState string

const (
	StateCollecting       SessionState = "collecting"
	StateScored           SessionState = "scored"
	StateDecisionRecorded SessionState = "decision_recorded"
)

// Session walks one assessment through Collecting → Scored →
// DecisionRecorded. There is no path back from DecisionRecorded; a new
// assessment is a new session, never a mutation of history.
type Session struct {
	engine     *Engine
	state      SessionState
	assessment *Assessment
}

// NewSession starts a session in the collecting state.
func NewSession(engine *Engine) *Session {
	if engine == nil {
		engine = NewEngine(nil)
	}
	return &Session{engine: engine, state: StateCollecting}
}

// State returns the current lifecycle state.
func (s *Session) State() SessionState { return s.state }

// Assessment returns the scored assessment, or nil while collecting.
func (s *Session) Assessment() *Assessment { return s.assessment }

// Score runs the engine once over the collected responses. It can only be
// called in the collecting state.
func (s *Session) Score(resp EmotionalResponse, history *TradeHistorySummary, discipline *DisciplineSnapshot) (*Assessment, error) {
	if s.state != StateCollecting {
		return nil, fmt.Errorf("mindset: session already %s", s.state)
	}
	assessment, err := s.engine.Calculate(resp, history, discipline)
	if err != nil {
		return nil, err
	}
	s.assessment = assessment
	s.state = StateScored
	return assessment, nil
}

// RecordDecision attaches the user's single decision to a scored
// assessment. The assessment is immutable afterwards.
func (s *Session) RecordDecision(decision UserDecision) error {
	if s.state != StateScored {
		return fmt.Errorf("mindset: cannot record a decision while %s", s.state)
	}
	if !decision.Valid() {
		return fmt.Errorf("mindset: invalid user decision %q", decision)
	}
	s.assessment.UserDecision = decision
	s.state = StateDecisionRecorded
	return nil
}
