package quiz

import "math"

// SessionStats summarizes the session for display.
type SessionStats struct {
	TotalQuestions      int
	MasteredQuestions   int
	RemainingQuestions  int
	ChallengedQuestions int
	InChallengeMode     bool

	// Challenge is set only in challenge mode.
	Challenge *ChallengeStats
}

// MasteryPercent returns the mastered share of the bank, rounded to a
// whole percent.
func (s SessionStats) MasteryPercent() int {
	if s.TotalQuestions == 0 {
		return 0
	}
	return int(math.Round(float64(s.MasteredQuestions) / float64(s.TotalQuestions) * 100))
}

// Stats returns the current session statistics.
func (e *Engine) Stats() SessionStats {
	if e.state == nil {
		return SessionStats{}
	}
	s := e.state
	st := SessionStats{
		TotalQuestions:      len(s.Questions),
		MasteredQuestions:   len(s.Mastered),
		RemainingQuestions:  len(s.Active),
		ChallengedQuestions: len(s.Challenged),
		InChallengeMode:     s.InChallengeMode,
	}
	if s.InChallengeMode {
		cs := s.challengeStats()
		st.Challenge = &cs
	}
	return st
}
