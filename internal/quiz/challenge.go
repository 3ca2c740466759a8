package quiz

import "context"

// ChallengeStats summarizes progress through a challenge session.
type ChallengeStats struct {
	Total     int
	Completed int
	Remaining int
}

// Percent returns the completed fraction in [0, 1].
func (c ChallengeStats) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Completed) / float64(c.Total)
}

// startChallenge enters challenge mode with fresh progress for every
// challenger.
func (s *State) startChallenge() {
	s.InChallengeMode = true
	s.Progress = make(Progress, len(s.Challenged))
	for _, q := range s.Challenged {
		// Cosmetic only; challenge scoring uses Progress.
		q.Stats.CurrentStreak = 0
		s.Progress[q.ID] = ProgressEntry{}
	}
}

func (s *State) exitChallenge() {
	s.InChallengeMode = false
	s.Progress = make(Progress)
}

// challengeCompleted reports whether every progress entry is remastered.
// It is vacuously true for an empty challenge.
func (s *State) challengeCompleted() bool {
	if !s.InChallengeMode {
		return false
	}
	for _, p := range s.Progress {
		if !p.Remastered {
			return false
		}
	}
	return true
}

func (s *State) challengeStats() ChallengeStats {
	completed := 0
	for _, p := range s.Progress {
		if p.Remastered {
			completed++
		}
	}
	total := len(s.Challenged)
	return ChallengeStats{
		Total:     total,
		Completed: completed,
		Remaining: total - completed,
	}
}

// StartChallenge enters challenge mode over the challenged pool.
func (e *Engine) StartChallenge(ctx context.Context) error {
	if err := e.requireLoaded(); err != nil {
		return err
	}
	e.state.startChallenge()
	e.logger.Info("challenge mode started", "challengers", len(e.state.Challenged))
	e.save(ctx)
	return nil
}

// ExitChallenge leaves challenge mode and discards its progress.
func (e *Engine) ExitChallenge(ctx context.Context) error {
	if err := e.requireLoaded(); err != nil {
		return err
	}
	e.state.exitChallenge()
	e.logger.Info("challenge mode exited")
	e.save(ctx)
	return nil
}

// ChallengeCompleted reports whether challenge mode is active and every
// challenger has been remastered.
func (e *Engine) ChallengeCompleted() bool {
	if e.state == nil {
		return false
	}
	return e.state.challengeCompleted()
}

// ChallengeStats returns challenge progress counts.
func (e *Engine) ChallengeStats() ChallengeStats {
	if e.state == nil {
		return ChallengeStats{}
	}
	return e.state.challengeStats()
}
