package quiz

import (
	"context"
	"time"

	"github.com/abhisek/quizmaster/internal/bank"
)

// Outcome is the result of submitting an answer.
type Outcome struct {
	// Correct reports whether the answer matched.
	Correct bool

	// Streak is the challenge progress streak in challenge mode, otherwise
	// the question's own current streak.
	Streak int

	// Mastered is the question's mastery flag after the answer.
	Mastered bool

	// Attempts is the question's AttemptsBeforeMastery.
	Attempts int

	// Promoted is set when this answer moved the question into Mastered.
	Promoted bool

	// Remastered is set when this answer completed the question's
	// challenge streak.
	Remastered bool
}

// apply runs the promotion state machine for an answer to s.Current.
// The caller guarantees s.Current is non-nil.
func (s *State) apply(cfg Config, answer string) Outcome {
	q := s.Current
	q.Stats.TotalAttempts++
	if !q.Stats.IsMastered {
		q.Stats.AttemptsBeforeMastery++
	}

	correct := q.IsCorrect(answer)
	if correct {
		q.Stats.CorrectAttempts++
	}

	out := Outcome{Correct: correct}
	if s.InChallengeMode {
		out.Streak, out.Remastered = s.applyChallenge(cfg, q.ID, correct)
	} else {
		out.Promoted = applyNormal(cfg, q, correct)
		out.Streak = q.Stats.CurrentStreak
		if out.Promoted {
			s.promote(q, q.Stats.IsChallenger)
		}
	}

	out.Mastered = q.Stats.IsMastered
	out.Attempts = q.Stats.AttemptsBeforeMastery
	return out
}

// applyNormal updates q's streak and mastery flags. It reports whether q
// reached mastery with this answer.
func applyNormal(cfg Config, q *bank.Question, correct bool) bool {
	if !correct {
		q.Stats.CurrentStreak = 0
		return false
	}

	q.Stats.CurrentStreak++
	if q.Stats.CurrentStreak < cfg.TargetStreak || q.Stats.IsMastered {
		return false
	}

	q.Stats.IsMastered = true
	// AttemptsBeforeMastery stops counting here, so this is the value at
	// the moment of promotion.
	if q.Stats.AttemptsBeforeMastery >= cfg.ChallengeThreshold {
		q.Stats.IsChallenger = true
	}
	return true
}

// applyChallenge updates the challenge progress entry for id. Questions
// without an entry are left alone.
func (s *State) applyChallenge(cfg Config, id bank.QuestionID, correct bool) (streak int, remastered bool) {
	entry, ok := s.Progress[id]
	if !ok {
		return 0, false
	}

	if !correct {
		entry.Streak = 0
		s.Progress[id] = entry
		return 0, false
	}

	entry.Streak++
	if entry.Streak >= cfg.TargetStreak && !entry.Remastered {
		entry.Remastered = true
		remastered = true
	}
	s.Progress[id] = entry
	return entry.Streak, remastered
}

// Submit applies answer to the current question, records it, and saves
// the session. It returns ErrNoCurrentQuestion if nothing has been drawn.
func (e *Engine) Submit(ctx context.Context, answer string) (Outcome, error) {
	if err := e.requireLoaded(); err != nil {
		return Outcome{}, err
	}
	if e.state.Current == nil {
		return Outcome{}, ErrNoCurrentQuestion
	}

	q := e.state.Current
	mode := ModeNormal
	if e.state.InChallengeMode {
		mode = ModeChallenge
	}

	out := e.state.apply(e.cfg, answer)

	switch {
	case out.Promoted:
		e.logger.Info("question mastered",
			"question_id", q.ID,
			"attempts_before_mastery", q.Stats.AttemptsBeforeMastery,
			"challenger", q.Stats.IsChallenger)
	case out.Remastered:
		e.logger.Info("question remastered", "question_id", q.ID)
	}

	e.record(ctx, AnswerRecord{
		RunID:      e.runID,
		QuestionID: q.ID,
		Mode:       mode,
		Answer:     answer,
		Correct:    out.Correct,
		Streak:     out.Streak,
		Mastered:   out.Mastered,
		AnsweredAt: e.now(),
	})
	e.save(ctx)
	return out, nil
}

func (e *Engine) record(ctx context.Context, rec AnswerRecord) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.RecordAnswer(ctx, rec); err != nil {
		e.logger.Warn("failed to record answer", "question_id", rec.QuestionID, "error", err)
	}
}

func (e *Engine) now() time.Time {
	return e.clock().UTC()
}
