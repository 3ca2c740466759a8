package quiz

import (
	"context"

	"github.com/abhisek/quizmaster/internal/bank"
	"github.com/abhisek/quizmaster/internal/shuffle"
)

// Draw is a question selected for presentation.
type Draw struct {
	Question *bank.Question

	// Choices is a freshly shuffled copy of Question.Choices.
	Choices []string
}

// Next selects the next question to present and makes it current.
//
// In normal mode it draws from the active pool; in challenge mode from the
// challengers not yet remastered. A nil Draw means there is nothing left:
// the session is complete in normal mode, the challenge is complete in
// challenge mode. Drawing never removes a question from its pool.
func (e *Engine) Next(ctx context.Context) (*Draw, error) {
	if err := e.requireLoaded(); err != nil {
		return nil, err
	}

	eligible := e.state.eligible()
	if len(eligible) == 0 {
		return nil, nil
	}

	q := eligible[shuffle.Pick(e.rng, len(eligible))]
	e.state.Current = q
	e.logger.Debug("drew question",
		"question_id", q.ID,
		"eligible", len(eligible),
		"challenge_mode", e.state.InChallengeMode)

	e.save(ctx)
	return &Draw{
		Question: q,
		Choices:  shuffle.Choices(e.rng, q.Choices),
	}, nil
}
