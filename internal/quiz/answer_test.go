package quiz

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmaster/internal/bank"
)

func TestSubmit_WithoutDraw(t *testing.T) {
	e := newEngine(t, makeBank(2), newMemKV())

	_, err := e.Submit(context.Background(), "right")
	assert.ErrorIs(t, err, ErrNoCurrentQuestion)
}

func TestSubmit_BeforeLoad(t *testing.T) {
	e := New(makeBank(1), NewCodec(newMemKV(), "", quietLogger()), WithLogger(quietLogger()))

	_, err := e.Submit(context.Background(), "right")
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, err = e.Next(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestScenario_SlowMasteryBecomesChallenger(t *testing.T) {
	e := newEngine(t, makeBank(1), newMemKV())

	for range 4 {
		out := answer(t, e, false)
		assert.False(t, out.Correct)
		assert.Equal(t, 0, out.Streak)
	}
	answer(t, e, true)
	answer(t, e, true)
	out := answer(t, e, true)

	assert.True(t, out.Correct)
	assert.True(t, out.Mastered)
	assert.True(t, out.Promoted)
	assert.Equal(t, 7, out.Attempts)

	s := e.State()
	q := s.Questions[0]
	assert.True(t, q.Stats.IsMastered)
	assert.True(t, q.Stats.IsChallenger)
	assert.Equal(t, 7, q.Stats.AttemptsBeforeMastery)
	assert.Equal(t, []bank.QuestionID{"question-0"}, poolIDs(s.Mastered))
	assert.Equal(t, []bank.QuestionID{"question-0"}, poolIDs(s.Challenged))
	assert.Empty(t, s.Active)

	ctx := context.Background()
	require.NoError(t, e.StartChallenge(ctx))
	assert.False(t, e.ChallengeCompleted())

	answer(t, e, true)
	answer(t, e, true)
	out = answer(t, e, true)
	assert.Equal(t, 3, out.Streak)
	assert.True(t, out.Remastered)

	assert.True(t, s.Progress["question-0"].Remastered)
	assert.True(t, e.ChallengeCompleted())
}

func TestScenario_QuickMasteryIsNotChallenger(t *testing.T) {
	e := newEngine(t, makeBank(1), newMemKV())

	answer(t, e, true)
	answer(t, e, true)
	out := answer(t, e, true)

	assert.Equal(t, 3, out.Attempts)
	assert.True(t, out.Mastered)

	s := e.State()
	assert.Equal(t, []bank.QuestionID{"question-0"}, poolIDs(s.Mastered))
	assert.Empty(t, s.Challenged)
	assert.False(t, s.Questions[0].Stats.IsChallenger)
}

func TestSubmit_IncorrectResetsStreak(t *testing.T) {
	e := newEngine(t, makeBank(1), newMemKV())

	answer(t, e, true)
	out := answer(t, e, true)
	assert.Equal(t, 2, out.Streak)

	out = answer(t, e, false)
	assert.Equal(t, 0, out.Streak)
	assert.False(t, out.Mastered)

	answer(t, e, true)
	out = answer(t, e, true)
	assert.False(t, out.Mastered, "two correct after a miss is not enough")
	out = answer(t, e, true)
	assert.True(t, out.Mastered)

	st := e.State().Questions[0].Stats
	assert.Equal(t, 6, st.TotalAttempts)
	assert.Equal(t, 5, st.CorrectAttempts)
	assert.Equal(t, 6, st.AttemptsBeforeMastery)
	assert.True(t, st.IsChallenger, "six attempts is at least the threshold of five")
}

func TestSubmit_ChallengeThresholdBoundary(t *testing.T) {
	// One miss then three correct: four attempts, one short of the threshold.
	e := newEngine(t, makeBank(1), newMemKV())
	answer(t, e, false)
	answer(t, e, true)
	answer(t, e, true)
	out := answer(t, e, true)
	assert.Equal(t, 4, out.Attempts)
	assert.False(t, e.State().Questions[0].Stats.IsChallenger)

	// Two misses then three correct: exactly five.
	e = newEngine(t, makeBank(1), newMemKV())
	answer(t, e, false)
	answer(t, e, false)
	answer(t, e, true)
	answer(t, e, true)
	out = answer(t, e, true)
	assert.Equal(t, 5, out.Attempts)
	assert.True(t, e.State().Questions[0].Stats.IsChallenger)
}

func TestSubmit_AttemptsFreezeAtMastery(t *testing.T) {
	e := newEngine(t, makeBank(1), newMemKV())
	ctx := context.Background()

	for range 5 {
		answer(t, e, false)
	}
	for range 3 {
		answer(t, e, true)
	}
	q := e.State().Questions[0]
	require.True(t, q.Stats.IsChallenger)
	require.Equal(t, 8, q.Stats.AttemptsBeforeMastery)

	require.NoError(t, e.StartChallenge(ctx))
	answer(t, e, false)
	out := answer(t, e, true)

	assert.Equal(t, 8, out.Attempts)
	assert.Equal(t, 8, q.Stats.AttemptsBeforeMastery)
	assert.Equal(t, 10, q.Stats.TotalAttempts)
	assert.Equal(t, 4, q.Stats.CorrectAttempts)
}

func TestSubmit_ChallengeAnswersLeaveQuestionStreak(t *testing.T) {
	e := newEngine(t, makeBank(1), newMemKV())
	ctx := context.Background()

	for range 5 {
		answer(t, e, false)
	}
	for range 3 {
		answer(t, e, true)
	}
	require.NoError(t, e.StartChallenge(ctx))
	q := e.State().Questions[0]
	assert.Equal(t, 0, q.Stats.CurrentStreak, "start resets the challenger's streak")

	answer(t, e, true)
	out := answer(t, e, true)
	assert.Equal(t, 2, out.Streak)
	assert.Equal(t, 0, q.Stats.CurrentStreak)

	out = answer(t, e, false)
	assert.Equal(t, 0, out.Streak)
	assert.Equal(t, ProgressEntry{Streak: 0, Remastered: false}, e.State().Progress[q.ID])
	assert.True(t, q.Stats.IsMastered)
}

func TestSubmit_MasteryRequiresConsecutiveCorrect(t *testing.T) {
	// Random correct/incorrect sequences against one question: mastery must
	// happen exactly when the third consecutive correct answer arrives.
	r := rand.New(rand.NewPCG(9, 9))
	for trial := range 200 {
		e := newEngine(t, makeBank(1), newMemKV())
		run := 0
		for step := range 20 {
			correct := r.IntN(2) == 0
			out := answer(t, e, correct)
			if correct {
				run++
			} else {
				run = 0
			}
			if run == 3 {
				require.True(t, out.Promoted, "trial %d step %d", trial, step)
				break
			}
			require.False(t, out.Mastered, "trial %d step %d mastered early", trial, step)
		}
	}
}

func TestSubmit_PersistsEveryAnswer(t *testing.T) {
	kv := newMemKV()
	e := newEngine(t, makeBank(3), kv)

	before := kv.puts
	answer(t, e, false)
	assert.Equal(t, before+2, kv.puts, "one save for the draw, one for the answer")

	rec := kv.record(t, DefaultSessionKey)
	assert.Equal(t, e.State().Current.ID, rec.CurrentQuestionID)
	for _, qr := range rec.Questions {
		if qr.ID == e.State().Current.ID {
			assert.Equal(t, 1, qr.Stats.TotalAttempts)
		}
	}
}

type fakeRecorder struct {
	recs []AnswerRecord
	err  error
}

func (f *fakeRecorder) RecordAnswer(_ context.Context, rec AnswerRecord) error {
	f.recs = append(f.recs, rec)
	return f.err
}

func TestSubmit_RecordsAnswers(t *testing.T) {
	rec := &fakeRecorder{err: errBoom}
	e := newEngine(t, makeBank(1), newMemKV(), WithRecorder(rec))

	answer(t, e, true)
	out := answer(t, e, false)
	assert.False(t, out.Correct, "recorder failures do not affect the session")

	require.Len(t, rec.recs, 2)
	assert.Equal(t, e.RunID(), rec.recs[0].RunID)
	assert.Equal(t, bank.QuestionID("question-0"), rec.recs[0].QuestionID)
	assert.Equal(t, ModeNormal, rec.recs[0].Mode)
	assert.True(t, rec.recs[0].Correct)
	assert.Equal(t, "wrong", rec.recs[1].Answer)
	assert.False(t, rec.recs[1].AnsweredAt.IsZero())
}
