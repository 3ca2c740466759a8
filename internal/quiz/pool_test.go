package quiz

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmaster/internal/bank"
)

func TestNext_DrawsFromActiveWithShuffledChoices(t *testing.T) {
	e := newEngine(t, makeBank(4), newMemKV())

	d, err := e.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, d)

	assert.Same(t, d.Question, e.State().Current)
	assert.ElementsMatch(t, d.Question.Choices, d.Choices)
	assert.Len(t, e.State().Active, 4, "drawing does not remove from the pool")
}

func TestNext_DoesNotAliasChoices(t *testing.T) {
	e := newEngine(t, makeBank(1), newMemKV())

	d, err := e.Next(context.Background())
	require.NoError(t, err)
	d.Choices[0] = "tampered"
	assert.Equal(t, []string{"right", "wrong", "also wrong"}, d.Question.Choices)
}

func TestNext_EmptyBankIsComplete(t *testing.T) {
	p := makeBank(0)
	require.JSONEq(t, `{"questions":[]}`, string(p.raw))

	e := newEngine(t, p, newMemKV())
	assert.Equal(t, 0, e.Stats().TotalQuestions)

	d, err := e.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestNext_NilWhenEverythingMastered(t *testing.T) {
	e := newEngine(t, makeBank(2), newMemKV())

	for len(e.State().Active) > 0 {
		answer(t, e, true)
	}
	d, err := e.Next(context.Background())
	require.NoError(t, err)
	assert.Nil(t, d)
	assert.Equal(t, 2, e.Stats().MasteredQuestions)
}

func TestNext_SameSeedSameDraws(t *testing.T) {
	draw := func() []bank.QuestionID {
		e := newEngine(t, makeBank(6), newMemKV(), WithRand(rand.New(rand.NewPCG(5, 5))))
		var got []bank.QuestionID
		for range 10 {
			d, err := e.Next(context.Background())
			require.NoError(t, err)
			got = append(got, d.Question.ID)
		}
		return got
	}
	assert.Equal(t, draw(), draw())
}

func TestNext_DrawsEveryActiveQuestion(t *testing.T) {
	e := newEngine(t, makeBank(3), newMemKV())

	seen := make(map[bank.QuestionID]bool)
	for range 100 {
		d, err := e.Next(context.Background())
		require.NoError(t, err)
		seen[d.Question.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestPools_InvariantsHoldUnderRandomPlay(t *testing.T) {
	r := rand.New(rand.NewPCG(77, 3))
	ctx := context.Background()

	for trial := range 20 {
		e := newEngine(t, makeBank(5), newMemKV(), WithRand(rand.New(rand.NewPCG(uint64(trial), 8))))
		for range 150 {
			switch r.IntN(20) {
			case 0:
				require.NoError(t, e.StartChallenge(ctx))
			case 1:
				require.NoError(t, e.ExitChallenge(ctx))
			}

			d, err := e.Next(ctx)
			require.NoError(t, err)
			if d != nil {
				a := d.Question.CorrectAnswer
				if r.IntN(3) == 0 {
					a = "wrong"
				}
				_, err := e.Submit(ctx, a)
				require.NoError(t, err)
			}
			checkInvariants(t, e.State())
			for _, q := range e.State().Challenged {
				require.True(t, q.Stats.IsChallenger)
				require.True(t, q.Stats.IsMastered)
			}
		}
	}
}
