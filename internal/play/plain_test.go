package play

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmaster/internal/quiz"
)

func runPlain(t *testing.T, sess Session, input string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, RunPlain(context.Background(), sess, strings.NewReader(input), &out))
	return out.String()
}

func TestRunPlainFullSession(t *testing.T) {
	sess := newSession(t, 1, newMemKV())

	// miss, master, start challenge, remaster, exit challenge, quit
	out := runPlain(t, sess, "2\n1\nc\n1\nx\nq\n")

	assert.Contains(t, out, "Question 0?")
	assert.Contains(t, out, "  1) right")
	assert.Contains(t, out, "Incorrect! The answer was: right")
	assert.Contains(t, out, "Correct!\nCurrent streak: 1\nQuestion mastered!")
	assert.Contains(t, out, "Challenging Questions: 1")
	assert.Contains(t, out, "[c] practice challenging questions")
	assert.Contains(t, out, "Challenge Progress: 0/1")
	assert.Contains(t, out, "Question re-mastered!")
	assert.Contains(t, out, "Challenge Mode Completed!")

	st := sess.Stats()
	assert.False(t, st.InChallengeMode)
	assert.Equal(t, 1, st.MasteredQuestions)
}

func TestRunPlainRejectsBadInput(t *testing.T) {
	sess := newSession(t, 1, newMemKV())
	out := runPlain(t, sess, "0\nfoo\n4\n1\nq\n")

	assert.Equal(t, 3, strings.Count(out, "Please enter a number between 1 and 3."))
	assert.Equal(t, 1, sess.Stats().MasteredQuestions)
}

func TestRunPlainEndOfInput(t *testing.T) {
	sess := newSession(t, 2, newMemKV())
	out := runPlain(t, sess, "1\n")
	assert.Contains(t, out, "Correct!")
	assert.Equal(t, 1, sess.Stats().MasteredQuestions)
}

func TestRunPlainSummaryMenu(t *testing.T) {
	sess := newSession(t, 1, newMemKV())
	out := runPlain(t, sess, "1\nc\nz\nr\nq\n")

	assert.NotContains(t, out, "[c] practice challenging questions")
	assert.Contains(t, out, `Unknown choice "c".`)
	assert.Contains(t, out, `Unknown choice "z".`)
	assert.False(t, sess.Stats().InChallengeMode)
	assert.Equal(t, 0, sess.Stats().MasteredQuestions, "reset should clear mastery")
}

func TestRunPlainClearSavedData(t *testing.T) {
	kv := newMemKV()
	first := newSession(t, 2, kv)
	_, err := first.Next(context.Background())
	require.NoError(t, err)

	sess := newSession(t, 2, kv)
	require.True(t, sess.Restored())

	out := runPlain(t, sess, "d\nn\nd\ny\nd\nq\n")
	assert.Contains(t, out, "Restored saved session.")
	assert.Contains(t, out, "Kept saved progress.")
	assert.Contains(t, out, "Saved progress cleared.")
	assert.Contains(t, out, "Please enter a number between 1 and 3.", "d is no longer a command once cleared")
	assert.True(t, kv.has(quiz.DefaultSessionKey), "the reset after clearing saves a fresh session")
}

func TestRunPlainHonoursContext(t *testing.T) {
	sess := newSession(t, 1, newMemKV())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RunPlain(ctx, sess, strings.NewReader("1\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}
