package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmaster/internal/bank"
)

// memKV is an in-memory KV.
type memKV struct {
	mu      sync.Mutex
	data    map[string][]byte
	puts    int
	failPut error
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.failPut != nil {
		return m.failPut
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) record(t *testing.T, key string) *Record {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	require.True(t, ok, "no record stored under %q", key)
	var rec Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	return &rec
}

type bankProvider struct {
	raw []byte
	err error
}

func (p bankProvider) Fetch(context.Context) ([]byte, error) { return p.raw, p.err }
func (p bankProvider) Source() string                        { return "test bank" }

// makeBank builds a bank of n questions whose correct answer is "right".
func makeBank(n int) bankProvider {
	doc := bank.Document{Questions: make([]bank.RawQuestion, 0, n)}
	for i := range n {
		doc.Questions = append(doc.Questions, bank.RawQuestion{
			Text:          fmt.Sprintf("Question %d?", i),
			Choices:       []string{"right", "wrong", "also wrong"},
			CorrectAnswer: "right",
		})
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return bankProvider{raw: raw}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T, p bank.Provider, kv KV, opts ...Option) *Engine {
	t.Helper()
	base := []Option{
		WithRand(rand.New(rand.NewPCG(42, 1))),
		WithLogger(quietLogger()),
	}
	e := New(p, NewCodec(kv, "", quietLogger()), append(base, opts...)...)
	require.NoError(t, e.Load(context.Background()))
	return e
}

// answer draws the next question and answers it.
func answer(t *testing.T, e *Engine, correct bool) Outcome {
	t.Helper()
	ctx := context.Background()
	d, err := e.Next(ctx)
	require.NoError(t, err)
	require.NotNil(t, d, "expected a question to draw")

	a := d.Question.CorrectAnswer
	if !correct {
		a = "wrong"
	}
	out, err := e.Submit(ctx, a)
	require.NoError(t, err)
	return out
}

func poolIDs(qs []*bank.Question) []bank.QuestionID {
	return ids(qs)
}

// checkInvariants asserts the pool membership invariants.
func checkInvariants(t *testing.T, s *State) {
	t.Helper()
	active := make(map[bank.QuestionID]bool)
	for _, q := range s.Active {
		active[q.ID] = true
	}
	mastered := make(map[bank.QuestionID]bool)
	for _, q := range s.Mastered {
		require.False(t, active[q.ID], "%s is both active and mastered", q.ID)
		mastered[q.ID] = true
	}
	for _, q := range s.Challenged {
		require.True(t, mastered[q.ID], "%s is challenged but not mastered", q.ID)
	}
	require.Equal(t, len(s.Questions), len(s.Active)+len(s.Mastered), "every question belongs to exactly one of active/mastered")
}

var errBoom = errors.New("boom")
