package play

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizmaster/internal/bank"
	"github.com/abhisek/quizmaster/internal/quiz"
)

type memKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memKV) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memKV) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

type bankProvider []byte

func (p bankProvider) Fetch(context.Context) ([]byte, error) { return p, nil }
func (p bankProvider) Source() string                        { return "test bank" }

// testBank has n questions whose first choice, "right", is correct.
func testBank(n int) bankProvider {
	doc := bank.Document{Questions: make([]bank.RawQuestion, 0, n)}
	for i := range n {
		doc.Questions = append(doc.Questions, bank.RawQuestion{
			Text:          fmt.Sprintf("Question %d?", i),
			Choices:       []string{"right", "wrong", "other"},
			CorrectAnswer: "right",
		})
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		panic(err)
	}
	return raw
}

// ordered presents choices in bank order so tests know where the correct
// one is.
type ordered struct {
	*quiz.Engine
}

func (o ordered) Next(ctx context.Context) (*quiz.Draw, error) {
	d, err := o.Engine.Next(ctx)
	if d != nil {
		d.Choices = append([]string(nil), d.Question.Choices...)
	}
	return d, err
}

// newSession builds a loaded engine where one correct answer masters a
// question and a single miss beforehand makes it a challenger.
func newSession(t *testing.T, questions int, kv quiz.KV) ordered {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := quiz.New(testBank(questions), quiz.NewCodec(kv, "", logger),
		quiz.WithConfig(quiz.Config{TargetStreak: 1, ChallengeThreshold: 2}),
		quiz.WithRand(rand.New(rand.NewPCG(7, 7))),
		quiz.WithLogger(logger),
	)
	require.NoError(t, e.Load(context.Background()))
	return ordered{e}
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// send feeds msg to m and returns the updated model.
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func sized(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}
