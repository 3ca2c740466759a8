// Package play runs an interactive quiz session in the terminal, either as a
// full-screen Bubble Tea program or as a plain line-based loop.
package play

import (
	"context"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizmaster/internal/quiz"
	"github.com/abhisek/quizmaster/internal/ui/components"
)

// FeedbackDelay is how long answer feedback stays up before the next
// question is drawn.
const FeedbackDelay = 5 * time.Second

// Session is the slice of *quiz.Engine the player drives.
type Session interface {
	Next(ctx context.Context) (*quiz.Draw, error)
	Submit(ctx context.Context, answer string) (quiz.Outcome, error)
	StartChallenge(ctx context.Context) error
	ExitChallenge(ctx context.Context) error
	Reset(ctx context.Context) error
	ClearSaved(ctx context.Context) error
	Stats() quiz.SessionStats
	Restored() bool
}

var _ Session = (*quiz.Engine)(nil)

type phase int

const (
	phaseQuestion phase = iota
	phaseFeedback
	phaseSummary
	phaseChallengeDone
	phaseConfirmClear
)

// feedbackDoneMsg ends the feedback period it was scheduled for.
type feedbackDoneMsg struct {
	seq int
}

// Model is the root Bubble Tea model.
type Model struct {
	ctx  context.Context
	sess Session

	keys keyMap
	help help.Model

	width  int
	height int

	phase  phase
	back   phase // where a cancelled clear returns to
	draw   *quiz.Draw
	choice components.MultiChoice
	result quiz.Outcome

	feedbackDelay time.Duration
	feedbackSeq   int

	clearable bool
	notice    string
	err       error
}

// Option configures a Model.
type Option func(*Model)

// WithFeedbackDelay overrides FeedbackDelay. Zero waits for a key press.
func WithFeedbackDelay(d time.Duration) Option {
	return func(m *Model) { m.feedbackDelay = d }
}

// New creates the model and draws the first question.
func New(ctx context.Context, sess Session, opts ...Option) Model {
	m := Model{
		ctx:           ctx,
		sess:          sess,
		keys:          newKeyMap(),
		help:          help.New(),
		feedbackDelay: FeedbackDelay,
		clearable:     sess.Restored(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.advance()
	return m
}

// Err returns the engine error that stopped the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
		return m, nil

	case feedbackDoneMsg:
		if m.phase == phaseFeedback && msg.seq == m.feedbackSeq {
			m.advance()
		}
		return m, m.quitOnError()

	case tea.KeyPressMsg:
		if key.Matches(msg, m.keys.ForceQuit, m.keys.Quit) {
			return m, tea.Quit
		}
		cmd := m.handleKey(msg)
		if m.err != nil {
			return m, tea.Quit
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Clear) {
		m.back = m.phase
		m.setPhase(phaseConfirmClear)
		return nil
	}

	switch m.phase {
	case phaseQuestion:
		n := len(m.choice.Choices)
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.choice.Selected > 0 {
				m.choice.Selected--
			}
		case key.Matches(msg, m.keys.Down):
			if m.choice.Selected < n-1 {
				m.choice.Selected++
			}
		case key.Matches(msg, m.keys.Pick):
			i := int(msg.Code - '1')
			if i >= 0 && i < n {
				m.choice.Selected = i
				return m.submit()
			}
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		}

	case phaseFeedback:
		if key.Matches(msg, m.keys.Continue) {
			m.advance()
		}

	case phaseSummary:
		switch {
		case key.Matches(msg, m.keys.Challenge):
			if m.fail(m.sess.StartChallenge(m.ctx)) {
				return nil
			}
			m.advance()
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		}

	case phaseChallengeDone:
		switch {
		case key.Matches(msg, m.keys.Exit):
			if m.fail(m.sess.ExitChallenge(m.ctx)) {
				return nil
			}
			if m.sess.Stats().RemainingQuestions > 0 {
				m.advance()
			} else {
				m.setPhase(phaseSummary)
			}
		case key.Matches(msg, m.keys.Reset):
			m.reset()
		}

	case phaseConfirmClear:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			if m.fail(m.sess.ClearSaved(m.ctx)) {
				return nil
			}
			m.clearable = false
			m.notice = "Saved progress cleared."
			m.reset()
		case key.Matches(msg, m.keys.Cancel):
			m.setPhase(m.back)
		}
	}
	return nil
}

func (m *Model) submit() tea.Cmd {
	out, err := m.sess.Submit(m.ctx, m.choice.Choices[m.choice.Selected])
	if m.fail(err) {
		return nil
	}
	m.result = out
	m.choice.Chosen = m.choice.Selected
	m.choice.Correct = m.draw.Question.CorrectAnswer
	m.setPhase(phaseFeedback)

	if m.feedbackDelay <= 0 {
		return nil
	}
	m.feedbackSeq++
	seq := m.feedbackSeq
	return tea.Tick(m.feedbackDelay, func(time.Time) tea.Msg {
		return feedbackDoneMsg{seq: seq}
	})
}

func (m *Model) reset() {
	if m.fail(m.sess.Reset(m.ctx)) {
		return
	}
	m.advance()
}

// advance draws the next question, or moves to the matching end screen when
// the pool is exhausted.
func (m *Model) advance() {
	d, err := m.sess.Next(m.ctx)
	if m.fail(err) {
		return
	}
	m.draw = d
	if d == nil {
		if m.sess.Stats().InChallengeMode {
			m.setPhase(phaseChallengeDone)
		} else {
			m.setPhase(phaseSummary)
		}
		return
	}
	m.choice = components.NewMultiChoice(d.Question.Text, d.Choices)
	m.setPhase(phaseQuestion)
}

func (m *Model) setPhase(p phase) {
	if p != phaseConfirmClear && m.phase != phaseConfirmClear {
		m.notice = ""
	}
	m.phase = p
	m.keys.forPhase(p, m.sess.Stats().ChallengedQuestions > 0, m.clearable)
}

func (m *Model) fail(err error) bool {
	if err == nil {
		return false
	}
	m.err = err
	return true
}

func (m Model) quitOnError() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return nil
}
