package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizmaster/internal/ui/theme"
)

// MultiChoice renders a question with lettered choices. It holds no input
// state of its own; the caller moves Selected and sets Chosen once an answer
// has been submitted.
type MultiChoice struct {
	Question string
	Choices  []string
	Selected int

	// Set after submission. Chosen is -1 while the question is open.
	Chosen  int
	Correct string
}

// NewMultiChoice creates an open multiple-choice question.
func NewMultiChoice(question string, choices []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Choices:  choices,
		Chosen:   -1,
	}
}

// Submitted reports whether an answer has been chosen.
func (m MultiChoice) Submitted() bool {
	return m.Chosen >= 0
}

// Label returns the letter shown beside choice i: A, B, ... Z, then
// AA, AB and so on.
func Label(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return Label(i/26-1) + Label(i%26)
}

// View renders the question and its choices.
func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(theme.Question.Render(m.Question))
	b.WriteString("\n\n")

	for i, choice := range m.Choices {
		prefix := "  "
		if i == m.Selected && !m.Submitted() {
			prefix = "▸ "
		}

		style := theme.Unselected
		mark := ""
		switch {
		case m.Submitted() && choice == m.Correct:
			style = theme.Correct
			mark = " ✓"
		case m.Submitted() && i == m.Chosen:
			style = theme.Incorrect
			mark = " ✗"
		case m.Submitted():
			style = theme.Dim
		case i == m.Selected:
			style = theme.Selected
		}

		line := fmt.Sprintf("%s%s) %s%s", prefix, Label(i), choice, mark)
		b.WriteString(style.Render(line))
		if i < len(m.Choices)-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().Render(b.String())
}
