package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizmaster/internal/quiz"
	"github.com/abhisek/quizmaster/internal/ui/components"
	"github.com/abhisek/quizmaster/internal/ui/layout"
	"github.com/abhisek/quizmaster/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m Model) render() string {
	st := m.sess.Stats()
	header := layout.RenderHeader(layout.Status{
		Title:     m.title(),
		Mastered:  st.MasteredQuestions,
		Total:     st.TotalQuestions,
		Challenge: st.InChallengeMode,
	}, m.width)
	footer := layout.RenderFooter(m.help.View(m.keys), m.width)
	return layout.RenderFrame(header, m.content(st), footer, m.width, m.height)
}

func (m Model) title() string {
	switch m.phase {
	case phaseSummary:
		return "Session Summary"
	case phaseChallengeDone:
		return "Challenge Complete"
	case phaseConfirmClear:
		return "Clear Saved Data"
	}
	return "Question"
}

func (m Model) content(st quiz.SessionStats) string {
	barWidth := m.width - 8
	var body string

	switch m.phase {
	case phaseQuestion:
		body = progressView(st, barWidth) + "\n\n" + m.choice.View()

	case phaseFeedback:
		body = progressView(st, barWidth) + "\n\n" + m.choice.View() + "\n\n" + feedbackView(m.result)

	case phaseSummary:
		body = theme.Card.Render(strings.Join(summaryLines(st), "\n"))

	case phaseChallengeDone:
		body = theme.Card.Render(strings.Join(challengeDoneLines(), "\n"))

	case phaseConfirmClear:
		body = theme.Card.Render(
			theme.Incorrect.Render("Are you sure you want to clear all saved progress?") +
				"\n" + theme.Dim.Render("This cannot be undone."))
	}

	if m.notice != "" {
		body = theme.Correct.Render(m.notice) + "\n\n" + body
	}
	return body
}

// progressText returns the progress caption and the bar fill fraction.
func progressText(st quiz.SessionStats) (string, float64) {
	if st.InChallengeMode && st.Challenge != nil {
		c := st.Challenge
		return fmt.Sprintf("Challenge Progress: %d/%d   Remaining: %d", c.Completed, c.Total, c.Remaining),
			c.Percent()
	}
	frac := 0.0
	if st.TotalQuestions > 0 {
		frac = float64(st.MasteredQuestions) / float64(st.TotalQuestions)
	}
	return fmt.Sprintf("Question Progress: %d/%d   Mastered: %d%%",
			st.MasteredQuestions, st.TotalQuestions, st.MasteryPercent()),
		frac
}

func progressView(st quiz.SessionStats, width int) string {
	caption, frac := progressText(st)
	bar := components.NewProgressBar("", frac, false, width)
	bar.Graded = true
	return theme.Dim.Render(caption) + "\n" + bar.View()
}

// feedbackText returns the verdict and streak lines for an outcome.
func feedbackText(out quiz.Outcome) []string {
	lines := []string{"Incorrect!"}
	if out.Correct {
		lines[0] = "Correct!"
	}
	lines = append(lines, fmt.Sprintf("Current streak: %d", out.Streak))
	switch {
	case out.Promoted:
		lines = append(lines, "Question mastered!")
	case out.Remastered:
		lines = append(lines, "Question re-mastered!")
	}
	return lines
}

func feedbackView(out quiz.Outcome) string {
	lines := feedbackText(out)
	verdict := theme.Incorrect
	if out.Correct {
		verdict = theme.Correct
	}
	s := verdict.Render(lines[0])
	for _, l := range lines[1:] {
		s += "\n" + theme.Body.Render(l)
	}
	return s
}

func summaryLines(st quiz.SessionStats) []string {
	return []string{
		fmt.Sprintf("Total Questions: %d", st.TotalQuestions),
		fmt.Sprintf("Questions Mastered: %d", st.MasteredQuestions),
		fmt.Sprintf("Mastery Rate: %d%%", st.MasteryPercent()),
		fmt.Sprintf("Challenging Questions: %d", st.ChallengedQuestions),
	}
}

func challengeDoneLines() []string {
	return []string{
		"Challenge Mode Completed!",
		"You have successfully re-mastered all challenging questions.",
	}
}
