package play

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abhisek/quizmaster/internal/quiz"
)

// RunPlain plays the session as a line-based dialogue: questions and menus
// are written to w, one answer per line is read from r. It returns nil on
// quit or end of input.
func RunPlain(ctx context.Context, sess Session, r io.Reader, w io.Writer) error {
	p := &plain{ctx: ctx, sess: sess, in: bufio.NewScanner(r), out: w}
	return p.run()
}

type plain struct {
	ctx  context.Context
	sess Session
	in   *bufio.Scanner
	out  io.Writer
}

func (p *plain) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// readLine returns the next trimmed input line; ok is false at end of
// input.
func (p *plain) readLine() (string, bool) {
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func (p *plain) run() error {
	clearable := p.sess.Restored()
	if clearable {
		p.printf("Restored saved session. Enter \"d\" at any prompt to clear saved data.\n")
	}

	for {
		if err := p.ctx.Err(); err != nil {
			return err
		}

		d, err := p.sess.Next(p.ctx)
		if err != nil {
			return err
		}

		var line string
		var ok bool
		if d == nil {
			line, ok = p.endMenu()
		} else {
			line, ok = p.ask(d, clearable)
		}
		if !ok || line == "q" {
			return nil
		}

		switch {
		case line == "d" && clearable:
			done, err := p.confirmClear()
			if err != nil {
				return err
			}
			if done {
				clearable = false
			}
		case d == nil:
			if err := p.menuAction(line); err != nil {
				return err
			}
		default:
			if err := p.answer(d, line); err != nil {
				return err
			}
		}
	}
}

// ask shows a question and reads lines until one is a valid choice number
// or a command.
func (p *plain) ask(d *quiz.Draw, clearable bool) (string, bool) {
	caption, _ := progressText(p.sess.Stats())
	p.printf("\n%s\n\n%s\n", caption, d.Question.Text)
	for i, c := range d.Choices {
		p.printf("  %d) %s\n", i+1, c)
	}
	for {
		p.printf("> ")
		line, ok := p.readLine()
		if !ok {
			return "", false
		}
		if line == "q" || (line == "d" && clearable) {
			return line, true
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(d.Choices) {
			return line, true
		}
		p.printf("Please enter a number between 1 and %d.\n", len(d.Choices))
	}
}

func (p *plain) answer(d *quiz.Draw, line string) error {
	n, _ := strconv.Atoi(line)
	out, err := p.sess.Submit(p.ctx, d.Choices[n-1])
	if err != nil {
		return err
	}
	lines := feedbackText(out)
	if !out.Correct {
		lines[0] += " The answer was: " + d.Question.CorrectAnswer
	}
	p.printf("%s\n", strings.Join(lines, "\n"))
	return nil
}

// endMenu shows the summary or challenge-complete screen and reads the
// chosen action.
func (p *plain) endMenu() (string, bool) {
	st := p.sess.Stats()
	if st.InChallengeMode {
		p.printf("\n%s\n", strings.Join(challengeDoneLines(), "\n"))
		p.printf("[x] exit challenge mode  [r] start new session  [q] quit\n")
	} else {
		p.printf("\nSession Summary\n%s\n", strings.Join(summaryLines(st), "\n"))
		if st.ChallengedQuestions > 0 {
			p.printf("[c] practice challenging questions  ")
		}
		p.printf("[r] reset session  [q] quit\n")
	}
	p.printf("> ")
	return p.readLine()
}

func (p *plain) menuAction(line string) error {
	st := p.sess.Stats()
	switch {
	case line == "r":
		return p.sess.Reset(p.ctx)
	case line == "c" && !st.InChallengeMode && st.ChallengedQuestions > 0:
		return p.sess.StartChallenge(p.ctx)
	case line == "x" && st.InChallengeMode:
		return p.sess.ExitChallenge(p.ctx)
	}
	p.printf("Unknown choice %q.\n", line)
	return nil
}

// confirmClear asks before erasing saved progress; on yes it also resets
// the session.
func (p *plain) confirmClear() (bool, error) {
	p.printf("Are you sure you want to clear all saved progress? This cannot be undone. [y/N] ")
	line, ok := p.readLine()
	if !ok || !strings.EqualFold(line, "y") {
		p.printf("Kept saved progress.\n")
		return false, nil
	}
	if err := p.sess.ClearSaved(p.ctx); err != nil {
		return false, err
	}
	if err := p.sess.Reset(p.ctx); err != nil {
		return false, err
	}
	p.printf("Saved progress cleared.\n")
	return true, nil
}
