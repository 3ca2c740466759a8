package play

import (
	"context"
	"io"

	tea "charm.land/bubbletea/v2"
)

// Run starts the full-screen player on the given terminal streams and
// blocks until the user quits.
func Run(ctx context.Context, sess Session, in io.Reader, out io.Writer, opts ...Option) error {
	p := tea.NewProgram(New(ctx, sess, opts...),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
