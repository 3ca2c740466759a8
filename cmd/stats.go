package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/store"
	"github.com/abhisek/quizmaster/internal/ui/components"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show session statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		eng, err := e.engine(ctx)
		if err != nil {
			return err
		}
		st := eng.Stats()
		out := cmd.OutOrStdout()

		frac := 0.0
		if st.TotalQuestions > 0 {
			frac = float64(st.MasteredQuestions) / float64(st.TotalQuestions)
		}
		bar := components.NewProgressBar("Mastery", frac, true, 50)
		bar.Graded = true

		fmt.Fprintln(out, bar.View())
		fmt.Fprintf(out, "Total Questions:       %d\n", st.TotalQuestions)
		fmt.Fprintf(out, "Questions Mastered:    %d\n", st.MasteredQuestions)
		fmt.Fprintf(out, "Questions Remaining:   %d\n", st.RemainingQuestions)
		fmt.Fprintf(out, "Mastery Rate:          %d%%\n", st.MasteryPercent())
		fmt.Fprintf(out, "Challenging Questions: %d\n", st.ChallengedQuestions)

		if c := st.Challenge; c != nil {
			fmt.Fprintf(out, "Challenge Mode:        %d/%d re-mastered, %d remaining\n",
				c.Completed, c.Total, c.Remaining)
		}

		saved, err := e.store.KVRepo().UpdatedAt(ctx, e.cfg.Quiz.SessionKey)
		switch {
		case errors.Is(err, store.ErrNotFound):
			fmt.Fprintln(out, "Last Saved:            never")
		case err != nil:
			return fmt.Errorf("read save time: %w", err)
		default:
			fmt.Fprintf(out, "Last Saved:            %s\n", saved.Local().Format(time.DateTime))
		}
		return nil
	},
}
