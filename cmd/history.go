package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/bank"
	"github.com/abhisek/quizmaster/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded answers",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		question, _ := cmd.Flags().GetString("question")
		since, _ := cmd.Flags().GetDuration("since")
		ctx := cmd.Context()

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		var events []store.AnswerEvent
		if question == "" && since == 0 {
			events, err = e.store.EventRepo().LatestAnswers(ctx, limit)
		} else {
			opts := store.QueryOpts{Limit: limit}
			if since > 0 {
				opts.From = time.Now().Add(-since)
			}
			events, err = e.store.EventRepo().QueryAnswers(ctx, bank.QuestionID(question), opts)
		}
		if err != nil {
			return fmt.Errorf("query answers: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(out, "No answers recorded.")
			return nil
		}

		// Question text is best effort; the bank may have changed since.
		texts := make(map[bank.QuestionID]string)
		if qs, err := bank.Load(ctx, e.bankProvider()); err == nil {
			for _, q := range qs {
				texts[q.ID] = q.Text
			}
		} else {
			e.logger.Debug("question bank unavailable for history", "error", err)
		}

		fmt.Fprintf(out, "%-6s  %-19s  %-9s  %-2s  %-6s  %-20s  %s\n",
			"Seq", "Timestamp", "Mode", "OK", "Streak", "Answer", "Question")
		fmt.Fprintln(out, strings.Repeat("─", 100))

		for _, ev := range events {
			ok := "✓"
			if !ev.Correct {
				ok = "✗"
			}
			text := texts[ev.QuestionID]
			if text == "" {
				text = string(ev.QuestionID)
			}
			fmt.Fprintf(out, "%-6d  %-19s  %-9s  %-2s  %-6d  %-20s  %s\n",
				ev.Sequence,
				ev.Timestamp.Local().Format(time.DateTime),
				ev.Mode,
				ok,
				ev.Streak,
				truncate(ev.Answer, 20),
				truncate(text, 40),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of answers to show")
	historyCmd.Flags().StringP("question", "q", "", "Only show answers to this question id")
	historyCmd.Flags().Duration("since", 0, "Only show answers newer than this (e.g. 24h)")
}

// truncate shortens s to at most max runes.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
