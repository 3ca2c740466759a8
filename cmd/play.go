package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/play"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start or resume a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		challenge, _ := cmd.Flags().GetBool("challenge")
		plain, _ := cmd.Flags().GetBool("plain")
		return runPlay(cmd, challenge, plain)
	},
}

func init() {
	playCmd.Flags().Bool("challenge", false, "Start in challenge mode when there are challenging questions")
	playCmd.Flags().Bool("plain", false, "Use a line-based prompt instead of the full-screen interface")
}

// runPlay loads the session and hands it to the full-screen player, or to
// the line-based one when asked to or when not attached to a terminal.
func runPlay(cmd *cobra.Command, challenge, plain bool) error {
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

	if challenge {
		st := eng.Stats()
		switch {
		case st.InChallengeMode:
		case st.ChallengedQuestions == 0:
			fmt.Fprintln(cmd.ErrOrStderr(), "No challenging questions yet; starting a normal session.")
		default:
			if err := eng.StartChallenge(ctx); err != nil {
				return err
			}
		}
	}

	if plain || !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		return play.RunPlain(ctx, eng, cmd.InOrStdin(), cmd.OutOrStdout())
	}
	return play.Run(ctx, eng, os.Stdin, os.Stdout)
}
