package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/quiz"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the session so every question is unmastered",
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
		if err := eng.Reset(ctx); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Session reset: %d questions active.\n", eng.Stats().TotalQuestions)
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Erase saved session progress",
	Long: `Erase the saved session record. Answer history is kept; the next
session starts fresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		codec := quiz.NewCodec(e.store.KVRepo(), e.cfg.Quiz.SessionKey, e.logger)
		if err := codec.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved progress cleared.")
		return nil
	},
}
