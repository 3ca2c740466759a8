package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizmaster",
	Short: "Adaptive multiple-choice quiz trainer",
	Long: `Quizmaster drills a bank of multiple-choice questions until each one is
answered correctly several times in a row, then offers a challenge round
over the questions that took the most attempts to master.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd, false, false)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZMASTER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("bank", "", "Path to a question bank file (overrides quiz.bank_path)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then store.path from config, then QUIZMASTER_DB env var, then the default
// XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
