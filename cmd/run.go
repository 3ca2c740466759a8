package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizmaster/internal/bank"
	"github.com/abhisek/quizmaster/internal/config"
	"github.com/abhisek/quizmaster/internal/logger"
	"github.com/abhisek/quizmaster/internal/quiz"
	"github.com/abhisek/quizmaster/internal/store"
)

// env is what every command needs: validated config, a logger and the open
// store.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *store.Store
}

// openEnv loads configuration, sets up logging and opens the store. Callers
// must Close the returned env.
func openEnv(cmd *cobra.Command) (*env, error) {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("bank"); p != "" {
		cfg.Quiz.BankPath = p
		cfg.Quiz.BankURL = ""
	}

	log := logger.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	dbPath, err := resolveDBPath(cmd, cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	log.Debug("opened store", "path", dbPath)

	return &env{cfg: cfg, logger: log, store: st}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

// bankProvider picks the configured bank source, falling back to the bank
// compiled into the binary.
func (e *env) bankProvider() bank.Provider {
	switch {
	case e.cfg.Quiz.BankPath != "":
		return bank.FileProvider{Path: e.cfg.Quiz.BankPath}
	case e.cfg.Quiz.BankURL != "":
		return bank.NewHTTPProvider(e.cfg.Quiz.BankURL, e.cfg.Quiz.BankTimeout)
	}
	return bank.Embedded()
}

// engine builds the quiz engine over the store and loads the session.
func (e *env) engine(ctx context.Context) (*quiz.Engine, error) {
	codec := quiz.NewCodec(e.store.KVRepo(), e.cfg.Quiz.SessionKey, e.logger)
	eng := quiz.New(e.bankProvider(), codec,
		quiz.WithConfig(quiz.Config{
			TargetStreak:       e.cfg.Quiz.TargetStreak,
			ChallengeThreshold: e.cfg.Quiz.ChallengeThreshold,
		}),
		quiz.WithLogger(e.logger),
		quiz.WithRecorder(e.store.EventRepo()),
	)
	if err := eng.Load(ctx); err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return eng, nil
}
