// Package quiz implements the adaptive quiz session engine: pool
// management, the mastery and challenge state machine, challenge mode, and
// the session persistence codec.
//
// An Engine is not safe for concurrent use. It owns exactly one session.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizmaster/internal/bank"
)

var (
	// ErrNoCurrentQuestion is returned by Submit before any question was drawn.
	ErrNoCurrentQuestion = errors.New("no current question")

	// ErrAlreadyLoaded is returned when Load is called a second time.
	ErrAlreadyLoaded = errors.New("question bank already loaded")

	// ErrNotLoaded is returned by operations that need a loaded bank.
	ErrNotLoaded = errors.New("question bank not loaded")
)

// Config holds the promotion thresholds.
type Config struct {
	// TargetStreak is the number of consecutive correct answers needed to
	// master a question, or to remaster it in challenge mode.
	TargetStreak int

	// ChallengeThreshold is the minimum AttemptsBeforeMastery, at the moment
	// of mastery, that flags a question as a challenger.
	ChallengeThreshold int
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		TargetStreak:       3,
		ChallengeThreshold: 5,
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithConfig sets the promotion thresholds.
func WithConfig(cfg Config) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithRand sets the random source used for draws and shuffles.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRecorder sets where answer records are sent.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithClock overrides the time source for answer records.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.clock = now }
}

// Engine drives one quiz session.
type Engine struct {
	cfg      Config
	provider bank.Provider
	codec    *Codec
	rng      *rand.Rand
	logger   *slog.Logger
	recorder Recorder
	clock    func() time.Time
	runID    string

	state    *State
	restored bool
}

// New creates an Engine that loads its bank from provider and persists
// through codec. Call Load before anything else.
func New(provider bank.Provider, codec *Codec, opts ...Option) *Engine {
	e := &Engine{
		cfg:      DefaultConfig(),
		provider: provider,
		codec:    codec,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:   slog.Default(),
		clock:    time.Now,
		runID:    uuid.NewString(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches the question bank and restores the saved session if one
// exists, otherwise starts fresh with every question active. It may only
// be called once.
func (e *Engine) Load(ctx context.Context) error {
	if e.state != nil {
		return ErrAlreadyLoaded
	}

	questions, err := bank.Load(ctx, e.provider)
	if err != nil {
		return err
	}

	if rec, ok := e.codec.Load(ctx); ok {
		e.state = Restore(rec, questions)
		e.restored = true
		e.logger.Info("restored saved session",
			"questions", len(questions),
			"mastered", len(e.state.Mastered),
			"challenge_mode", e.state.InChallengeMode)
		return nil
	}

	e.state = NewState(questions)
	e.logger.Info("started new session", "questions", len(questions))
	return nil
}

// Restored reports whether Load found a saved session.
func (e *Engine) Restored() bool { return e.restored }

// RunID identifies this engine instance in answer records.
func (e *Engine) RunID() string { return e.runID }

// Config returns the engine thresholds.
func (e *Engine) Config() Config { return e.cfg }

// State exposes the live session state. Callers must not mutate it.
func (e *Engine) State() *State { return e.state }

// Reset returns the session to all-active with zero statistics, leaving
// challenge mode and clearing the current question.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.requireLoaded(); err != nil {
		return err
	}
	e.state.reset()
	e.logger.Info("session reset")
	e.save(ctx)
	return nil
}

// ClearSaved erases the persisted record. In-memory state is untouched.
func (e *Engine) ClearSaved(ctx context.Context) error {
	if err := e.codec.Clear(ctx); err != nil {
		return fmt.Errorf("clear saved session: %w", err)
	}
	return nil
}

func (e *Engine) save(ctx context.Context) {
	e.codec.Save(ctx, e.state)
}

func (e *Engine) requireLoaded() error {
	if e.state == nil {
		return ErrNotLoaded
	}
	return nil
}
