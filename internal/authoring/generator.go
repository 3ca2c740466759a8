package authoring

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abhisek/quizmaster/internal/bank"
	"github.com/abhisek/quizmaster/internal/llm"
)

// BankVersion is stamped on every generated document.
const BankVersion = "v1.0.0"

// ErrNoQuestions is returned when every round produced nothing usable.
var ErrNoQuestions = errors.New("no valid questions generated")

// Generator writes banks with an LLM provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger
}

// New returns a Generator. A nil logger uses slog.Default().
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{provider: provider, cfg: cfg, logger: logger}
}

type batch struct {
	Questions []bank.RawQuestion `json:"questions"`
}

// Generate asks for in.Count questions. It returns a partial bank when the
// round limit is reached with at least one accepted question.
func (g *Generator) Generate(ctx context.Context, in Input) (*Result, error) {
	if in.Topic == "" {
		return nil, errors.New("topic is required")
	}
	if in.Count <= 0 {
		return nil, errors.New("count must be positive")
	}
	choices := in.Choices
	if choices <= 0 {
		choices = g.cfg.Choices
	}
	in.Choices = choices

	ctx = llm.WithPurpose(ctx, "bank-authoring")

	seen := make(map[string]bool, len(in.Avoid)+in.Count)
	avoid := make([]string, 0, len(in.Avoid)+in.Count)
	for _, t := range in.Avoid {
		seen[normalize(t)] = true
		avoid = append(avoid, t)
	}

	res := &Result{Document: bank.Document{Version: BankVersion}}

	for res.Rounds < g.cfg.MaxRounds && len(res.Document.Questions) < in.Count {
		res.Rounds++
		want := min(in.Count-len(res.Document.Questions), g.cfg.BatchSize)

		got, err := g.request(ctx, in, want, avoid)
		if err != nil {
			if len(res.Document.Questions) == 0 {
				return nil, err
			}
			g.logger.Warn("stopping after failed round", "round", res.Rounds, "err", err)
			break
		}

		for _, q := range got {
			if len(res.Document.Questions) == in.Count {
				break
			}
			if verr := g.validate(q, in, seen); verr != nil {
				g.logger.Debug("question rejected", "validator", verr.Validator, "reason", verr.Message)
				res.Rejected = append(res.Rejected, Rejection{Question: q, Err: verr})
				continue
			}
			seen[normalize(q.Text)] = true
			avoid = append(avoid, q.Text)
			res.Document.Questions = append(res.Document.Questions, q)
		}
	}

	if len(res.Document.Questions) == 0 {
		return nil, ErrNoQuestions
	}
	if err := bank.Validate(res.Document); err != nil {
		return nil, fmt.Errorf("generated bank is invalid: %w", err)
	}

	g.logger.Info("bank generated",
		"topic", in.Topic,
		"questions", len(res.Document.Questions),
		"rejected", len(res.Rejected),
		"rounds", res.Rounds)
	return res, nil
}

func (g *Generator) request(ctx context.Context, in Input, n int, avoid []string) ([]bank.RawQuestion, error) {
	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildPrompt(in, n, in.Choices, avoid, g.cfg.MaxAvoid),
		Schema:      bankSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var b batch
	if err := json.Unmarshal(resp.Content, &b); err != nil {
		return nil, fmt.Errorf("parse LLM response: %w", err)
	}
	return b.Questions, nil
}

func (g *Generator) validate(q bank.RawQuestion, in Input, seen map[string]bool) *ValidationError {
	for _, v := range g.cfg.Validators {
		if err := v.Validate(q, in, seen); err != nil {
			return err
		}
	}
	return nil
}

// Write encodes doc as indented JSON.
func Write(w io.Writer, doc bank.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteFile writes doc to path, replacing any existing file.
func WriteFile(path string, doc bank.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
