package bank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/mod/semver"
)

// SupportedMajor is the bank format major version this build understands.
const SupportedMajor = "v1"

// ErrIncompatibleVersion is returned for banks with an unsupported version.
var ErrIncompatibleVersion = errors.New("incompatible bank version")

// LoadError reports a failure to fetch or parse the question bank.
// No partial bank is ever returned alongside it.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load question bank from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load fetches the bank from p and materializes its questions with ids
// assigned by bank order and zero statistics.
func Load(ctx context.Context, p Provider) ([]*Question, error) {
	raw, err := p.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: p.Source(), Err: err}
	}

	questions, err := Parse(raw)
	if err != nil {
		return nil, &LoadError{Source: p.Source(), Err: err}
	}
	return questions, nil
}

// Parse validates a bank document and builds its questions.
func Parse(raw []byte) ([]*Question, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	if err := Validate(doc); err != nil {
		return nil, err
	}

	questions := make([]*Question, len(doc.Questions))
	for i, rq := range doc.Questions {
		choices := make([]string, len(rq.Choices))
		copy(choices, rq.Choices)
		questions[i] = &Question{
			ID:            IDFor(i),
			Text:          rq.Text,
			Choices:       choices,
			CorrectAnswer: rq.CorrectAnswer,
		}
	}
	return questions, nil
}

// Validate checks the rules the JSON schema cannot express: a supported
// version and a correct answer that is one of the choices.
func Validate(doc Document) error {
	if doc.Version != "" {
		if !semver.IsValid(doc.Version) {
			return fmt.Errorf("%w: %q is not a semantic version", ErrIncompatibleVersion, doc.Version)
		}
		if semver.Major(doc.Version) != SupportedMajor {
			return fmt.Errorf("%w: %s, want %s.x", ErrIncompatibleVersion, doc.Version, SupportedMajor)
		}
	}

	for i, q := range doc.Questions {
		if !slices.Contains(q.Choices, q.CorrectAnswer) {
			return fmt.Errorf("question %d: correct answer %q is not among its choices", i, q.CorrectAnswer)
		}
	}
	return nil
}
