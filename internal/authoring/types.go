// Package authoring writes new question banks with an LLM.
//
// A Generator asks the model for a batch of multiple-choice questions,
// runs each through a validator chain and keeps asking for the shortfall
// until the requested count is reached or the round limit is hit.
package authoring

import (
	"fmt"

	"github.com/abhisek/quizmaster/internal/bank"
)

// Input describes the bank to write.
type Input struct {
	// Topic is what the questions are about, e.g. "Go concurrency".
	Topic string
	// Audience is an optional description of the learner.
	Audience string
	// Count is the number of questions wanted.
	Count int
	// Choices is the number of options per question. Zero means Config.Choices.
	Choices int
	// Avoid lists question texts that must not be repeated, such as those
	// already in an existing bank.
	Avoid []string
}

// Rejection records a generated question that failed validation.
type Rejection struct {
	Question bank.RawQuestion
	Err      *ValidationError
}

// Result is a generated bank plus the questions that were thrown away.
type Result struct {
	Document bank.Document
	Rejected []Rejection
	Rounds   int
}

// ValidationError describes why a question was rejected.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
