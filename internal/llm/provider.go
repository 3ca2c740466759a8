// Package llm talks to hosted language models for question bank authoring.
//
// Every provider accepts a single-turn Request and returns JSON. When the
// request carries a Schema the provider uses its native structured output
// mode and validates the reply before returning it.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is implemented by every LLM backend and decorator.
type Provider interface {
	// Generate sends req and returns the model's reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the backend name ("anthropic", "openai", ...).
	Name() string

	// Model is the model identifier requests are sent to.
	Model() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Schema, when set, constrains the reply to JSON matching it.
	Schema *Schema

	MaxTokens   int
	Temperature float64
}

// Schema is a named JSON Schema document.
type Schema struct {
	// Name is kebab-case, e.g. "question-bank". It doubles as the cache
	// key for the compiled validator.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a model reply.
type Response struct {
	Content   json.RawMessage
	Usage     Usage
	Model     string
	Truncated bool
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int {
	return u.InputTokens + u.OutputTokens
}
