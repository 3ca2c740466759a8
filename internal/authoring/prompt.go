package authoring

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizmaster/internal/llm"
)

const systemPrompt = `You write multiple-choice quiz questions for a self-paced practice tool.

Rules:
- Each question must be self-contained and answerable without context.
- Give exactly the requested number of choices. Exactly one is correct.
- "correctAnswer" must be copied character for character from "choices".
- Distractors should be plausible mistakes, not jokes.
- Keep questions under 300 characters and choices under 80.
- Do not repeat or rephrase any question from the "already used" list.`

// bankSchema is the reply shape. It mirrors the bank file format without
// the version, which the generator sets.
var bankSchema = &llm.Schema{
	Name:        "question-bank",
	Description: "A batch of multiple-choice quiz questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"text": map[string]any{
							"type":        "string",
							"description": "The question shown to the learner",
						},
						"choices": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Answer options in any order",
						},
						"correctAnswer": map[string]any{
							"type":        "string",
							"description": "The correct option, identical to one entry of choices",
						},
					},
					"required":             []any{"text", "choices", "correctAnswer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// buildPrompt asks for n questions with the given number of choices.
func buildPrompt(in Input, n, choices int, avoid []string, maxAvoid int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", in.Topic)
	if in.Audience != "" {
		fmt.Fprintf(&b, "Audience: %s\n", in.Audience)
	}
	fmt.Fprintf(&b, "Questions: %d\n", n)
	fmt.Fprintf(&b, "Choices per question: %d\n", choices)

	b.WriteString("\nAlready used:\n")
	b.WriteString(formatAvoid(avoid, maxAvoid))

	return b.String()
}

// formatAvoid numbers the most recent max entries, or returns "None".
func formatAvoid(texts []string, max int) string {
	if len(texts) == 0 {
		return "None"
	}
	if max > 0 && len(texts) > max {
		texts = texts[len(texts)-max:]
	}

	var b strings.Builder
	for i, t := range texts {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}
	return strings.TrimRight(b.String(), "\n")
}
