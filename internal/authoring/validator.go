package authoring

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/quizmaster/internal/bank"
)

// Validator checks one generated question. seen holds the normalized
// texts of questions accepted so far plus Input.Avoid.
type Validator interface {
	Name() string
	Validate(q bank.RawQuestion, in Input, seen map[string]bool) *ValidationError
}

const (
	maxTextLen   = 500
	maxChoiceLen = 200
)

// StructuralValidator checks lengths, counts and blank fields.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q bank.RawQuestion, in Input, _ map[string]bool) *ValidationError {
	fail := func(msg string) *ValidationError {
		return &ValidationError{Validator: v.Name(), Message: msg}
	}

	if strings.TrimSpace(q.Text) == "" {
		return fail("text is empty")
	}
	if utf8.RuneCountInString(q.Text) > maxTextLen {
		return fail("text exceeds 500 characters")
	}
	if len(q.Choices) < 2 {
		return fail("fewer than 2 choices")
	}
	if in.Choices > 0 && len(q.Choices) != in.Choices {
		return fail("wrong number of choices")
	}
	for _, c := range q.Choices {
		if strings.TrimSpace(c) == "" {
			return fail("blank choice")
		}
		if utf8.RuneCountInString(c) > maxChoiceLen {
			return fail("choice exceeds 200 characters")
		}
	}
	return nil
}

// AnswerValidator requires exactly one choice to equal the correct answer.
type AnswerValidator struct{}

func (v *AnswerValidator) Name() string { return "answer" }

func (v *AnswerValidator) Validate(q bank.RawQuestion, _ Input, _ map[string]bool) *ValidationError {
	matches := 0
	for _, c := range q.Choices {
		if c == q.CorrectAnswer {
			matches++
		}
	}
	switch matches {
	case 0:
		return &ValidationError{Validator: v.Name(), Message: "correct answer is not among the choices"}
	case 1:
	default:
		return &ValidationError{Validator: v.Name(), Message: "correct answer appears more than once"}
	}

	normalized := make([]string, len(q.Choices))
	for i, c := range q.Choices {
		normalized[i] = normalize(c)
	}
	slices.Sort(normalized)
	if len(slices.Compact(normalized)) != len(q.Choices) {
		return &ValidationError{Validator: v.Name(), Message: "choices are not distinct"}
	}
	return nil
}

// DedupValidator rejects questions whose text matches one already seen,
// ignoring case, punctuation and spacing.
type DedupValidator struct{}

func (v *DedupValidator) Name() string { return "dedup" }

func (v *DedupValidator) Validate(q bank.RawQuestion, _ Input, seen map[string]bool) *ValidationError {
	if seen[normalize(q.Text)] {
		return &ValidationError{Validator: v.Name(), Message: "duplicate question"}
	}
	return nil
}

// normalize lowercases s, drops punctuation and collapses whitespace.
func normalize(s string) string {
	var b strings.Builder
	space := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r == ' ' || r == '\t' || r == '\n':
			space = b.Len() > 0
		case strings.ContainsRune(".,;:!?'\"()", r):
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
