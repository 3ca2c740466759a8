package authoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/quizmaster/internal/bank"
)

func TestValidators(t *testing.T) {
	long := strings.Repeat("x", 501)

	tests := []struct {
		name      string
		q         bank.RawQuestion
		in        Input
		seen      []string
		validator string // "" means the chain accepts it
	}{
		{"valid", good(1), Input{}, nil, ""},
		{"empty text", q("  ", "a", "a", "b"), Input{}, nil, "structural"},
		{"long text", q(long, "a", "a", "b"), Input{}, nil, "structural"},
		{"one choice", q("Q?", "a", "a"), Input{}, nil, "structural"},
		{"blank choice", q("Q?", "a", "a", " "), Input{}, nil, "structural"},
		{"long choice", q("Q?", "a", "a", long), Input{}, nil, "structural"},
		{"wrong count", q("Q?", "a", "a", "b"), Input{Choices: 4}, nil, "structural"},
		{"answer missing", q("Q?", "c", "a", "b"), Input{}, nil, "answer"},
		{"answer twice", q("Q?", "a", "a", "a", "b"), Input{}, nil, "answer"},
		{"near-identical choices", q("Q?", "Yes", "Yes", "yes.", "No"), Input{}, nil, "answer"},
		{"case-sensitive answer", q("Q?", "paris", "Paris", "Rome"), Input{}, nil, "answer"},
		{"seen before", q("What is Go?", "A language", "A language", "A game"), Input{}, []string{"what is go"}, "dedup"},
	}

	chain := DefaultConfig().Validators
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen := map[string]bool{}
			for _, s := range tt.seen {
				seen[normalize(s)] = true
			}

			var got *ValidationError
			for _, v := range chain {
				if got = v.Validate(tt.q, tt.in, seen); got != nil {
					break
				}
			}

			if tt.validator == "" {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.validator, got.Validator)
				assert.Contains(t, got.Error(), tt.validator)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"What is Go?", "what is go"},
		{"  what   IS\tgo ", "what is go"},
		{`"Quoted", (really)!`, "quoted really"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize(tt.in), "normalize(%q)", tt.in)
	}
}

func TestFormatAvoid(t *testing.T) {
	assert.Equal(t, "None", formatAvoid(nil, 5))
	assert.Equal(t, "1. c\n2. d", formatAvoid([]string{"a", "b", "c", "d"}, 2))
	assert.Equal(t, "1. a\n2. b", formatAvoid([]string{"a", "b"}, 0))
}

func TestBuildPromptAudience(t *testing.T) {
	p := buildPrompt(Input{Topic: "Go", Audience: "new hires"}, 5, 4, nil, 10)
	assert.Contains(t, p, "Audience: new hires")
	assert.NotContains(t, buildPrompt(Input{Topic: "Go"}, 5, 4, nil, 10), "Audience")
}
