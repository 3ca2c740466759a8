package authoring

// Config controls a Generator.
type Config struct {
	// Validators run in order; the first failure rejects the question.
	Validators []Validator

	// Choices is the default number of options per question.
	Choices int

	// BatchSize caps the questions asked for in one request.
	BatchSize int

	// MaxRounds bounds the requests made for one Generate call.
	MaxRounds int

	// MaxAvoid caps how many prior question texts are quoted in a prompt.
	MaxAvoid int

	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the standard validator chain and limits.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerValidator{},
			&DedupValidator{},
		},
		Choices:     4,
		BatchSize:   10,
		MaxRounds:   4,
		MaxAvoid:    40,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}
