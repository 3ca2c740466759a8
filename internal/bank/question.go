package bank

import "fmt"

// QuestionID is the stable identifier assigned to a question at load time.
// It is derived from the question's zero-based position in the bank.
type QuestionID string

// IDFor returns the id assigned to the question at the given bank index.
func IDFor(index int) QuestionID {
	return QuestionID(fmt.Sprintf("question-%d", index))
}

// Stats holds the mutable per-question learning statistics.
type Stats struct {
	// CurrentStreak counts consecutive correct answers since the last miss.
	CurrentStreak int `json:"currentStreak"`

	// TotalAttempts counts every submitted answer.
	TotalAttempts int `json:"totalAttempts"`

	// AttemptsBeforeMastery counts answers submitted while the question was
	// not yet mastered. It stops changing once IsMastered is set.
	AttemptsBeforeMastery int `json:"attemptsBeforeMastery"`

	// CorrectAttempts counts every correct answer.
	CorrectAttempts int `json:"correctAttempts"`

	// IsMastered only ever goes from false to true.
	IsMastered bool `json:"isMastered"`

	// IsChallenger marks a question that needed many attempts to master.
	IsChallenger bool `json:"isChallenger"`
}

// Question is a single multiple-choice question with its statistics.
// Text, Choices and CorrectAnswer never change after load.
type Question struct {
	ID            QuestionID
	Text          string
	Choices       []string
	CorrectAnswer string
	Stats         Stats
}

// IsCorrect reports whether answer exactly matches the correct answer.
func (q *Question) IsCorrect(answer string) bool {
	return answer == q.CorrectAnswer
}

// Document is the on-disk question bank format.
type Document struct {
	// Version is an optional semantic version ("v1.2.0") of the bank format.
	Version   string        `json:"version,omitempty"`
	Questions []RawQuestion `json:"questions"`
}

// RawQuestion is a bank entry before ids and statistics are attached.
type RawQuestion struct {
	Text          string   `json:"text"`
	Choices       []string `json:"choices"`
	CorrectAnswer string   `json:"correctAnswer"`
}
