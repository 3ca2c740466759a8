package quiz

import (
	"context"
	"time"

	"github.com/abhisek/quizmaster/internal/bank"
)

// Mode names the kind of session an answer was given in.
type Mode string

const (
	ModeNormal    Mode = "normal"
	ModeChallenge Mode = "challenge"
)

// AnswerRecord describes one submitted answer.
type AnswerRecord struct {
	RunID      string
	QuestionID bank.QuestionID
	Mode       Mode
	Answer     string
	Correct    bool
	Streak     int
	Mastered   bool
	AnsweredAt time.Time
}

// Recorder receives a record of every submitted answer. Recording failures
// are logged and never affect the session.
type Recorder interface {
	RecordAnswer(ctx context.Context, rec AnswerRecord) error
}
