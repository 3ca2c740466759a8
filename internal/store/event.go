package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizmaster/internal/bank"
	"github.com/abhisek/quizmaster/internal/quiz"
)

// sequenceCounter hands out a single increasing sequence shared by every
// event table, so answers and LLM calls can be ordered against each other.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// where renders the filters as a WHERE clause plus its arguments.
func (o QueryOpts) where(extra ...string) (string, []any) {
	conds := append([]string(nil), extra...)
	var args []any
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if o.Before > 0 {
		conds = append(conds, "sequence < ?")
		args = append(args, o.Before)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UnixMilli())
	}
	if !o.To.IsZero() {
		conds = append(conds, "timestamp <= ?")
		args = append(args, o.To.UnixMilli())
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (o QueryOpts) limit() string {
	if o.Limit > 0 {
		return fmt.Sprintf(" LIMIT %d", o.Limit)
	}
	return ""
}

// AnswerEvent is a persisted quiz answer.
type AnswerEvent struct {
	ID         string
	Sequence   int64
	Timestamp  time.Time
	RunID      string
	QuestionID bank.QuestionID
	Mode       quiz.Mode
	Answer     string
	Correct    bool
	Streak     int
	Mastered   bool
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a persisted LLM call.
type LLMRequestEvent struct {
	ID        string
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// RecordAnswer appends an answer event. It satisfies quiz.Recorder.
	RecordAnswer(ctx context.Context, rec quiz.AnswerRecord) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryAnswers returns answer events in sequence order. A non-empty
	// questionID restricts the result to that question.
	QueryAnswers(ctx context.Context, questionID bank.QuestionID, opts QueryOpts) ([]AnswerEvent, error)

	// LatestAnswers returns the most recent n answer events, newest first.
	LatestAnswers(ctx context.Context, n int) ([]AnswerEvent, error)

	// QueryLLMRequests returns LLM request events in sequence order.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}

type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var _ quiz.Recorder = (*eventRepo)(nil)

func (r *eventRepo) RecordAnswer(ctx context.Context, rec quiz.AnswerRecord) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("answer event: %w", err)
	}
	ts := rec.AnsweredAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO answer_events
			(id, sequence, timestamp, run_id, question_id, mode, answer, correct, streak, mastered)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), seq, ts.UnixMilli(), rec.RunID, string(rec.QuestionID),
		string(rec.Mode), rec.Answer, rec.Correct, rec.Streak, rec.Mastered,
	)
	if err != nil {
		return fmt.Errorf("answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("llm request event: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_request_events
			(id, sequence, timestamp, provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), seq, time.Now().UnixMilli(), data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("llm request event: %w", err)
	}
	return nil
}

const answerColumns = `id, sequence, timestamp, run_id, question_id, mode, answer, correct, streak, mastered`

func (r *eventRepo) QueryAnswers(ctx context.Context, questionID bank.QuestionID, opts QueryOpts) ([]AnswerEvent, error) {
	var extra []string
	var args []any
	if questionID != "" {
		extra = append(extra, "question_id = ?")
		args = append(args, string(questionID))
	}
	where, more := opts.where(extra...)
	args = append(args, more...)

	q := `SELECT ` + answerColumns + ` FROM answer_events` + where + ` ORDER BY sequence ASC` + opts.limit()
	return r.scanAnswers(ctx, q, args...)
}

func (r *eventRepo) LatestAnswers(ctx context.Context, n int) ([]AnswerEvent, error) {
	if n <= 0 {
		return nil, nil
	}
	q := `SELECT ` + answerColumns + ` FROM answer_events ORDER BY sequence DESC LIMIT ?`
	return r.scanAnswers(ctx, q, n)
}

func (r *eventRepo) scanAnswers(ctx context.Context, q string, args ...any) ([]AnswerEvent, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var (
			ev   AnswerEvent
			ts   int64
			qid  string
			mode string
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &ts, &ev.RunID, &qid, &mode,
			&ev.Answer, &ev.Correct, &ev.Streak, &ev.Mastered); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts).UTC()
		ev.QuestionID = bank.QuestionID(qid)
		ev.Mode = quiz.Mode(mode)
		out = append(out, ev)
	}
	return out, rows.Err()
}

func (r *eventRepo) QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	where, args := opts.where()
	q := `SELECT id, sequence, timestamp, provider, model, purpose, input_tokens, output_tokens,
		latency_ms, success, error_message FROM llm_request_events` + where + ` ORDER BY sequence ASC` + opts.limit()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query llm requests: %w", err)
	}
	defer rows.Close()

	var out []LLMRequestEvent
	for rows.Next() {
		var ev LLMRequestEvent
		var ts int64
		if err := rows.Scan(&ev.ID, &ev.Sequence, &ts, &ev.Provider, &ev.Model, &ev.Purpose,
			&ev.InputTokens, &ev.OutputTokens, &ev.LatencyMs, &ev.Success, &ev.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan llm request: %w", err)
		}
		ev.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, ev)
	}
	return out, rows.Err()
}
