package quiz

import (
	"cmp"
	"context"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/abhisek/quizmaster/internal/bank"
)

// DefaultSessionKey is the key the session record is stored under.
const DefaultSessionKey = "quizState"

// KV is the external key-value store the session record is written to.
type KV interface {
	// Get returns the value for key, or nil with no error if it is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Record is the flattened, persisted form of a session.
type Record struct {
	ActiveQuestionIDs     []bank.QuestionID `json:"activeQuestionIds"`
	MasteredQuestionIDs   []bank.QuestionID `json:"masteredQuestionIds"`
	ChallengedQuestionIDs []bank.QuestionID `json:"challengedQuestionIds"`
	CurrentQuestionID     bank.QuestionID   `json:"currentQuestionId,omitempty"`
	IsInChallengeMode     bool              `json:"isInChallengeMode"`
	ChallengeModeProgress []ProgressRecord  `json:"challengeModeProgress"`
	Questions             []QuestionRecord  `json:"questions"`
}

// ProgressRecord is one challenge progress entry in a Record.
type ProgressRecord struct {
	Key   bank.QuestionID `json:"key"`
	Value ProgressEntry   `json:"value"`
}

// QuestionRecord carries the statistics of one question in a Record.
type QuestionRecord struct {
	ID    bank.QuestionID `json:"id"`
	Stats bank.Stats      `json:"stats"`
}

// Codec reads and writes session records through a KV.
type Codec struct {
	kv     KV
	key    string
	logger *slog.Logger
}

// NewCodec creates a Codec storing records under key. An empty key uses
// DefaultSessionKey; a nil logger uses slog.Default().
func NewCodec(kv KV, key string, logger *slog.Logger) *Codec {
	if key == "" {
		key = DefaultSessionKey
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Codec{kv: kv, key: key, logger: logger}
}

// Key returns the key records are stored under.
func (c *Codec) Key() string { return c.key }

// Encode flattens s into a Record.
func Encode(s *State) *Record {
	rec := &Record{
		ActiveQuestionIDs:     ids(s.Active),
		MasteredQuestionIDs:   ids(s.Mastered),
		ChallengedQuestionIDs: ids(s.Challenged),
		IsInChallengeMode:     s.InChallengeMode,
		ChallengeModeProgress: make([]ProgressRecord, 0, len(s.Progress)),
		Questions:             make([]QuestionRecord, len(s.Questions)),
	}
	if s.Current != nil {
		rec.CurrentQuestionID = s.Current.ID
	}
	for id, p := range s.Progress {
		rec.ChallengeModeProgress = append(rec.ChallengeModeProgress, ProgressRecord{Key: id, Value: p})
	}
	slices.SortFunc(rec.ChallengeModeProgress, func(a, b ProgressRecord) int {
		return cmp.Compare(a.Key, b.Key)
	})
	for i, q := range s.Questions {
		rec.Questions[i] = QuestionRecord{ID: q.ID, Stats: q.Stats}
	}
	return rec
}

// Save writes s to the store, overwriting any previous record. Failures
// are logged and otherwise ignored.
func (c *Codec) Save(ctx context.Context, s *State) {
	data, err := json.Marshal(Encode(s))
	if err != nil {
		c.logger.Warn("failed to encode session", "key", c.key, "error", err)
		return
	}
	if err := c.kv.Put(ctx, c.key, data); err != nil {
		c.logger.Warn("failed to save session", "key", c.key, "error", err)
	}
}

// Load reads the stored record. A missing, unreadable or malformed record
// is reported as absent.
func (c *Codec) Load(ctx context.Context) (*Record, bool) {
	data, err := c.kv.Get(ctx, c.key)
	if err != nil {
		c.logger.Warn("failed to read saved session", "key", c.key, "error", err)
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		c.logger.Debug("ignoring malformed saved session", "key", c.key, "error", err)
		return nil, false
	}
	return &rec, true
}

// Clear deletes the stored record.
func (c *Codec) Clear(ctx context.Context) error {
	return c.kv.Delete(ctx, c.key)
}

// Restore rebuilds a session from rec over freshly loaded questions.
//
// Only statistics are taken from the record; question content always
// comes from the live bank. Ids the bank no longer has are dropped. The
// challenge progress list is restored as saved.
func Restore(rec *Record, questions []*bank.Question) *State {
	byID := make(map[bank.QuestionID]*bank.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for _, qr := range rec.Questions {
		if q, ok := byID[qr.ID]; ok {
			q.Stats = qr.Stats
		}
	}

	s := &State{
		Questions:       questions,
		InChallengeMode: rec.IsInChallengeMode,
		Progress:        make(Progress, len(rec.ChallengeModeProgress)),
	}

	seen := make(map[bank.QuestionID]bool, len(questions))
	s.Mastered = lookup(rec.MasteredQuestionIDs, byID, seen)
	mastered := make(map[bank.QuestionID]bool, len(s.Mastered))
	for _, q := range s.Mastered {
		mastered[q.ID] = true
	}
	s.Active = lookup(rec.ActiveQuestionIDs, byID, seen)
	s.Challenged = slices.DeleteFunc(lookup(rec.ChallengedQuestionIDs, byID, nil), func(q *bank.Question) bool {
		return !mastered[q.ID]
	})

	// Questions missing from every saved pool (a bank that grew since the
	// save) are placed by their own stats so each belongs to a pool.
	for _, q := range questions {
		if seen[q.ID] {
			continue
		}
		if q.Stats.IsMastered {
			s.Mastered = append(s.Mastered, q)
			if q.Stats.IsChallenger {
				s.Challenged = append(s.Challenged, q)
			}
			continue
		}
		s.Active = append(s.Active, q)
	}

	if rec.CurrentQuestionID != "" {
		s.Current = byID[rec.CurrentQuestionID]
	}

	for _, pr := range rec.ChallengeModeProgress {
		s.Progress[pr.Key] = pr.Value
	}
	return s
}

// lookup maps ids to questions, skipping unknown ids and, when seen is
// non-nil, ids already placed in an earlier pool.
func lookup(ids []bank.QuestionID, byID map[bank.QuestionID]*bank.Question, seen map[bank.QuestionID]bool) []*bank.Question {
	out := make([]*bank.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			continue
		}
		if seen != nil {
			if seen[id] {
				continue
			}
			seen[id] = true
		}
		out = append(out, q)
	}
	return out
}

func ids(qs []*bank.Question) []bank.QuestionID {
	out := make([]bank.QuestionID, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}
