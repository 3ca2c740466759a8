package quiz

import (
	"slices"

	"github.com/abhisek/quizmaster/internal/bank"
)

// Pools groups questions by mastery status. Pools hold references to the
// engine's question records, never copies.
//
// A question is either in Active or in Mastered, never both. Every member
// of Challenged is also a member of Mastered.
type Pools struct {
	Active     []*bank.Question
	Mastered   []*bank.Question
	Challenged []*bank.Question
}

// ProgressEntry tracks one challenger question within a challenge session.
type ProgressEntry struct {
	Streak     int  `json:"streak"`
	Remastered bool `json:"remastered"`
}

// Progress maps challenger ids to their challenge-session progress.
type Progress map[bank.QuestionID]ProgressEntry

// State is the complete mutable state of one quiz session.
type State struct {
	Pools

	// Questions is every question in bank order.
	Questions []*bank.Question

	// Current is the most recently drawn question (nil before any draw).
	Current *bank.Question

	// InChallengeMode is true while a challenge session is running.
	InChallengeMode bool

	// Progress is non-empty only while InChallengeMode is true.
	Progress Progress
}

// NewState returns the initial state: every question active, nothing current.
func NewState(questions []*bank.Question) *State {
	return &State{
		Pools: Pools{
			Active: slices.Clone(questions),
		},
		Questions: questions,
		Progress:  make(Progress),
	}
}

// pool returns the pool draws come from in the current mode.
func (s *State) pool() []*bank.Question {
	if s.InChallengeMode {
		return s.Challenged
	}
	return s.Active
}

// eligible returns the questions that may be drawn next.
func (s *State) eligible() []*bank.Question {
	pool := s.pool()
	if !s.InChallengeMode {
		return pool
	}

	out := make([]*bank.Question, 0, len(pool))
	for _, q := range pool {
		if !s.Progress[q.ID].Remastered {
			out = append(out, q)
		}
	}
	return out
}

// promote moves q from Active to Mastered, and into Challenged when
// challenger is set.
func (s *State) promote(q *bank.Question, challenger bool) {
	if challenger {
		s.Challenged = append(s.Challenged, q)
	}
	s.Mastered = append(s.Mastered, q)
	s.Active = slices.DeleteFunc(s.Active, func(a *bank.Question) bool { return a == q })
}

// reset restores the initial all-active, zero-stats shape.
func (s *State) reset() {
	for _, q := range s.Questions {
		q.Stats = bank.Stats{}
	}
	s.Active = slices.Clone(s.Questions)
	s.Mastered = nil
	s.Challenged = nil
	s.Current = nil
	s.InChallengeMode = false
	s.Progress = make(Progress)
}
