package hangman

import (
	"errors"
	"time"
)

var (
	ErrRunNotFound  = errors.New("hangman: run not found")
	ErrListNotFound = errors.New("hangman: word list not found")
)

type RunID string

// SessionID identifies whoever asked for a run, usually a browser cookie.
type SessionID string

// Run is a single head-to-head comparison requested through the web service.
type Run struct {
	ID        RunID     `json:"id"`
	Owner     SessionID `json:"-"`
	Word      Word      `json:"word"`
	MaxLives  int       `json:"max_lives"`
	Results   Report    `json:"results"`
	CreatedAt time.Time `json:"created_at"`
}

func (r *Run) Clone() *Run {
	rc := *r
	rc.Results = r.Results.Clone()
	return &rc
}

// DB holds the runs made during the lifetime of a server process. Nothing in
// it outlives the process.
type DB interface {
	NewRun(*Run) (RunID, error)
	Run(RunID) (*Run, error)
	RunsFor(SessionID) ([]*Run, error)
	// Results returns every game result recorded so far, in the order they were
	// recorded.
	Results() (Report, error)
}

// Corpus is a store of named word lists.
type Corpus interface {
	AddWords(list string, words []Word) error
	Words(list string) ([]Word, error)
	Lists() ([]string, error)
}
