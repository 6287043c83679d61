package hangman

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Placeholder stands in for letters that haven't been revealed yet.
	Placeholder = '-'
	// DefaultMaxLives is the number of wrong guesses a game allows, unless
	// configured otherwise.
	DefaultMaxLives = 6
	// Alphabet is every letter a solver can guess.
	Alphabet = "abcdefghijklmnopqrstuvwxyz"
)

var (
	ErrInvalidWord     = errors.New("hangman: invalid word")
	ErrInvalidLives    = errors.New("hangman: max lives must be positive")
	ErrDuplicateGuess  = errors.New("hangman: letter was already guessed")
	ErrIllegalGuess    = errors.New("hangman: illegal guess")
	ErrGameAlreadyOver = errors.New("hangman: game is already over")
	ErrSolverFailed    = errors.New("hangman: solver failed")
)

// SolverInitError means a solver couldn't be built from its persisted model
// artifact. It is fatal to that solver, callers shouldn't retry.
type SolverInitError struct {
	Path string
	Err  error
}

func (e *SolverInitError) Error() string {
	return fmt.Sprintf("hangman: failed to initialize solver from %q: %v", e.Path, e.Err)
}

func (e *SolverInitError) Unwrap() error {
	return e.Err
}

// Solver picks the next letter to guess, given what's visible about a game.
type Solver interface {
	// Guess takes in the masked pattern, the letters guessed so far and the
	// remaining lives, and returns a letter that hasn't been guessed yet.
	Guess(pattern string, guessed *Guesses, livesRemaining int) (Letter, error)
}

// Word is a target word, lowercase letters only.
type Word string

// ParseWord normalizes the given string into a Word, rejecting anything that
// isn't made of letters.
func ParseWord(s string) (Word, error) {
	w := strings.ToLower(strings.TrimSpace(s))
	if w == "" {
		return "", fmt.Errorf("%w: word is empty", ErrInvalidWord)
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return "", fmt.Errorf("%w: %q contains %q", ErrInvalidWord, s, r)
		}
	}
	return Word(w), nil
}

// Distinct returns the number of distinct letters in the word.
func (w Word) Distinct() int {
	var seen [26]bool
	n := 0
	for i := 0; i < len(w); i++ {
		if idx := w[i] - 'a'; !seen[idx] {
			seen[idx] = true
			n++
		}
	}
	return n
}

// Letter is a single lowercase letter.
type Letter byte

// ParseLetter folds the given rune into a Letter.
func ParseLetter(r rune) (Letter, error) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return 0, fmt.Errorf("%w: %q is not a letter", ErrIllegalGuess, r)
	}
	return Letter(r), nil
}

func (l Letter) String() string {
	return string(rune(l))
}

// Valid reports whether l is one of the 26 lowercase letters.
func (l Letter) Valid() bool {
	return l >= 'a' && l <= 'z'
}

// Guesses is the set of letters guessed in a game. It remembers the order
// letters were added in, for reporting.
type Guesses struct {
	seen  [26]bool
	order []Letter
}

// NewGuesses returns a set containing the given letters, skipping repeats.
func NewGuesses(ls ...Letter) *Guesses {
	g := &Guesses{}
	for _, l := range ls {
		g.Add(l)
	}
	return g
}

// Has returns whether the letter has been guessed.
func (g *Guesses) Has(l Letter) bool {
	if g == nil || !l.Valid() {
		return false
	}
	return g.seen[l-'a']
}

// Add records a letter, returning false if it was already there or isn't a
// letter at all.
func (g *Guesses) Add(l Letter) bool {
	if !l.Valid() || g.seen[l-'a'] {
		return false
	}
	g.seen[l-'a'] = true
	g.order = append(g.order, l)
	return true
}

// Len returns the number of letters guessed.
func (g *Guesses) Len() int {
	if g == nil {
		return 0
	}
	return len(g.order)
}

// Letters returns the guessed letters in the order they were guessed.
func (g *Guesses) Letters() []Letter {
	if g == nil {
		return nil
	}
	out := make([]Letter, len(g.order))
	copy(out, g.order)
	return out
}

func (g *Guesses) String() string {
	var sb strings.Builder
	for _, l := range g.Letters() {
		sb.WriteByte(byte(l))
	}
	return sb.String()
}

func (g *Guesses) Clone() *Guesses {
	if g == nil {
		return &Guesses{}
	}
	return &Guesses{
		seen:  g.seen,
		order: g.Letters(),
	}
}

// Status is where a game is in its lifecycle.
type Status string

const (
	InProgress = Status("IN_PROGRESS")
	Won        = Status("WON")
	Lost       = Status("LOST")
)

// Terminal returns whether no more guesses can be made.
func (s Status) Terminal() bool {
	return s == Won || s == Lost
}

// Outcome is how a finished game ended.
type Outcome string

const (
	OutcomeWon  = Outcome("WON")
	OutcomeLost = Outcome("LOST")
	// OutcomeDefective means the solver broke its contract (or failed outright)
	// and the game was abandoned. It is never the same thing as losing.
	OutcomeDefective = Outcome("DEFECTIVE")
)

type SolverID string

// GameResult is the record of a single finished game.
type GameResult struct {
	SolverID     SolverID `json:"solver_id"`
	Word         Word     `json:"word"`
	Outcome      Outcome  `json:"outcome"`
	GuessesUsed  int      `json:"guesses_used"`
	WrongGuesses int      `json:"wrong_guesses"`
	// Guesses holds every letter guessed, in order.
	Guesses string `json:"guesses"`
	// Defect is only populated for OutcomeDefective.
	Defect string `json:"defect,omitempty"`
}

func (r *GameResult) Clone() *GameResult {
	rc := *r
	return &rc
}

// Report is the ordered list of results from one simulation run.
type Report []*GameResult

func (r Report) Clone() Report {
	out := make(Report, len(r))
	for i, res := range r {
		out[i] = res.Clone()
	}
	return out
}
