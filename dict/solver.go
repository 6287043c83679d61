package dict

import (
	"github.com/bcspragu/Hangman/freq"
	"github.com/bcspragu/Hangman/hangman"
)

// Solver guesses the letter found in the most dictionary words that still fit
// the pattern. When nothing fits, it falls back to letter frequency.
type Solver struct {
	dict     *Dictionary
	fallback *freq.Solver
}

// NewSolver returns a Solver over the dictionary. A nil fallback means the
// English letter ordering.
func NewSolver(d *Dictionary, fallback *freq.Solver) *Solver {
	if fallback == nil {
		fallback = freq.New()
	}
	return &Solver{dict: d, fallback: fallback}
}

func (s *Solver) Guess(pattern string, guessed *hangman.Guesses, lives int) (hangman.Letter, error) {
	cands := s.dict.Candidates(pattern, guessed)
	if l, ok := Best(LetterCounts(cands, guessed, nil), s.fallback); ok {
		return l, nil
	}
	return s.fallback.Guess(pattern, guessed, lives)
}
