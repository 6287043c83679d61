package game

import (
	"fmt"

	"github.com/bcspragu/Hangman/hangman"
)

// State represents a single round of Hangman. It only changes through Guess,
// one letter at a time, and is not safe for concurrent use.
type State struct {
	target  hangman.Word
	guessed *hangman.Guesses

	maxLives       int
	livesRemaining int
	wrong          int
	status         hangman.Status
}

// New validates the target word and starts a game with the given number of
// lives.
func New(target string, maxLives int) (*State, error) {
	w, err := hangman.ParseWord(target)
	if err != nil {
		return nil, err
	}
	if maxLives <= 0 {
		return nil, fmt.Errorf("%w, got %d", hangman.ErrInvalidLives, maxLives)
	}

	return &State{
		target:         w,
		guessed:        &hangman.Guesses{},
		maxLives:       maxLives,
		livesRemaining: maxLives,
		status:         hangman.InProgress,
	}, nil
}

// Guess applies a single letter to the game.
func (s *State) Guess(l hangman.Letter) error {
	if s.status.Terminal() {
		return fmt.Errorf("guess %q: %w (%s)", l, hangman.ErrGameAlreadyOver, s.status)
	}
	if !l.Valid() {
		return fmt.Errorf("%w: %q is not a letter", hangman.ErrIllegalGuess, byte(l))
	}
	if s.guessed.Has(l) {
		return fmt.Errorf("guess %q: %w", l, hangman.ErrDuplicateGuess)
	}

	s.guessed.Add(l)
	if !s.inTarget(l) {
		s.livesRemaining--
		s.wrong++
	}
	s.status = s.computeStatus()
	return nil
}

func (s *State) inTarget(l hangman.Letter) bool {
	for i := 0; i < len(s.target); i++ {
		if hangman.Letter(s.target[i]) == l {
			return true
		}
	}
	return false
}

func (s *State) computeStatus() hangman.Status {
	if s.Revealed() == len(s.target) {
		return hangman.Won
	}
	if s.livesRemaining == 0 {
		return hangman.Lost
	}
	return hangman.InProgress
}

// MaskedPattern returns the target word, with every letter that hasn't been
// guessed replaced by hangman.Placeholder.
func (s *State) MaskedPattern() string {
	buf := make([]byte, len(s.target))
	for i := 0; i < len(s.target); i++ {
		if s.guessed.Has(hangman.Letter(s.target[i])) {
			buf[i] = s.target[i]
		} else {
			buf[i] = hangman.Placeholder
		}
	}
	return string(buf)
}

// Revealed returns how many positions of the target are showing.
func (s *State) Revealed() int {
	n := 0
	for i := 0; i < len(s.target); i++ {
		if s.guessed.Has(hangman.Letter(s.target[i])) {
			n++
		}
	}
	return n
}

func (s *State) Target() hangman.Word {
	return s.target
}

func (s *State) Status() hangman.Status {
	return s.status
}

func (s *State) MaxLives() int {
	return s.maxLives
}

func (s *State) LivesRemaining() int {
	return s.livesRemaining
}

// Guessed returns a copy of the letters guessed so far.
func (s *State) Guessed() *hangman.Guesses {
	return s.guessed.Clone()
}

func (s *State) GuessesUsed() int {
	return s.guessed.Len()
}

func (s *State) WrongGuesses() int {
	return s.wrong
}
