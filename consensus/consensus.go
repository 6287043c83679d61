// Package consensus combines several solvers into one, by having them vote on
// every guess.
package consensus

import (
	"errors"
	"fmt"

	"github.com/bcspragu/Hangman/hangman"
)

// Vote is a single member's choice for a guess.
type Vote struct {
	Member int
	Letter hangman.Letter
}

// Guesser asks every member solver for a guess, and returns the letter a
// strict majority agreed on. Without a majority, the first member that gave
// a usable answer decides.
type Guesser struct {
	members []hangman.Solver
}

func New(members ...hangman.Solver) (*Guesser, error) {
	if len(members) == 0 {
		return nil, errors.New("consensus needs at least one member")
	}
	for i, m := range members {
		if m == nil {
			return nil, fmt.Errorf("member %d is nil", i)
		}
	}
	return &Guesser{members: members}, nil
}

func (g *Guesser) Guess(pattern string, guessed *hangman.Guesses, lives int) (hangman.Letter, error) {
	var votes []*Vote
	var errs []error
	for i, m := range g.members {
		// Each member gets its own copy, so one can't change what the next sees.
		l, err := m.Guess(pattern, guessed.Clone(), lives)
		if err != nil {
			errs = append(errs, fmt.Errorf("member %d: %w", i, err))
			continue
		}
		if !l.Valid() || guessed.Has(l) {
			// A member breaking the contract loses its vote, it doesn't get to break
			// the whole ensemble.
			errs = append(errs, fmt.Errorf("member %d: %w: %q", i, hangman.ErrIllegalGuess, byte(l)))
			continue
		}
		votes = append(votes, &Vote{Member: i, Letter: l})
	}

	if len(votes) == 0 {
		return 0, fmt.Errorf("no member gave a usable guess: %w", errors.Join(errs...))
	}

	if l, ok := ReachedConsensus(votes, len(g.members)); ok {
		return l, nil
	}
	return votes[0].Letter, nil
}

// ReachedConsensus returns the letter with a strict majority of totalVoters.
func ReachedConsensus(votes []*Vote, totalVoters int) (hangman.Letter, bool) {
	counts := make(map[hangman.Letter]int)
	for _, v := range votes {
		counts[v.Letter]++
	}

	// We require a strict majority, meaning > 50%. E.g.
	// totalVoters == 2, majority == 2
	// totalVoters == 3, majority == 2
	// totalVoters == 4, majority == 3
	majority := totalVoters/2 + 1
	for l, cnt := range counts {
		if cnt >= majority {
			return l, true
		}
	}

	return 0, false
}
