package consensus

import (
	"errors"
	"testing"

	"github.com/bcspragu/Hangman/hangman"
)

// fixed always guesses the same letter, or fails.
type fixed struct {
	l   hangman.Letter
	err error
}

func (f fixed) Guess(string, *hangman.Guesses, int) (hangman.Letter, error) {
	return f.l, f.err
}

func TestGuess(t *testing.T) {
	boom := errors.New("model fell over")

	tests := []struct {
		desc    string
		members []hangman.Solver
		guessed *hangman.Guesses
		want    hangman.Letter
		wantErr bool
	}{
		{
			desc:    "single member",
			members: []hangman.Solver{fixed{l: 'e'}},
			want:    'e',
		},
		{
			desc:    "majority wins over first member",
			members: []hangman.Solver{fixed{l: 'a'}, fixed{l: 'e'}, fixed{l: 'e'}},
			want:    'e',
		},
		{
			desc:    "no majority, first member decides",
			members: []hangman.Solver{fixed{l: 'a'}, fixed{l: 'e'}, fixed{l: 't'}},
			want:    'a',
		},
		{
			desc:    "two way tie isn't a majority",
			members: []hangman.Solver{fixed{l: 's'}, fixed{l: 'e'}, fixed{l: 'e'}, fixed{l: 's'}},
			want:    's',
		},
		{
			desc:    "failing member loses its vote",
			members: []hangman.Solver{fixed{err: boom}, fixed{l: 't'}},
			want:    't',
		},
		{
			desc:    "repeat guess loses its vote",
			members: []hangman.Solver{fixed{l: 'e'}, fixed{l: 'o'}},
			guessed: hangman.NewGuesses('e'),
			want:    'o',
		},
		{
			desc:    "nobody usable",
			members: []hangman.Solver{fixed{err: boom}, fixed{l: '?'}},
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			g, err := New(test.members...)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			guessed := test.guessed
			if guessed == nil {
				guessed = hangman.NewGuesses()
			}

			got, err := g.Guess("-----", guessed, 6)
			if test.wantErr {
				if err == nil {
					t.Fatalf("Guess() = %q, want an error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Guess: %v", err)
			}
			if got != test.want {
				t.Errorf("Guess() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	if _, err := New(); err == nil {
		t.Error("New() with no members should fail")
	}
	if _, err := New(fixed{l: 'a'}, nil); err == nil {
		t.Error("New() with a nil member should fail")
	}
}
