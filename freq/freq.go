// Package freq implements the baseline solver, which always guesses the most
// common letter it hasn't tried yet.
package freq

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// English is the usual ordering of letters in English text, most common first.
const English = "etaoinshrdlcumwfgypbvkjxqz"

type Solver struct {
	order []hangman.Letter
	rank  [26]int
}

// New returns a solver that uses the English ordering.
func New() *Solver {
	s, err := FromOrder(English)
	if err != nil {
		// English is a constant, this can't happen.
		panic(err)
	}
	return s
}

// FromOrder builds a solver that guesses letters in the given order. Letters
// missing from the order are tried last, alphabetically.
func FromOrder(order string) (*Solver, error) {
	g := &hangman.Guesses{}
	for _, r := range order {
		l, err := hangman.ParseLetter(r)
		if err != nil {
			return nil, fmt.Errorf("bad letter ordering %q: %w", order, err)
		}
		if !g.Add(l) {
			return nil, fmt.Errorf("letter %q appears twice in ordering %q", l, order)
		}
	}
	for i := 0; i < len(hangman.Alphabet); i++ {
		g.Add(hangman.Letter(hangman.Alphabet[i]))
	}

	s := &Solver{order: g.Letters()}
	for i, l := range s.order {
		s.rank[l-'a'] = i
	}
	return s, nil
}

// Model is the on-disk format of a frequency model, a YAML document like:
//
//	letters:
//	  e: 12.7
//	  t: 9.1
type Model struct {
	Letters map[string]float64 `yaml:"letters"`
}

// Load reads a YAML frequency model from disk.
func Load(file string) (*Solver, error) {
	log.Info().Str("path", file).Msg("Opening frequency model...")
	f, err := os.Open(file)
	if err != nil {
		return nil, &hangman.SolverInitError{Path: file, Err: err}
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, &hangman.SolverInitError{Path: file, Err: err}
	}
	log.Info().Str("path", file).Str("order", s.String()).Msg("Read frequency model")
	return s, nil
}

// Parse reads a YAML frequency model.
func Parse(r io.Reader) (*Solver, error) {
	var m Model
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to parse frequency model: %w", err)
	}
	if len(m.Letters) == 0 {
		return nil, errors.New("frequency model has no letters")
	}

	type pair struct {
		Letter hangman.Letter
		Weight float64
	}
	var pairs []pair
	for k, w := range m.Letters {
		rs := []rune(k)
		if len(rs) != 1 {
			return nil, fmt.Errorf("frequency model key %q isn't a single letter", k)
		}
		l, err := hangman.ParseLetter(rs[0])
		if err != nil {
			return nil, fmt.Errorf("frequency model key %q: %w", k, err)
		}
		if w < 0 {
			return nil, fmt.Errorf("frequency model has negative weight %f for %q", w, k)
		}
		pairs = append(pairs, pair{l, w})
	}

	// Heaviest first, alphabetical among equals so the ordering is stable.
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Weight != pairs[j].Weight {
			return pairs[i].Weight > pairs[j].Weight
		}
		return pairs[i].Letter < pairs[j].Letter
	})

	order := make([]byte, len(pairs))
	for i, p := range pairs {
		order[i] = byte(p.Letter)
	}
	return FromOrder(string(order))
}

// Guess returns the most common letter that hasn't been guessed yet.
func (s *Solver) Guess(_ string, guessed *hangman.Guesses, _ int) (hangman.Letter, error) {
	for _, l := range s.order {
		if !guessed.Has(l) {
			return l, nil
		}
	}
	return 0, errors.New("every letter has already been guessed")
}

// Rank returns where the letter falls in the ordering, zero being the most
// common. Other solvers use it to break ties.
func (s *Solver) Rank(l hangman.Letter) int {
	if !l.Valid() {
		return len(s.order)
	}
	return s.rank[l-'a']
}

func (s *Solver) String() string {
	buf := make([]byte, len(s.order))
	for i, l := range s.order {
		buf[i] = byte(l)
	}
	return string(buf)
}
