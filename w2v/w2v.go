// Package w2v implements a solver backed by a word2vec model. The model's
// vocabulary decides which dictionary words are plausible targets, and an
// optional hint word (a category like "animal") weights each of them by how
// similar it is to the hint.
package w2v

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"code.sajari.com/word2vec"
	"github.com/bcspragu/Hangman/dict"
	"github.com/bcspragu/Hangman/freq"
	"github.com/bcspragu/Hangman/hangman"
	"github.com/rs/zerolog/log"
)

// minWeight keeps words that are dissimilar to the hint in play, they're just
// much less likely.
const minWeight = 0.05

type AI struct {
	model    *word2vec.Model
	dict     *dict.Dictionary
	weights  map[hangman.Word]float64
	fallback *freq.Solver
}

// New loads a binary word2vec model from disk and builds a solver over the
// given words. Any failure is reported as a *hangman.SolverInitError.
func New(file string, words []hangman.Word, hint string) (*AI, error) {
	log.Info().Str("path", file).Msg("Opening w2v model...")
	f, err := os.Open(file)
	if err != nil {
		return nil, &hangman.SolverInitError{Path: file, Err: err}
	}
	defer f.Close()

	log.Info().Str("path", file).Msg("Reading w2v model...")
	model, err := word2vec.FromReader(f)
	if err != nil {
		return nil, &hangman.SolverInitError{Path: file, Err: fmt.Errorf("failed to parse model: %w", err)}
	}
	log.Info().Int("size", model.Size()).Int("dim", model.Dim()).Msg("Read w2v model")

	ai, err := FromModel(model, words, hint)
	if err != nil {
		return nil, &hangman.SolverInitError{Path: file, Err: err}
	}
	return ai, nil
}

// FromModel builds a solver from an already loaded model.
func FromModel(model *word2vec.Model, words []hangman.Word, hint string) (*AI, error) {
	// Normalizes and drops malformed words.
	words = dict.FromWords(words).Words()
	strs := make([]string, len(words))
	for i, w := range words {
		strs[i] = string(w)
	}
	known := model.Map(strs)

	var vocab []hangman.Word
	for _, w := range words {
		if _, ok := known[string(w)]; ok {
			vocab = append(vocab, w)
		}
	}
	if len(vocab) == 0 {
		return nil, fmt.Errorf("none of the %d words are in the model's vocabulary", len(words))
	}

	ai := &AI{
		model:    model,
		dict:     dict.FromWords(vocab),
		weights:  make(map[hangman.Word]float64),
		fallback: freq.New(),
	}

	hint = strings.ToLower(strings.TrimSpace(hint))
	if hint == "" {
		return ai, nil
	}
	if _, ok := model.Map([]string{hint})[hint]; !ok {
		return nil, fmt.Errorf("hint %q isn't in the model's vocabulary", hint)
	}
	for _, w := range ai.dict.Words() {
		sim, err := ai.similarity(hint, string(w))
		if err != nil {
			return nil, fmt.Errorf("failed to get similarity of %q and %q: %w", hint, w, err)
		}
		ai.weights[w] = float64(sim)
	}
	log.Info().Str("hint", hint).Int("words", len(ai.weights)).Msg("Weighted vocabulary by hint")

	return ai, nil
}

// Vocabulary returns the words the solver considers.
func (ai *AI) Vocabulary() []hangman.Word {
	return ai.dict.Words()
}

func (ai *AI) Guess(pattern string, guessed *hangman.Guesses, lives int) (hangman.Letter, error) {
	cands := ai.dict.Candidates(pattern, guessed)
	if l, ok := dict.Best(dict.LetterCounts(cands, guessed, ai.weight), ai.fallback); ok {
		return l, nil
	}
	return ai.fallback.Guess(pattern, guessed, lives)
}

func (ai *AI) weight(w hangman.Word) float64 {
	sim, ok := ai.weights[w]
	if !ok {
		// No hint was given.
		return 1
	}
	if sim < 0 {
		sim = 0
	}
	return minWeight + sim
}

// Match is a vocabulary word and how similar it is to some hints.
type Match struct {
	Word  hangman.Word
	Score float32
}

// Closest returns the n vocabulary words most similar to the sum of the
// hints, best first. With omitSubstrings, words that contain a hint or are
// contained by one are skipped, they're usually just other forms of it.
func (ai *AI) Closest(hints []string, n int, omitSubstrings bool) ([]Match, error) {
	if len(hints) == 0 {
		return nil, fmt.Errorf("no hints given")
	}
	if n <= 0 {
		return nil, fmt.Errorf("asked for %d matches, must be positive", n)
	}
	expr := word2vec.Expr{}
	normed := make([]string, len(hints))
	for i, h := range hints {
		h = strings.ToLower(strings.TrimSpace(h))
		if _, ok := ai.model.Map([]string{h})[h]; !ok {
			return nil, fmt.Errorf("hint %q isn't in the model's vocabulary", h)
		}
		normed[i] = h
		expr.Add(1, h)
	}

	var matches []Match
	for _, w := range ai.dict.Words() {
		if omitSubstrings && overlaps(string(w), normed) {
			continue
		}
		score, err := ai.model.Cos(expr, exp(string(w)))
		if err != nil {
			return nil, fmt.Errorf("failed to score %q: %w", w, err)
		}
		matches = append(matches, Match{Word: w, Score: score})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Word < matches[j].Word
	})
	if len(matches) > n {
		matches = matches[:n]
	}
	return matches, nil
}

func overlaps(w string, hints []string) bool {
	for _, h := range hints {
		if strings.Contains(w, h) || strings.Contains(h, w) {
			return true
		}
	}
	return false
}

// similarity returns the cosine similarity of the two input words.
func (ai *AI) similarity(a, b string) (float32, error) {
	s, err := ai.model.Cos(exp(a), exp(b))
	if err != nil {
		return 0, fmt.Errorf("failed to determine similarity: %w", err)
	}
	return s, nil
}

func exp(w string) word2vec.Expr {
	expr := word2vec.Expr{}
	expr.Add(1, w)
	return expr
}
