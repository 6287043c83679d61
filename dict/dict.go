package dict

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/rs/zerolog/log"
)

type Dictionary struct {
	words []hangman.Word
	index map[hangman.Word]struct{}
	// byLen groups words by length, since that's the first thing every pattern
	// filters on.
	byLen map[int][]hangman.Word
}

// New loads a newline-separated dictionary file. Lines that aren't valid
// words (digits, punctuation, multiple words) are skipped.
func New(file string) (*Dictionary, error) {
	log.Info().Str("path", file).Msg("Opening dictionary...")
	f, err := os.Open(file)
	if os.IsNotExist(err) {
		// If the dictionary file doesn't exist, we just start with no words.
		log.Warn().Str("path", file).Msg("Dictionary doesn't exist, will allow all words.")
		return FromWords(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary file %q: %w", file, err)
	}
	defer f.Close()

	log.Info().Msg("Reading dictionary...")
	var words []hangman.Word
	skipped := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w, err := hangman.ParseWord(sc.Text())
		if err != nil {
			skipped++
			continue
		}
		words = append(words, w)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary: %w", err)
	}
	d := FromWords(words)
	log.Info().Int("words", d.Len()).Int("skipped", skipped).Msg("Read dictionary")

	return d, nil
}

// FromWords builds a dictionary out of words. Words are normalized the way
// ParseWord does it, ones that still aren't valid are dropped, as are
// duplicates.
func FromWords(words []hangman.Word) *Dictionary {
	d := &Dictionary{
		index: make(map[hangman.Word]struct{}),
		byLen: make(map[int][]hangman.Word),
	}
	dropped := 0
	for _, raw := range words {
		w, err := hangman.ParseWord(string(raw))
		if err != nil {
			dropped++
			continue
		}
		if _, ok := d.index[w]; ok {
			continue
		}
		d.index[w] = struct{}{}
		d.words = append(d.words, w)
		d.byLen[len(w)] = append(d.byLen[len(w)], w)
	}
	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Msg("Dropped malformed dictionary words")
	}
	return d
}

// FromStrings parses every string into a word, failing on the first one that
// isn't valid.
func FromStrings(strs []string) (*Dictionary, error) {
	words := make([]hangman.Word, len(strs))
	for i, s := range strs {
		w, err := hangman.ParseWord(s)
		if err != nil {
			return nil, err
		}
		words[i] = w
	}
	return FromWords(words), nil
}

// Valid returns if the given word is in the dictionary. If the dictionary
// has no words in it, consider all well-formed words valid.
func (d *Dictionary) Valid(word string) bool {
	w, err := hangman.ParseWord(word)
	if err != nil {
		return false
	}
	if len(d.words) == 0 {
		return true
	}
	_, valid := d.index[w]
	return valid
}

func (d *Dictionary) Len() int {
	return len(d.words)
}

// Words returns every word in the dictionary, in the order they were added.
func (d *Dictionary) Words() []hangman.Word {
	out := make([]hangman.Word, len(d.words))
	copy(out, d.words)
	return out
}

// Candidates returns the words that could still be the target, given the
// masked pattern and the letters guessed so far. A candidate has to agree
// with every revealed position, and can't have a guessed letter anywhere the
// pattern still hides, since guessing it would have revealed it.
func (d *Dictionary) Candidates(pattern string, guessed *hangman.Guesses) []hangman.Word {
	var out []hangman.Word
	for _, w := range d.byLen[len(pattern)] {
		if Matches(w, pattern, guessed) {
			out = append(out, w)
		}
	}
	return out
}

// Matches reports whether w is consistent with the pattern and guesses.
func Matches(w hangman.Word, pattern string, guessed *hangman.Guesses) bool {
	if len(w) != len(pattern) {
		return false
	}
	for i := 0; i < len(w); i++ {
		p, c := pattern[i], w[i]
		if p == hangman.Placeholder {
			if guessed.Has(hangman.Letter(c)) {
				return false
			}
			continue
		}
		if p != c {
			return false
		}
	}
	return true
}

// LetterCounts returns, for each un-guessed letter, the total weight of the
// candidates containing it. A nil weight function weighs every candidate as 1.
func LetterCounts(cands []hangman.Word, guessed *hangman.Guesses, weight func(hangman.Word) float64) map[hangman.Letter]float64 {
	counts := make(map[hangman.Letter]float64)
	for _, w := range cands {
		wt := 1.0
		if weight != nil {
			wt = weight(w)
		}
		var seen [26]bool
		for i := 0; i < len(w); i++ {
			l := hangman.Letter(w[i])
			if guessed.Has(l) || seen[l-'a'] {
				continue
			}
			seen[l-'a'] = true
			counts[l] += wt
		}
	}
	return counts
}

// Ranker orders letters when weights are tied. *freq.Solver implements it.
type Ranker interface {
	Rank(hangman.Letter) int
}

// Best returns the letter with the highest count, using the ranker to break
// ties. It returns false if counts is empty.
func Best(counts map[hangman.Letter]float64, r Ranker) (hangman.Letter, bool) {
	if len(counts) == 0 {
		return 0, false
	}
	ls := make([]hangman.Letter, 0, len(counts))
	for l := range counts {
		ls = append(ls, l)
	}
	sort.Slice(ls, func(i, j int) bool {
		ci, cj := counts[ls[i]], counts[ls[j]]
		if ci != cj {
			return ci > cj
		}
		return r.Rank(ls[i]) < r.Rank(ls[j])
	})
	return ls[0], true
}
