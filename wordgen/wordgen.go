// Package wordgen picks target words for simulated games.
package wordgen

import (
	"fmt"
	"math/rand"

	"github.com/bcspragu/Hangman/hangman"
)

// Pick returns n distinct, well-formed words from corpus, in a random order
// drawn from r. Malformed and repeated corpus entries are ignored.
func Pick(r *rand.Rand, corpus []string, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("can't pick %d words", n)
	}

	seen := make(map[hangman.Word]struct{})
	var pool []string
	for _, c := range corpus {
		w, err := hangman.ParseWord(c)
		if err != nil {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		pool = append(pool, string(w))
	}
	if n > len(pool) {
		return nil, fmt.Errorf("asked for %d words, corpus only has %d distinct ones", n, len(pool))
	}

	out := make([]string, 0, n)
	for _, idx := range r.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out, nil
}
