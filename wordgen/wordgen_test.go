package wordgen

import (
	"math/rand"
	"testing"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/google/go-cmp/cmp"
)

func TestPick(t *testing.T) {
	got, err := Pick(rand.New(rand.NewSource(0)), hangman.Words, 25)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if len(got) != 25 {
		t.Fatalf("got %d words, want 25", len(got))
	}

	seen := make(map[string]bool)
	for _, w := range got {
		if seen[w] {
			t.Errorf("%q was picked twice", w)
		}
		seen[w] = true
		if _, err := hangman.ParseWord(w); err != nil {
			t.Errorf("picked malformed word %q: %v", w, err)
		}
	}

	// Same seed, same words.
	again, err := Pick(rand.New(rand.NewSource(0)), hangman.Words, 25)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("same seed gave different words (-first +second)\n%s", diff)
	}
}

func TestPickFiltersCorpus(t *testing.T) {
	corpus := []string{"Apple", "apple", "", "two words", "kiwi", "x-ray"}

	got, err := Pick(rand.New(rand.NewSource(1)), corpus, 2)
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	want := map[string]bool{"apple": true, "kiwi": true}
	for _, w := range got {
		if !want[w] {
			t.Errorf("unexpected word %q", w)
		}
		delete(want, w)
	}

	if _, err := Pick(rand.New(rand.NewSource(1)), corpus, 3); err == nil {
		t.Error("Pick should fail when the corpus has too few distinct words")
	}
	if _, err := Pick(rand.New(rand.NewSource(1)), corpus, -1); err == nil {
		t.Error("Pick should fail on a negative count")
	}
}
