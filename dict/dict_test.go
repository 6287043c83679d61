package dict

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/google/go-cmp/cmp"
)

func mustDict(t *testing.T, words ...string) *Dictionary {
	t.Helper()
	d, err := FromStrings(words)
	if err != nil {
		t.Fatalf("FromStrings: %v", err)
	}
	return d
}

func TestNew(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "words.txt")
	dat := "Apple\nbanana\n\nice cream\nr2d2\napple\ncherry\n"
	if err := os.WriteFile(file, []byte(dat), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	d, err := New(file)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []hangman.Word{"apple", "banana", "cherry"}
	if diff := cmp.Diff(want, d.Words()); diff != "" {
		t.Errorf("unexpected words (-want +got)\n%s", diff)
	}
	if !d.Valid("APPLE") || d.Valid("grape") || d.Valid("ice cream") {
		t.Error("Valid() gave the wrong answer")
	}
}

func TestNewMissingFile(t *testing.T) {
	d, err := New(filepath.Join(t.TempDir(), "nope.txt"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if d.Len() != 0 {
		t.Errorf("Len() = %d, want 0", d.Len())
	}
	// An empty dictionary lets every well-formed word through.
	if !d.Valid("anything") {
		t.Error("empty dictionary rejected a word")
	}
	if d.Valid("not a word") {
		t.Error("empty dictionary accepted a malformed word")
	}
}

func TestCandidates(t *testing.T) {
	d := mustDict(t, "apple", "ample", "angle", "apply", "maple", "dog", "apples")

	tests := []struct {
		desc    string
		pattern string
		guessed *hangman.Guesses
		want    []hangman.Word
	}{
		{
			desc:    "nothing guessed",
			pattern: "-----",
			guessed: hangman.NewGuesses(),
			want:    []hangman.Word{"apple", "ample", "angle", "apply", "maple"},
		},
		{
			desc:    "revealed e",
			pattern: "----e",
			guessed: hangman.NewGuesses('e'),
			want:    []hangman.Word{"apple", "ample", "angle", "maple"},
		},
		{
			desc:    "wrong guess rules words out",
			pattern: "a---e",
			guessed: hangman.NewGuesses('e', 'a', 'm'),
			want:    []hangman.Word{"apple", "angle"},
		},
		{
			desc:    "hidden position can't hold a guessed letter",
			pattern: "app-e",
			guessed: hangman.NewGuesses('a', 'p', 'e'),
			want:    []hangman.Word{"apple"},
		},
		{
			desc:    "no match",
			pattern: "--",
			guessed: hangman.NewGuesses(),
			want:    nil,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got := d.Candidates(test.pattern, test.guessed)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("unexpected candidates (-want +got)\n%s", diff)
			}
		})
	}
}

func TestSolverGuess(t *testing.T) {
	s := NewSolver(mustDict(t, "apple", "ample", "angle", "maple"), nil)

	tests := []struct {
		desc    string
		pattern string
		guessed *hangman.Guesses
		want    hangman.Letter
	}{
		// a, e, l are in all four words, e wins on frequency.
		{desc: "opening", pattern: "-----", guessed: hangman.NewGuesses(), want: 'e'},
		// p is in apple and ample, every other letter in at most one word.
		{desc: "after vowels and l", pattern: "a--le", guessed: hangman.NewGuesses('a', 'e', 'l'), want: 'p'},
		// Nothing in the dictionary is 3 letters long, so use frequency.
		{desc: "fallback", pattern: "---", guessed: hangman.NewGuesses('e'), want: 't'},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			got, err := s.Guess(test.pattern, test.guessed, 6)
			if err != nil {
				t.Fatalf("Guess: %v", err)
			}
			if got != test.want {
				t.Errorf("Guess() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestSolverNeverRepeats(t *testing.T) {
	s := NewSolver(mustDict(t, hangman.Words...), nil)

	guessed := hangman.NewGuesses()
	for i := 0; i < 26; i++ {
		l, err := s.Guess("--------", guessed, 6)
		if err != nil {
			t.Fatalf("Guess #%d: %v", i, err)
		}
		if !guessed.Add(l) {
			t.Fatalf("Guess #%d repeated %q", i, l)
		}
	}
}

func TestFromWordsNormalizes(t *testing.T) {
	d := FromWords([]hangman.Word{"Dog", "don't", "cat", "", "dog", " Cow "})

	if diff := cmp.Diff([]hangman.Word{"dog", "cat", "cow"}, d.Words()); diff != "" {
		t.Errorf("unexpected words (-want +got)\n%s", diff)
	}

	got, err := NewSolver(d, nil).Guess("---", hangman.NewGuesses(), 6)
	if err != nil {
		t.Fatalf("Guess: %v", err)
	}
	if !got.Valid() {
		t.Errorf("Guess() = %q, want a letter", got)
	}
}
