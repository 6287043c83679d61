package sqldb

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/google/go-cmp/cmp"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "corpus.db"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWords(t *testing.T) {
	db := newDB(t)

	if err := db.AddWords("fruit", []hangman.Word{"kiwi", "apple", "kiwi"}); err != nil {
		t.Fatalf("AddWords: %v", err)
	}
	if err := db.AddWords("fruit", []hangman.Word{"apple", "mango"}); err != nil {
		t.Fatalf("AddWords: %v", err)
	}
	if err := db.AddWords("animals", []hangman.Word{"zebra"}); err != nil {
		t.Fatalf("AddWords: %v", err)
	}

	got, err := db.Words("fruit")
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if diff := cmp.Diff([]hangman.Word{"kiwi", "apple", "mango"}, got); diff != "" {
		t.Errorf("unexpected words (-want +got)\n%s", diff)
	}

	lists, err := db.Lists()
	if err != nil {
		t.Fatalf("Lists: %v", err)
	}
	if diff := cmp.Diff([]string{"animals", "fruit"}, lists); diff != "" {
		t.Errorf("unexpected lists (-want +got)\n%s", diff)
	}
}

func TestWordsMissingList(t *testing.T) {
	db := newDB(t)
	if _, err := db.Words("nope"); !errors.Is(err, hangman.ErrListNotFound) {
		t.Errorf("Words(nope) = %v, want ErrListNotFound", err)
	}
	if err := db.AddWords("", []hangman.Word{"apple"}); err == nil {
		t.Error("AddWords with no list name should fail")
	}
}

func TestPersists(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "corpus.db")

	db, err := New(fn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.AddWords("fruit", []hangman.Word{"apple"}); err != nil {
		t.Fatalf("AddWords: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := db.Words("fruit"); err == nil {
		t.Error("Words on a closed DB should fail")
	}

	db, err = New(fn)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	got, err := db.Words("fruit")
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if diff := cmp.Diff([]hangman.Word{"apple"}, got); diff != "" {
		t.Errorf("unexpected words after reopening (-want +got)\n%s", diff)
	}
}

func TestMalformedWords(t *testing.T) {
	db := newDB(t)

	if err := db.AddWords("pets", []hangman.Word{"Dog", "cat"}); err != nil {
		t.Fatalf("AddWords: %v", err)
	}
	if err := db.AddWords("pets", []hangman.Word{"cow", "don't"}); !errors.Is(err, hangman.ErrInvalidWord) {
		t.Errorf("AddWords with a malformed word = %v, want ErrInvalidWord", err)
	}

	// Rows written by something other than AddWords.
	err := db.do(func(sdb *sql.DB) error {
		_, err := sdb.Exec(`INSERT INTO words (list, word) VALUES ('pets', 'Hamster'), ('pets', 'guinea pig')`)
		return err
	})
	if err != nil {
		t.Fatalf("inserting raw rows: %v", err)
	}

	got, err := db.Words("pets")
	if err != nil {
		t.Fatalf("Words: %v", err)
	}
	if diff := cmp.Diff([]hangman.Word{"dog", "cat", "hamster"}, got); diff != "" {
		t.Errorf("unexpected words (-want +got)\n%s", diff)
	}
}
