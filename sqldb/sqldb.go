// Package sqldb stores named word lists in a SQLite database.
package sqldb

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/rs/zerolog/log"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	list TEXT NOT NULL,
	word TEXT NOT NULL,
	PRIMARY KEY (list, word)
);`

var errClosed = errors.New("sqldb: database is closed")

// DB implements hangman.Corpus, backed by a SQLite database.
// NOTE: Since the database doesn't support concurrent writers, we don't
// actually hold the *sql.DB in this struct, we force all callers to get a
// handle via channels.
type DB struct {
	dbChan   chan func(*sql.DB)
	doneChan chan struct{}
	closed   chan struct{}
}

var _ hangman.Corpus = (*DB)(nil)

// New creates a new *DB that is stored on disk at the given filename.
func New(fn string) (*DB, error) {
	sdb, err := sql.Open("sqlite3", fn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", fn, err)
	}
	if _, err := sdb.Exec(schema); err != nil {
		sdb.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	db := &DB{
		dbChan:   make(chan func(*sql.DB)),
		doneChan: make(chan struct{}),
		closed:   make(chan struct{}),
	}
	go db.run(sdb)
	return db, nil
}

// run handles all database calls, and ensures that only one thing is happening
// against the database at a time.
func (s *DB) run(sdb *sql.DB) {
	defer close(s.closed)
	for {
		select {
		case dbFn := <-s.dbChan:
			dbFn(sdb)
		case <-s.doneChan:
			sdb.Close()
			return
		}
	}
}

// Close stops the database loop. It must only be called once.
func (s *DB) Close() error {
	close(s.doneChan)
	<-s.closed
	return nil
}

// do runs fn against the database and waits for it to finish.
func (s *DB) do(fn func(*sql.DB) error) error {
	errC := make(chan error, 1)
	select {
	case s.dbChan <- func(sdb *sql.DB) { errC <- fn(sdb) }:
	case <-s.closed:
		return errClosed
	}
	return <-errC
}

// AddWords adds words to the named list, creating it if needed. Words are
// stored lowercased, and words already in the list are skipped. Nothing is
// added if any word is malformed.
func (s *DB) AddWords(list string, words []hangman.Word) error {
	if list == "" {
		return errors.New("no list name given")
	}
	parsed := make([]hangman.Word, len(words))
	for i, w := range words {
		pw, err := hangman.ParseWord(string(w))
		if err != nil {
			return fmt.Errorf("can't add to list %q: %w", list, err)
		}
		parsed[i] = pw
	}
	return s.do(func(sdb *sql.DB) error {
		tx, err := sdb.Begin()
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}
		stmt, err := tx.Prepare(`INSERT OR IGNORE INTO words (list, word) VALUES (?, ?)`)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, w := range parsed {
			if _, err := stmt.Exec(list, string(w)); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to insert %q: %w", w, err)
			}
		}
		return tx.Commit()
	})
}

// Words returns the words in a list in the order they were first added. Rows
// that aren't valid words, e.g. written by another tool, are skipped.
func (s *DB) Words(list string) ([]hangman.Word, error) {
	var out []hangman.Word
	err := s.do(func(sdb *sql.DB) error {
		rows, err := sdb.Query(`SELECT word FROM words WHERE list = ? ORDER BY rowid`, list)
		if err != nil {
			return fmt.Errorf("failed to query list %q: %w", list, err)
		}
		defer rows.Close()

		for rows.Next() {
			var w string
			if err := rows.Scan(&w); err != nil {
				return fmt.Errorf("failed to scan word: %w", err)
			}
			word, err := hangman.ParseWord(w)
			if err != nil {
				log.Warn().Str("list", list).Str("word", w).Msg("Skipping malformed word in corpus")
				continue
			}
			out = append(out, word)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("list %q: %w", list, hangman.ErrListNotFound)
	}
	return out, nil
}

// Lists returns the names of every list, sorted.
func (s *DB) Lists() ([]string, error) {
	var out []string
	err := s.do(func(sdb *sql.DB) error {
		rows, err := sdb.Query(`SELECT DISTINCT list FROM words ORDER BY list`)
		if err != nil {
			return fmt.Errorf("failed to query lists: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var l string
			if err := rows.Scan(&l); err != nil {
				return fmt.Errorf("failed to scan list: %w", err)
			}
			out = append(out, l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
