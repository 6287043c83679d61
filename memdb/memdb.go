// Package memdb keeps simulation runs in memory, for the lifetime of a server.
package memdb

import (
	"fmt"
	"sync"
	"time"

	"github.com/bcspragu/Hangman/hangman"
)

type idNamespace string

const runID = idNamespace("run")

type DB struct {
	mu sync.RWMutex

	ids     map[idNamespace]int
	runs    map[hangman.RunID]*hangman.Run
	order   []hangman.RunID
	byOwner map[hangman.SessionID][]hangman.RunID

	now func() time.Time
}

var _ hangman.DB = (*DB)(nil)

func New() *DB {
	return &DB{
		ids:     make(map[idNamespace]int),
		runs:    make(map[hangman.RunID]*hangman.Run),
		byOwner: make(map[hangman.SessionID][]hangman.RunID),
		now:     time.Now,
	}
}

func (db *DB) NewRun(r *hangman.Run) (hangman.RunID, error) {
	if r == nil {
		return "", fmt.Errorf("no run given")
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	id := hangman.RunID(db.newID(runID))
	rc := r.Clone()
	rc.ID = id
	if rc.CreatedAt.IsZero() {
		rc.CreatedAt = db.now()
	}
	db.runs[id] = rc
	db.order = append(db.order, id)
	db.byOwner[rc.Owner] = append(db.byOwner[rc.Owner], id)

	return id, nil
}

func (db *DB) Run(id hangman.RunID) (*hangman.Run, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	r, ok := db.runs[id]
	if !ok {
		return nil, hangman.ErrRunNotFound
	}
	return r.Clone(), nil
}

// RunsFor returns the runs owned by the given session, oldest first.
func (db *DB) RunsFor(owner hangman.SessionID) ([]*hangman.Run, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	ids := db.byOwner[owner]
	out := make([]*hangman.Run, 0, len(ids))
	for _, id := range ids {
		out = append(out, db.runs[id].Clone())
	}
	return out, nil
}

func (db *DB) Results() (hangman.Report, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var out hangman.Report
	for _, id := range db.order {
		out = append(out, db.runs[id].Results.Clone()...)
	}
	return out, nil
}

func (db *DB) newID(ns idNamespace) string {
	idx := db.ids[ns]
	id := fmt.Sprintf("%s_%d", ns, idx)
	db.ids[ns]++
	return id
}
