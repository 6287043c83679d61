// Package web serves solver comparisons over HTTP, and streams their progress
// over websockets.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/bcspragu/Hangman/httperr"
	"github.com/bcspragu/Hangman/hub"
	"github.com/bcspragu/Hangman/scoreboard"
	"github.com/bcspragu/Hangman/sim"
	"github.com/bcspragu/Hangman/wordgen"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const sessionCookie = "Session"

// Config holds configuration options for the server.
type Config struct {
	// Players are the two solvers every run compares. Each one is only used by
	// one request at a time.
	Players [2]*sim.Player
	// MaxLives is used when a run doesn't ask for a specific number.
	MaxLives int
	// Rand picks words for runs that don't name one.
	Rand *rand.Rand
	// Words are what those words are picked from. The built-in list is used
	// if empty.
	Words []hangman.Word
}

type Srv struct {
	sc       *securecookie.SecureCookie
	h        *hub.Hub
	mux      *mux.Router
	db       hangman.DB
	players  [2]*sim.Player
	maxLives int

	upgrader websocket.Upgrader

	corpus []string

	// rand.Rand isn't safe for concurrent use.
	rmu sync.Mutex
	r   *rand.Rand
}

// New returns an initialized server.
func New(db hangman.DB, cfg *Config, sc *securecookie.SecureCookie) (*Srv, error) {
	for i, p := range cfg.Players {
		if p == nil || p.Solver == nil {
			return nil, errors.New("both players must be given")
		}
		if i == 1 && p.ID == cfg.Players[0].ID {
			return nil, errors.New("players must have different IDs")
		}
	}
	if cfg.Rand == nil {
		return nil, errors.New("no source of randomness given")
	}

	corpus := hangman.Words
	if len(cfg.Words) > 0 {
		corpus = make([]string, len(cfg.Words))
		for i, w := range cfg.Words {
			corpus[i] = string(w)
		}
	}
	if _, err := wordgen.Pick(cfg.Rand, corpus, 1); err != nil {
		return nil, fmt.Errorf("no usable words to pick from: %w", err)
	}

	var players [2]*sim.Player
	for i, p := range cfg.Players {
		players[i] = &sim.Player{ID: p.ID, Solver: &lockedSolver{s: p.Solver}}
	}

	s := &Srv{
		sc:       sc,
		h:        hub.New(),
		db:       db,
		players:  players,
		maxLives: cfg.MaxLives,
		corpus:   corpus,
		r:        cfg.Rand,
	}
	if s.maxLives == 0 {
		s.maxLives = hangman.DefaultMaxLives
	}

	s.mux = s.initMux()

	return s, nil
}

func (s *Srv) initMux() *mux.Router {
	m := mux.NewRouter()
	// New session.
	m.HandleFunc("/api/session", s.handleError(s.serveCreateSession)).Methods("POST")
	// New run.
	m.HandleFunc("/api/run", s.handleError(s.serveCreateRun)).Methods("POST")
	// Get run.
	m.HandleFunc("/api/run/{id}", s.handleError(s.serveRun)).Methods("GET")
	// This session's runs.
	m.HandleFunc("/api/runs", s.handleError(s.serveRuns)).Methods("GET")
	// Standings over every run so far.
	m.HandleFunc("/api/scoreboard", s.handleError(s.serveScoreboard)).Methods("GET")

	// WebSocket handler for watching runs as they're played.
	m.HandleFunc("/api/ws", s.handleError(s.serveData)).Methods("GET")

	return m
}

func (s *Srv) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Srv) serveCreateSession(w http.ResponseWriter, r *http.Request) error {
	sID, err := s.session(w, r)
	if err != nil {
		return err
	}

	jsonResp(w, struct {
		Success bool `json:"success"`
		// Only for display, the cookie is what identifies the session.
		ID string `json:"id"`
	}{true, string(sID)})
	return nil
}

type createRunRequest struct {
	Word     string `json:"word"`
	MaxLives int    `json:"max_lives"`
}

func (s *Srv) serveCreateRun(w http.ResponseWriter, r *http.Request) error {
	var req createRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httperr.BadRequest("failed to decode run request: %w", err).WithMessage("malformed request")
	}

	if req.Word == "" {
		s.rmu.Lock()
		picked, err := wordgen.Pick(s.r, s.corpus, 1)
		s.rmu.Unlock()
		if err != nil {
			return httperr.Internal("failed to pick a word: %w", err)
		}
		req.Word = picked[0]
	}
	word, err := hangman.ParseWord(req.Word)
	if err != nil {
		return httperr.BadRequest("bad word %q: %w", req.Word, err).WithMessage("word must be one or more letters")
	}

	maxLives := req.MaxLives
	if maxLives == 0 {
		maxLives = s.maxLives
	}
	if maxLives < 0 {
		return httperr.BadRequest("bad lives %d", maxLives).WithMessage("max_lives must be positive")
	}

	sID, err := s.session(w, r)
	if err != nil {
		return err
	}

	simulator := sim.New(&sim.Config{
		MaxLives: maxLives,
		Observer: &hubObserver{h: s.h, sID: sID, word: word},
	})
	res1, res2, err := simulator.CompareSolvers(s.players[0], s.players[1], string(word))
	if err != nil {
		return httperr.Internal("failed to compare solvers: %w", err)
	}

	run := &hangman.Run{
		Owner:    sID,
		Word:     word,
		MaxLives: maxLives,
		Results:  hangman.Report{res1, res2},
	}
	id, err := s.db.NewRun(run)
	if err != nil {
		return httperr.Internal("failed to store run: %w", err)
	}
	if run, err = s.db.Run(id); err != nil {
		return httperr.Internal("failed to load run %q: %w", id, err)
	}

	if err := s.h.ToSession(sID, &RunCompleteMsg{Run: run}); err != nil {
		log.Error().Err(err).Str("run", string(id)).Msg("Failed to send run to watchers")
	}

	log.Info().
		Str("run", string(id)).
		Str("word", string(word)).
		Str(string(res1.SolverID), string(res1.Outcome)).
		Str(string(res2.SolverID), string(res2.Outcome)).
		Msg("Run complete")

	jsonResp(w, run)
	return nil
}

func (s *Srv) serveRun(w http.ResponseWriter, r *http.Request) error {
	id, ok := mux.Vars(r)["id"]
	if !ok {
		return httperr.BadRequest("no run ID given").WithMessage("no run ID given")
	}

	run, err := s.db.Run(hangman.RunID(id))
	if errors.Is(err, hangman.ErrRunNotFound) {
		return httperr.NotFound("run %q: %w", id, err).WithMessage("run not found")
	} else if err != nil {
		return httperr.Internal("failed to load run %q: %w", id, err)
	}

	jsonResp(w, run)
	return nil
}

func (s *Srv) serveRuns(w http.ResponseWriter, r *http.Request) error {
	sID, ok := s.loadSession(r)
	if !ok {
		// No session, so no runs.
		jsonResp(w, []*hangman.Run{})
		return nil
	}

	runs, err := s.db.RunsFor(sID)
	if err != nil {
		return httperr.Internal("failed to load runs: %w", err)
	}

	jsonResp(w, runs)
	return nil
}

func (s *Srv) serveScoreboard(w http.ResponseWriter, r *http.Request) error {
	results, err := s.db.Results()
	if err != nil {
		return httperr.Internal("failed to load results: %w", err)
	}

	jsonResp(w, scoreboard.Aggregate(results))
	return nil
}

func (s *Srv) serveData(w http.ResponseWriter, r *http.Request) error {
	sID, ok := s.loadSession(r)
	if !ok {
		return httperr.Unauthorized("no session for websocket").WithMessage("no session, create one first")
	}

	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		log.Error().Err(err).Msg("Failed to upgrade connection")
		return nil
	}

	s.h.Register(c, sID)
	return nil
}

// lockedSolver serializes calls to a solver shared between requests.
type lockedSolver struct {
	mu sync.Mutex
	s  hangman.Solver
}

func (l *lockedSolver) Guess(pattern string, guessed *hangman.Guesses, livesRemaining int) (hangman.Letter, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.s.Guess(pattern, guessed, livesRemaining)
}

// hubObserver forwards a run's progress to the websockets of whoever asked
// for it.
type hubObserver struct {
	h    *hub.Hub
	sID  hangman.SessionID
	word hangman.Word
}

func (o *hubObserver) OnGuess(ev *sim.Event) {
	if err := o.h.ToSession(o.sID, &GuessMsg{Word: o.word, Event: ev}); err != nil {
		log.Error().Err(err).Msg("Failed to send guess to watchers")
	}
}

func (o *hubObserver) OnGameEnd(res *hangman.GameResult) {
	if err := o.h.ToSession(o.sID, &GameEndMsg{Result: res}); err != nil {
		log.Error().Err(err).Msg("Failed to send game result to watchers")
	}
}

// session returns the caller's session, starting a new one if they don't
// have one yet.
func (s *Srv) session(w http.ResponseWriter, r *http.Request) (hangman.SessionID, error) {
	if sID, ok := s.loadSession(r); ok {
		return sID, nil
	}

	sID := hangman.SessionID(uuid.NewString())
	encoded, err := s.sc.Encode("session", sID)
	if err != nil {
		return "", httperr.Internal("failed to encode session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
	})
	return sID, nil
}

func (s *Srv) loadSession(r *http.Request) (hangman.SessionID, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}

	var sID hangman.SessionID
	if err := s.sc.Decode("session", c.Value, &sID); err != nil {
		// If we can't parse it, assume it's from an old key and treat it as
		// no session.
		return "", false
	}
	return sID, true
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Srv) handleError(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		code, userMsg := httperr.Extract(err)
		log.Error().Err(err).Int("code", code).Str("path", r.URL.Path).Msg("Request failed")
		http.Error(w, userMsg, code)
	}
}

// LoadKeys loads the cookie keys from dir, generating and saving them if they
// don't exist yet.
func LoadKeys(dir string) (*securecookie.SecureCookie, error) {
	hashKey, err := loadOrGenKey(filepath.Join(dir, "hashKey"))
	if err != nil {
		return nil, err
	}

	blockKey, err := loadOrGenKey(filepath.Join(dir, "blockKey"))
	if err != nil {
		return nil, err
	}

	return securecookie.New(hashKey, blockKey), nil
}

func loadOrGenKey(name string) ([]byte, error) {
	f, err := os.ReadFile(name)
	if err == nil {
		return f, nil
	}

	dat := securecookie.GenerateRandomKey(32)
	if dat == nil {
		return nil, errors.New("failed to generate key")
	}

	if err := os.WriteFile(name, dat, 0600); err != nil {
		return nil, errors.New("error writing file")
	}
	return dat, nil
}

func jsonResp(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("jsonResp")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
