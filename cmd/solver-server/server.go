package main

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/bcspragu/Hangman/aiclient"
	"github.com/bcspragu/Hangman/hangman"
	"github.com/bcspragu/Hangman/httperr"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type Server struct {
	// Solvers aren't required to be safe for concurrent use.
	mu     sync.Mutex
	solver hangman.Solver

	mux        *mux.Router
	authSecret string
}

func newServer(solver hangman.Solver, authSecret string) *Server {
	srv := &Server{
		solver:     solver,
		authSecret: authSecret,
	}
	srv.initMux()
	return srv
}

func (s *Server) initMux() {
	m := mux.NewRouter()
	m.HandleFunc("/guess", s.handleError(s.serveGuess))
	s.mux = m
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) serveGuess(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return httperr.MethodNotAllowed("call to guess with bad method %q", r.Method)
	}
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return httperr.
			Unauthorized("no auth in guess request").
			WithMessage("no auth given")
	}
	if auth != s.authSecret {
		return httperr.
			Forbidden("bad auth secret in guess request").
			WithMessage("invalid auth")
	}

	var req aiclient.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return httperr.BadRequest("failed to decode guess request: %w", err).WithMessage("malformed request")
	}

	guessed := hangman.NewGuesses()
	for _, c := range req.Guessed {
		l, err := hangman.ParseLetter(c)
		if err != nil {
			return httperr.BadRequest("bad guessed letters %q: %w", req.Guessed, err).WithMessage("guessed must be letters")
		}
		guessed.Add(l)
	}

	s.mu.Lock()
	l, err := s.solver.Guess(req.Pattern, guessed, req.LivesRemaining)
	s.mu.Unlock()
	if err != nil {
		return httperr.Internal("solver failed: %w", err).WithMessage("solver failed")
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(&aiclient.GuessResponse{Letter: l.String()})
}

type handlerFunc func(w http.ResponseWriter, r *http.Request) error

func (s *Server) handleError(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		log.Error().Err(err).Msg("Request failed")

		code, userMsg := httperr.Extract(err)
		http.Error(w, userMsg, code)
	}
}
