// Command solver-server serves a single solver over HTTP, so it can be played
// remotely with a "remote:host:port" solver.
package main

import (
	"net/http"

	"github.com/bcspragu/Hangman/logging"
	"github.com/bcspragu/Hangman/solvers"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Init()

	var (
		addr       = flag.String("addr", ":8080", "HTTP service address")
		solver     = flag.String("solver", "", "The solver to serve, see solvers.Load for the format.")
		authSecret = flag.String("auth_secret", "", "Secret string that callers must provide")
		dictFile   = flag.String("dict_file", "", "Newline-separated candidate words, the built-in list is used if empty.")
		hint       = flag.String("hint", "", "A word targets are like, for word2vec solvers.")
	)
	flag.Parse()

	if *solver == "" {
		log.Fatal().Msg("--solver must be provided")
	}

	if *authSecret == "" {
		log.Fatal().Msg("--auth_secret must be provided")
	}

	words, err := solvers.Words(*dictFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load candidate words")
	}

	s, err := solvers.Load(*solver, &solvers.Options{Words: words, Hint: *hint})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load solver")
	}

	srv := newServer(s, *authSecret)

	log.Info().Str("addr", *addr).Str("solver", *solver).Msg("Solver server is running")
	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatal().Err(err).Msg("error from server")
	}
}
