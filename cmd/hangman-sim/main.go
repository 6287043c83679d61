// Command hangman-sim plays two solvers against the same word and reports how
// each of them did.
package main

import (
	"errors"
	"os"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/bcspragu/Hangman/logging"
	"github.com/bcspragu/Hangman/scoreboard"
	"github.com/bcspragu/Hangman/sim"
	"github.com/bcspragu/Hangman/solvers"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Init()

	var (
		model1   = flag.String("model1", "best_model1.bin", "The first solver, a model file or a name like 'freq', 'dict' or 'human'.")
		model2   = flag.String("model2", "best_model2.bin", "The second solver, same format as --model1.")
		word     = flag.String("word", "bhaskar", "The word both solvers have to guess.")
		verbose  = flag.Bool("verbose", true, "Log every guess as it's made.")
		maxLives = flag.Int("max_lives", hangman.DefaultMaxLives, "How many wrong guesses each solver gets.")
		dictFile = flag.String("dict_file", "", "Newline-separated candidate words, the built-in list is used if empty.")
		hint     = flag.String("hint", "", "A word the target is like, for word2vec solvers.")
	)
	flag.Parse()

	words, err := solvers.Words(*dictFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load candidate words")
	}
	opts := &solvers.Options{Words: words, Hint: *hint}

	var players []*sim.Player
	for _, desc := range []string{*model1, *model2} {
		s, err := solvers.Load(desc, opts)
		var initErr *hangman.SolverInitError
		if errors.As(err, &initErr) {
			log.Fatal().Err(initErr.Err).Str("path", initErr.Path).Msg("Failed to load model")
		} else if err != nil {
			log.Fatal().Err(err).Str("solver", desc).Msg("Failed to create solver")
		}
		players = append(players, &sim.Player{ID: solvers.ID(desc), Solver: s})
	}
	if players[0].ID == players[1].ID {
		players[0].ID += "_1"
		players[1].ID += "_2"
	}

	s := sim.New(&sim.Config{
		MaxLives: *maxLives,
		Verbose:  *verbose,
	})
	res1, res2, err := s.CompareSolvers(players[0], players[1], *word)
	if err != nil {
		log.Fatal().Err(err).Str("word", *word).Msg("Failed to run simulation")
	}

	results := []*hangman.GameResult{res1, res2}
	scoreboard.RenderResults(os.Stdout, results)
	scoreboard.Render(os.Stdout, scoreboard.Aggregate(results))
}
