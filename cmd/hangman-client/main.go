// Command hangman-client asks a hangman-server to run comparisons, and
// follows along as the games are played.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bcspragu/Hangman/client"
	"github.com/bcspragu/Hangman/logging"
	"github.com/bcspragu/Hangman/scoreboard"
	"github.com/bcspragu/Hangman/web"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Init()

	var (
		scheme   = flag.String("scheme", "http", "Scheme of the server, http or https")
		addr     = flag.String("server_addr", "localhost:8080", "Address of the server")
		wordList = flag.String("words", "", "Comma-separated words to run, a random word is used if empty.")
		maxLives = flag.Int("max_lives", 0, "Wrong guesses per game, 0 means the server's default.")
		watch    = flag.Bool("watch", true, "Print every guess as it's made.")
	)
	flag.Parse()

	c, err := client.New(*scheme, *addr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create client")
	}
	if _, err := c.CreateSession(); err != nil {
		log.Fatal().Err(err).Msg("failed to create session")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *watch {
		connected := make(chan struct{})
		go func() {
			err := c.Watch(ctx, client.WSHooks{
				OnConnect: func() { close(connected) },
				OnGuess: func(m *web.GuessMsg) {
					hit := "miss"
					if m.Hit {
						hit = "hit"
					}
					fmt.Printf("[%s] %s: %s (%s) -> %s, %d lives left\n", m.Word, m.SolverID, m.Letter, hit, m.Pattern, m.LivesRemaining)
				},
				OnGameEnd: func(m *web.GameEndMsg) {
					fmt.Printf("[%s] %s: %s after %d guesses\n", m.Result.Word, m.Result.SolverID, m.Result.Outcome, m.Result.GuessesUsed)
				},
			})
			if err != nil {
				log.Error().Err(err).Msg("stopped watching")
			}
		}()
		select {
		case <-connected:
		case <-time.After(10 * time.Second):
			log.Fatal().Msg("timed out connecting to the server")
		}
	}

	words := []string{""}
	if *wordList != "" {
		words = strings.Split(*wordList, ",")
	}
	for _, w := range words {
		run, err := c.CreateRun(w, *maxLives)
		if err != nil {
			log.Fatal().Err(err).Str("word", w).Msg("failed to create run")
		}
		log.Info().Str("run", string(run.ID)).Str("word", string(run.Word)).Msg("Run complete")
	}

	runs, err := c.Runs()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load runs")
	}
	for _, run := range runs {
		scoreboard.RenderResults(os.Stdout, run.Results)
	}

	standings, err := c.Scoreboard()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load scoreboard")
	}
	fmt.Println("Server scoreboard:")
	scoreboard.Render(os.Stdout, standings)
}
