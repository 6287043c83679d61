// Command wordgen-cli prints random target words, comma-separated, in the
// format benchmark's --words flag takes.
package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/bcspragu/Hangman/cryptorand"
	"github.com/bcspragu/Hangman/hangman"
	"github.com/bcspragu/Hangman/logging"
	"github.com/bcspragu/Hangman/sqldb"
	"github.com/bcspragu/Hangman/wordgen"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Init()

	var (
		count  = flag.Int("count", 10, "How many words to print")
		seed   = flag.Int64("seed", 0, "Seed for picking words, 0 means unpredictable")
		dbPath = flag.String("db_path", "", "Optional SQLite corpus to pick from, instead of the built-in list")
		list   = flag.String("list", "default", "Which word list in --db_path to use")
	)
	flag.Parse()

	corpus := hangman.Words
	if *dbPath != "" {
		db, err := sqldb.New(*dbPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize datastore")
		}
		words, err := db.Words(*list)
		db.Close()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load words")
		}
		corpus = make([]string, len(words))
		for i, w := range words {
			corpus[i] = string(w)
		}
	}

	r := cryptorand.New()
	if *seed != 0 {
		r = rand.New(rand.NewSource(*seed))
	}

	words, err := wordgen.Pick(r, corpus, *count)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to pick words")
	}

	fmt.Print(strings.Join(words, ","))
}
