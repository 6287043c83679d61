// Command corpus-load adds the words in a newline-separated file to a named
// list in the SQLite corpus.
package main

import (
	"fmt"

	"github.com/bcspragu/Hangman/dict"
	"github.com/bcspragu/Hangman/logging"
	"github.com/bcspragu/Hangman/sqldb"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Init()

	var (
		dbPath   = flag.String("db_path", "hangman.db", "Path to the SQLite DB file")
		list     = flag.String("list", "default", "Name of the word list to add to")
		wordFile = flag.String("word_file", "", "Newline-separated words to load")
		show     = flag.Bool("show", false, "Print the lists in the DB and exit")
	)
	flag.Parse()

	db, err := sqldb.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize datastore")
	}
	defer db.Close()

	if *show {
		lists, err := db.Lists()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load lists")
		}
		for _, l := range lists {
			words, err := db.Words(l)
			if err != nil {
				log.Fatal().Err(err).Str("list", l).Msg("failed to load words")
			}
			fmt.Printf("%s\t%d words\n", l, len(words))
		}
		return
	}

	if *wordFile == "" {
		log.Fatal().Msg("--word_file must be provided")
	}

	// A missing file is an empty dictionary, which isn't worth loading.
	d, err := dict.New(*wordFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read words")
	}
	if d.Len() == 0 {
		log.Fatal().Str("path", *wordFile).Msg("no words to load")
	}

	if err := db.AddWords(*list, d.Words()); err != nil {
		log.Fatal().Err(err).Msg("failed to add words")
	}
	log.Info().Int("words", d.Len()).Str("list", *list).Msg("Loaded words")
}
