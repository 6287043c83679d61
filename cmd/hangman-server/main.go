// Command hangman-server serves solver comparisons over HTTP.
package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bcspragu/Hangman/cryptorand"
	"github.com/bcspragu/Hangman/hangman"
	"github.com/bcspragu/Hangman/logging"
	"github.com/bcspragu/Hangman/memdb"
	"github.com/bcspragu/Hangman/sim"
	"github.com/bcspragu/Hangman/solvers"
	"github.com/bcspragu/Hangman/sqldb"
	"github.com/bcspragu/Hangman/web"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Init()

	var (
		addr     = flag.String("addr", ":8080", "HTTP service address")
		model1   = flag.String("model1", "freq", "The first solver, see solvers.Load for the format.")
		model2   = flag.String("model2", "dict", "The second solver.")
		maxLives = flag.Int("max_lives", hangman.DefaultMaxLives, "Default number of wrong guesses per game.")
		dictFile = flag.String("dict_file", "", "Newline-separated candidate words, the built-in list is used if empty.")
		dbPath   = flag.String("db_path", "", "Optional SQLite corpus to take candidate words from, instead of --dict_file.")
		list     = flag.String("list", "default", "Which word list in --db_path to use.")
		hint     = flag.String("hint", "", "A word targets are like, for word2vec solvers.")
		keyDir   = flag.String("key_dir", ".", "Directory the cookie keys are stored in.")
		secret   = flag.String("remote_secret", "", "Secret for remote solvers.")
		timeout  = flag.Duration("remote_timeout", 10*time.Second, "Per-guess timeout for remote solvers.")
	)
	flag.Parse()

	words, err := loadWords(*dictFile, *dbPath, *list)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load candidate words")
	}

	opts := &solvers.Options{
		Words:         words,
		Hint:          *hint,
		RemoteSecret:  *secret,
		RemoteTimeout: *timeout,
	}
	var players [2]*sim.Player
	for i, desc := range []string{*model1, *model2} {
		s, err := solvers.Load(desc, opts)
		if err != nil {
			log.Fatal().Err(err).Str("solver", desc).Msg("failed to create solver")
		}
		players[i] = &sim.Player{ID: solvers.ID(desc), Solver: s}
	}

	sc, err := web.LoadKeys(*keyDir)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load cookie keys")
	}

	srv, err := web.New(memdb.New(), &web.Config{
		Players:  players,
		MaxLives: *maxLives,
		Rand:     cryptorand.New(),
		Words:    words,
	}, sc)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		log.Info().Msg("Shutting down")
		os.Exit(1)
	}()

	log.Info().Str("addr", *addr).Msg("Server is running")
	if err := http.ListenAndServe(*addr, srv); err != nil {
		log.Fatal().Err(err).Msg("ListenAndServe")
	}
}

func loadWords(dictFile, dbPath, list string) ([]hangman.Word, error) {
	if dbPath == "" {
		return solvers.Words(dictFile)
	}
	db, err := sqldb.New(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.Words(list)
}
