// Command benchmark plays a set of solvers against many words and prints a
// scoreboard.
package main

import (
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/bcspragu/Hangman/cryptorand"
	"github.com/bcspragu/Hangman/hangman"
	"github.com/bcspragu/Hangman/logging"
	"github.com/bcspragu/Hangman/scoreboard"
	"github.com/bcspragu/Hangman/sim"
	"github.com/bcspragu/Hangman/solvers"
	"github.com/bcspragu/Hangman/sqldb"
	"github.com/bcspragu/Hangman/wordgen"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Init()

	var (
		solverList  = flag.String("solvers", "freq,dict", "Comma-separated solvers to compare, see solvers.Load for the format.")
		wordList    = flag.String("words", "", "Comma-separated target words. If empty, --count words are picked at random.")
		count       = flag.Int("count", 50, "How many random words to play, when --words isn't given.")
		seed        = flag.Int64("seed", 0, "Seed for picking random words, 0 means unpredictable.")
		maxLives    = flag.Int("max_lives", hangman.DefaultMaxLives, "How many wrong guesses each game allows.")
		dictFile    = flag.String("dict_file", "", "Newline-separated candidate words, the built-in list is used if empty.")
		dbPath      = flag.String("db_path", "", "Optional SQLite corpus to take candidate and target words from.")
		list        = flag.String("list", "default", "Which word list in --db_path to use.")
		hint        = flag.String("hint", "", "A word the targets are like, for word2vec solvers.")
		parallelism = flag.Int("parallelism", 0, "How many solvers to run at once, 0 means all of them.")
		perGame     = flag.Bool("per_game", false, "Also print a row for every game.")
		secret      = flag.String("remote_secret", "", "Secret for remote solvers.")
		timeout     = flag.Duration("remote_timeout", 10*time.Second, "Per-guess timeout for remote solvers.")
	)
	flag.Parse()

	words, err := loadWords(*dictFile, *dbPath, *list)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load candidate words")
	}

	var targets []string
	if *wordList != "" {
		targets = strings.Split(*wordList, ",")
	} else {
		r := cryptorand.New()
		if *seed != 0 {
			r = rand.New(rand.NewSource(*seed))
		}
		corpus := make([]string, len(words))
		for i, w := range words {
			corpus[i] = string(w)
		}
		if targets, err = wordgen.Pick(r, corpus, *count); err != nil {
			log.Fatal().Err(err).Msg("Failed to pick target words")
		}
	}

	opts := &solvers.Options{
		Words:         words,
		Hint:          *hint,
		RemoteSecret:  *secret,
		RemoteTimeout: *timeout,
	}
	var players []*sim.Player
	for _, desc := range strings.Split(*solverList, ",") {
		s, err := solvers.Load(desc, opts)
		if err != nil {
			log.Fatal().Err(err).Str("solver", desc).Msg("Failed to create solver")
		}
		players = append(players, &sim.Player{ID: solvers.ID(desc), Solver: s})
	}

	log.Info().Int("solvers", len(players)).Int("words", len(targets)).Msg("Starting benchmark")
	start := time.Now()
	report, err := sim.New(&sim.Config{
		MaxLives:    *maxLives,
		Parallelism: *parallelism,
	}).RunBatch(players, targets)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to run benchmark")
	}
	log.Info().Dur("took", time.Since(start)).Int("games", len(report)).Msg("Benchmark finished")

	if *perGame {
		scoreboard.RenderResults(os.Stdout, report)
	}
	scoreboard.Render(os.Stdout, scoreboard.Aggregate(report))
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
