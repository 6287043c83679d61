// Command w2v-topn shows which candidate words a word2vec model considers
// closest to some hints, which helps when picking a --hint for a solver.
package main

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/bcspragu/Hangman/logging"
	"github.com/bcspragu/Hangman/solvers"
	"github.com/bcspragu/Hangman/w2v"
	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"
)

func main() {
	logging.Init()

	var (
		modelFile = flag.String("model_file", "", "A binary-formatted word2vec pre-trained model file.")
		hints     = flag.String("hints", "", "Comma-separated hint words, their vectors are summed.")
		dictFile  = flag.String("dict_file", "", "Newline-separated candidate words, the built-in list is used if empty.")
		topN      = flag.Int("top_n", 10, "The number of closest words from the model to output.")

		omitSubstringMatch = flag.Bool("omit_substring_match", true, "Whether to omit words that are a fully contained substring of a hint, or vice versa.")
	)
	flag.Parse()

	if *modelFile == "" {
		log.Fatal().Msg("You need to pass in a --model_file.")
	}
	if *hints == "" {
		log.Fatal().Msg("You need to pass in some --hints.")
	}

	words, err := solvers.Words(*dictFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load candidate words")
	}

	ai, err := w2v.New(*modelFile, words, "")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load model")
	}

	hs := strings.Split(*hints, ",")
	matches, err := ai.Closest(hs, *topN, *omitSubstringMatch)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to find matches")
	}

	var buffer bytes.Buffer
	buffer.WriteString(strings.Join(hs, " "))
	buffer.WriteString(" -> ")
	for _, match := range matches {
		buffer.WriteString(string(match.Word))
		buffer.WriteString(" (")
		buffer.WriteString(strconv.FormatFloat(float64(match.Score), 'f', 3, 32))
		buffer.WriteString(") ")
	}
	fmt.Println(buffer.String())
}
