// Package io lets a person at a terminal play as a solver.
package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/olekukonko/tablewriter"
)

// Human asks the user on the terminal for each guess. Input that isn't a
// single new letter is rejected and asked for again, so a Human never breaks
// the solver contract by mistyping.
type Human struct {
	// In is where the user's guesses are read from.
	In io.Reader
	// Out is where the board and prompts are written out to.
	Out io.Writer

	sc *bufio.Scanner
}

func (h *Human) Guess(pattern string, guessed *hangman.Guesses, livesRemaining int) (hangman.Letter, error) {
	if h.sc == nil {
		h.sc = bufio.NewScanner(h.In)
	}

	h.printBoard(pattern, guessed, livesRemaining)
	for {
		fmt.Fprint(h.Out, "Enter a letter: ")
		if !h.sc.Scan() {
			if err := h.sc.Err(); err != nil {
				return 0, fmt.Errorf("scanner error: %w", err)
			}
			return 0, errors.New("input closed before a guess was made")
		}

		l, err := parseInput(h.sc.Text())
		if err != nil {
			fmt.Fprintln(h.Out, "That isn't a letter, try again.")
			continue
		}
		if guessed.Has(l) {
			fmt.Fprintf(h.Out, "You already guessed %q, try again.\n", l.String())
			continue
		}
		return l, nil
	}
}

func parseInput(in string) (hangman.Letter, error) {
	in = strings.TrimSpace(in)
	if utf8.RuneCountInString(in) != 1 {
		return 0, fmt.Errorf("%q is not a single letter", in)
	}
	r, _ := utf8.DecodeRuneInString(in)
	return hangman.ParseLetter(r)
}

func (h *Human) printBoard(pattern string, guessed *hangman.Guesses, livesRemaining int) {
	table := tablewriter.NewWriter(h.Out)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Word", "Guessed", "Lives"})

	var word []byte
	for i := 0; i < len(pattern); i++ {
		if i > 0 {
			word = append(word, ' ')
		}
		word = append(word, pattern[i])
	}

	var lives tablewriter.Colors
	if livesRemaining <= 1 {
		lives = tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiRedColor}
	}

	table.Rich(
		[]string{string(word), guessed.String(), fmt.Sprint(livesRemaining)},
		[]tablewriter.Colors{{tablewriter.Bold}, {}, lives},
	)
	table.Render()
}
