// Package scoreboard summarizes game results per solver, for comparing them.
package scoreboard

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/olekukonko/tablewriter"
)

// Standing is how a single solver did across every game it played.
type Standing struct {
	SolverID hangman.SolverID `json:"solver_id"`
	Games    int              `json:"games"`
	Wins     int              `json:"wins"`
	Losses   int              `json:"losses"`
	// Defects counts games abandoned because the solver broke its contract.
	// They count as played, but not as won or lost.
	Defects int `json:"defects"`

	WinRate float64 `json:"win_rate"`
	// MeanGuesses and MeanWrongGuesses only cover games that finished, i.e.
	// not defective ones.
	MeanGuesses      float64 `json:"mean_guesses"`
	MeanWrongGuesses float64 `json:"mean_wrong_guesses"`
}

// Aggregate groups results by solver. Standings are ordered best first: by
// win rate, then fewer wrong guesses on average, then solver ID.
func Aggregate(results []*hangman.GameResult) []*Standing {
	type totals struct {
		st            *Standing
		guesses       int
		wrong         int
		finishedGames int
	}

	byID := make(map[hangman.SolverID]*totals)
	var order []hangman.SolverID
	for _, r := range results {
		t, ok := byID[r.SolverID]
		if !ok {
			t = &totals{st: &Standing{SolverID: r.SolverID}}
			byID[r.SolverID] = t
			order = append(order, r.SolverID)
		}
		t.st.Games++
		switch r.Outcome {
		case hangman.OutcomeWon:
			t.st.Wins++
		case hangman.OutcomeLost:
			t.st.Losses++
		default:
			t.st.Defects++
			continue
		}
		t.finishedGames++
		t.guesses += r.GuessesUsed
		t.wrong += r.WrongGuesses
	}

	out := make([]*Standing, 0, len(order))
	for _, id := range order {
		t := byID[id]
		t.st.WinRate = float64(t.st.Wins) / float64(t.st.Games)
		if t.finishedGames > 0 {
			t.st.MeanGuesses = float64(t.guesses) / float64(t.finishedGames)
			t.st.MeanWrongGuesses = float64(t.wrong) / float64(t.finishedGames)
		}
		out = append(out, t.st)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.MeanWrongGuesses != b.MeanWrongGuesses {
			return a.MeanWrongGuesses < b.MeanWrongGuesses
		}
		return a.SolverID < b.SolverID
	})
	return out
}

// Render writes the standings out as a table.
func Render(w io.Writer, standings []*Standing) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Solver", "Games", "Won", "Lost", "Defects", "Win Rate", "Avg Guesses", "Avg Wrong"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for i, st := range standings {
		table.Append([]string{
			strconv.Itoa(i + 1),
			string(st.SolverID),
			strconv.Itoa(st.Games),
			strconv.Itoa(st.Wins),
			strconv.Itoa(st.Losses),
			strconv.Itoa(st.Defects),
			fmt.Sprintf("%.1f%%", 100*st.WinRate),
			strconv.FormatFloat(st.MeanGuesses, 'f', 2, 64),
			strconv.FormatFloat(st.MeanWrongGuesses, 'f', 2, 64),
		})
	}

	table.Render()
}

// RenderResults writes out one row per game.
func RenderResults(w io.Writer, results []*hangman.GameResult) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Solver", "Word", "Outcome", "Guesses", "Wrong", "Order", "Defect"})
	table.SetAutoFormatHeaders(false)

	for _, r := range results {
		table.Append([]string{
			string(r.SolverID),
			string(r.Word),
			string(r.Outcome),
			strconv.Itoa(r.GuessesUsed),
			strconv.Itoa(r.WrongGuesses),
			r.Guesses,
			r.Defect,
		})
	}

	table.Render()
}
