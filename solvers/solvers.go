// Package solvers builds solvers from the short descriptions used on the
// command line.
package solvers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bcspragu/Hangman/aiclient"
	"github.com/bcspragu/Hangman/consensus"
	"github.com/bcspragu/Hangman/dict"
	"github.com/bcspragu/Hangman/freq"
	"github.com/bcspragu/Hangman/hangman"
	hio "github.com/bcspragu/Hangman/io"
	"github.com/bcspragu/Hangman/w2v"
)

// Options are shared by every solver Load builds.
type Options struct {
	// Words are the candidate words for dictionary and word2vec solvers.
	Words []hangman.Word
	// Hint steers word2vec solvers towards words like it. Optional.
	Hint string

	// RemoteSecret and RemoteTimeout configure remote solvers.
	RemoteSecret  string
	RemoteTimeout time.Duration

	// In and Out are the terminal a human solver plays on. They default to
	// stdin and stdout.
	In  io.Reader
	Out io.Writer
}

// Load builds the solver described by desc, which is one of:
//
//	freq              the English letter frequency baseline
//	dict              dictionary filtering over opts.Words
//	human             a person at the terminal
//	remote:host:port  a solver service, see cmd/solver-server
//	model.yaml        a letter frequency model, also .yml
//	model.bin         a word2vec model, any other path
//	a+b+c             a consensus of the solvers a, b and c
func Load(desc string, opts *Options) (hangman.Solver, error) {
	if opts == nil {
		opts = &Options{}
	}
	if desc == "" {
		return nil, fmt.Errorf("no solver given")
	}

	if parts := strings.Split(desc, "+"); len(parts) > 1 {
		var members []hangman.Solver
		for _, p := range parts {
			s, err := Load(p, opts)
			if err != nil {
				return nil, err
			}
			members = append(members, s)
		}
		c, err := consensus.New(members...)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	switch {
	case desc == "freq":
		return freq.New(), nil
	case desc == "dict":
		return dict.NewSolver(dict.FromWords(opts.Words), nil), nil
	case desc == "human":
		h := &hio.Human{In: opts.In, Out: opts.Out}
		if h.In == nil {
			h.In = os.Stdin
		}
		if h.Out == nil {
			h.Out = os.Stdout
		}
		return h, nil
	case strings.HasPrefix(desc, "remote:"):
		addr := strings.TrimPrefix(desc, "remote:")
		if addr == "" {
			return nil, fmt.Errorf("no address given for remote solver")
		}
		return aiclient.New(opts.RemoteSecret, "http", addr, opts.RemoteTimeout), nil
	}

	switch strings.ToLower(filepath.Ext(desc)) {
	case ".yaml", ".yml":
		f, err := freq.Load(desc)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		ai, err := w2v.New(desc, opts.Words, opts.Hint)
		if err != nil {
			return nil, err
		}
		return ai, nil
	}
}

// ID is a short name for a solver description, suitable for a scoreboard.
// For files, it's the file name without its extension, so "models/best_model1.bin"
// becomes "best_model1".
func ID(desc string) hangman.SolverID {
	if strings.Contains(desc, "+") || strings.HasPrefix(desc, "remote:") {
		return hangman.SolverID(desc)
	}
	base := filepath.Base(desc)
	return hangman.SolverID(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Words loads candidate words from a newline-separated file, or returns the
// built-in list when file is empty.
func Words(file string) ([]hangman.Word, error) {
	if file == "" {
		d, err := dict.FromStrings(hangman.Words)
		if err != nil {
			return nil, err
		}
		return d.Words(), nil
	}
	d, err := dict.New(file)
	if err != nil {
		return nil, err
	}
	return d.Words(), nil
}
