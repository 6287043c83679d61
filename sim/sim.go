// Package sim plays solvers against target words and records how they did.
package sim

import (
	"errors"
	"fmt"

	"github.com/bcspragu/Hangman/game"
	"github.com/bcspragu/Hangman/hangman"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Player is a solver, and the name its results are recorded under.
type Player struct {
	ID     hangman.SolverID
	Solver hangman.Solver
}

// Event describes a single guess, after it was applied.
type Event struct {
	SolverID       hangman.SolverID `json:"solver_id"`
	Letter         string           `json:"letter"`
	Hit            bool             `json:"hit"`
	Pattern        string           `json:"pattern"`
	LivesRemaining int              `json:"lives_remaining"`
	Status         hangman.Status   `json:"status"`
}

// Observer gets told about every guess and every finished game, whether or
// not the simulator is verbose. RunBatch calls it from several goroutines.
type Observer interface {
	OnGuess(*Event)
	OnGameEnd(*hangman.GameResult)
}

// Config holds configuration options for a Simulator.
type Config struct {
	// MaxLives is the number of wrong guesses each game allows. Zero means
	// hangman.DefaultMaxLives.
	MaxLives int
	// Verbose logs every guess and the resulting pattern.
	Verbose bool
	// Logger is where verbose output goes, defaults to the global logger.
	Logger *zerolog.Logger
	// Observer is optional.
	Observer Observer
	// Parallelism caps how many players RunBatch runs at once. Zero means no
	// limit.
	Parallelism int
}

// Simulator runs games. It holds no state between games, so one Simulator can
// be shared freely.
type Simulator struct {
	maxLives    int
	verbose     bool
	logger      zerolog.Logger
	obs         Observer
	parallelism int
}

func New(cfg *Config) *Simulator {
	if cfg == nil {
		cfg = &Config{}
	}
	s := &Simulator{
		maxLives:    cfg.MaxLives,
		verbose:     cfg.Verbose,
		logger:      log.Logger,
		obs:         cfg.Observer,
		parallelism: cfg.Parallelism,
	}
	if s.maxLives == 0 {
		s.maxLives = hangman.DefaultMaxLives
	}
	if cfg.Logger != nil {
		s.logger = *cfg.Logger
	}
	if s.obs == nil {
		s.obs = nopObserver{}
	}
	return s
}

// PlayGame plays a full game of Hangman with the given player. A malformed
// target returns a nil result. If the solver breaks its contract or fails,
// the game is abandoned and the returned result is marked
// hangman.OutcomeDefective, alongside the error that caused it.
func (s *Simulator) PlayGame(p *Player, target string) (*hangman.GameResult, error) {
	if p == nil || p.Solver == nil {
		return nil, errors.New("player has no solver")
	}
	g, err := game.New(target, s.maxLives)
	if err != nil {
		return nil, fmt.Errorf("failed to start game for %q: %w", p.ID, err)
	}

	lg := s.logger.With().Str("solver", string(p.ID)).Logger()
	if s.verbose {
		lg.Info().Str("pattern", g.MaskedPattern()).Int("lives", g.LivesRemaining()).Msg("Starting game")
	}

	for !g.Status().Terminal() {
		pattern := g.MaskedPattern()
		l, err := p.Solver.Guess(pattern, g.Guessed(), g.LivesRemaining())
		if err != nil {
			return s.defect(p, g, fmt.Errorf("%w: %w", hangman.ErrSolverFailed, err))
		}
		if !l.Valid() {
			return s.defect(p, g, fmt.Errorf("%w: %q is not a letter", hangman.ErrIllegalGuess, byte(l)))
		}

		before := g.Revealed()
		if err := g.Guess(l); err != nil {
			// The only way a valid letter gets rejected here is a repeat.
			return s.defect(p, g, fmt.Errorf("%w: %w", hangman.ErrIllegalGuess, err))
		}

		ev := &Event{
			SolverID:       p.ID,
			Letter:         l.String(),
			Hit:            g.Revealed() > before,
			Pattern:        g.MaskedPattern(),
			LivesRemaining: g.LivesRemaining(),
			Status:         g.Status(),
		}
		if s.verbose {
			lg.Info().
				Str("pattern", pattern).
				Str("letter", ev.Letter).
				Bool("hit", ev.Hit).
				Str("revealed", ev.Pattern).
				Int("lives", ev.LivesRemaining).
				Msg("Guess")
		}
		s.obs.OnGuess(ev)
	}

	outcome := hangman.OutcomeLost
	if g.Status() == hangman.Won {
		outcome = hangman.OutcomeWon
	}
	res := result(p, g, outcome)
	if s.verbose {
		lg.Info().
			Str("word", string(res.Word)).
			Str("outcome", string(res.Outcome)).
			Int("guesses", res.GuessesUsed).
			Int("wrong", res.WrongGuesses).
			Msg("Game over")
	}
	s.obs.OnGameEnd(res)
	return res, nil
}

func (s *Simulator) defect(p *Player, g *game.State, err error) (*hangman.GameResult, error) {
	res := result(p, g, hangman.OutcomeDefective)
	res.Defect = err.Error()
	s.logger.Warn().Err(err).Str("solver", string(p.ID)).Str("word", string(res.Word)).Msg("Solver broke its contract, abandoning game")
	s.obs.OnGameEnd(res)
	return res, fmt.Errorf("solver %q: %w", p.ID, err)
}

func result(p *Player, g *game.State, o hangman.Outcome) *hangman.GameResult {
	return &hangman.GameResult{
		SolverID:     p.ID,
		Word:         g.Target(),
		Outcome:      o,
		GuessesUsed:  g.GuessesUsed(),
		WrongGuesses: g.WrongGuesses(),
		Guesses:      g.Guessed().String(),
	}
}

// CompareSolvers plays both players against the same word with the same
// number of lives. The two games are independent, they don't share a pool of
// guesses or lives. The returned error is only for a bad target word, a
// player that breaks its contract gets a defective result instead.
func (s *Simulator) CompareSolvers(p1, p2 *Player, target string) (*hangman.GameResult, *hangman.GameResult, error) {
	// Reject malformed words before either game starts.
	if _, err := hangman.ParseWord(target); err != nil {
		return nil, nil, err
	}

	var out [2]*hangman.GameResult
	for i, p := range []*Player{p1, p2} {
		res, err := s.PlayGame(p, target)
		if res == nil {
			return nil, nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		out[i] = res
	}
	return out[0], out[1], nil
}

// RunBatch plays every word with every player. Players run in parallel, but
// each player's games are played one after another, so a solver is never used
// by two games at once. Results are ordered by player, then word.
func (s *Simulator) RunBatch(players []*Player, words []string) (hangman.Report, error) {
	for _, w := range words {
		if _, err := hangman.ParseWord(w); err != nil {
			return nil, err
		}
	}
	for i, p := range players {
		if p == nil || p.Solver == nil {
			return nil, fmt.Errorf("player %d has no solver", i)
		}
	}

	results := make([][]*hangman.GameResult, len(players))
	var eg errgroup.Group
	if s.parallelism > 0 {
		eg.SetLimit(s.parallelism)
	}
	for i, p := range players {
		i, p := i, p
		eg.Go(func() error {
			rs := make([]*hangman.GameResult, len(words))
			for j, w := range words {
				res, err := s.PlayGame(p, w)
				if res == nil {
					return err
				}
				rs[j] = res
			}
			results[i] = rs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var report hangman.Report
	for _, rs := range results {
		report = append(report, rs...)
	}
	return report, nil
}

type nopObserver struct{}

func (nopObserver) OnGuess(*Event)                {}
func (nopObserver) OnGameEnd(*hangman.GameResult) {}
