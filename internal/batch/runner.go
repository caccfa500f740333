// Package batch plays many independent games in parallel and aggregates the
// round counts and winners.
package batch

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"clue-sim/internal/config"
	"clue-sim/internal/game"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options configures a batch.
type Options struct {
	Players int
	Games   int
	Workers int
	Seed    int64
	// Seats lists the agent kind for each seat. When empty every seat uses Kind.
	Seats []game.AgentKind
	Kind  game.AgentKind
}

// GameRecord is the outcome of one game in a batch.
type GameRecord struct {
	ID     uuid.UUID
	Rounds int
	Winner int
}

// Summary aggregates a batch.
type Summary struct {
	Games       int
	TotalRounds int
	MinRounds   int
	MaxRounds   int
	Wins        map[int]int
	Seats       []game.AgentKind
	Records     []GameRecord
}

// MeanRounds is the average game length.
func (s Summary) MeanRounds() float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.TotalRounds) / float64(s.Games)
}

// Runner plays batches of games.
type Runner struct {
	cfg *config.GameConfig
	log *logrus.Logger
}

// NewRunner creates a runner sharing cfg (read-only) across games.
func NewRunner(cfg *config.GameConfig, log *logrus.Logger) *Runner {
	return &Runner{cfg: cfg, log: log}
}

func (o Options) seats() []game.AgentKind {
	if len(o.Seats) > 0 {
		return o.Seats
	}
	seats := make([]game.AgentKind, o.Players)
	for i := range seats {
		seats[i] = o.Kind
	}
	return seats
}

// Run plays opts.Games games. Games share no state; game i is seeded with
// opts.Seed+i so a batch is reproducible regardless of scheduling.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	seats := opts.seats()
	if opts.Games <= 0 {
		return Summary{}, fmt.Errorf("game count must be positive, got %d", opts.Games)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	records := make([]GameRecord, opts.Games)
	var mu sync.Mutex
	done := 0

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := r.playOne(seats, opts.Seed+int64(i))
			if err != nil {
				return err
			}
			records[i] = rec

			mu.Lock()
			done++
			if done%1000 == 0 {
				r.log.Infof("Completed %d/%d games.", done, opts.Games)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}
	return summarize(seats, records), nil
}

func (r *Runner) playOne(seats []game.AgentKind, seed int64) (GameRecord, error) {
	id := uuid.New()
	log := r.log.WithField("game", id.String())

	builder := game.NewBuilder(r.cfg, log, rand.New(rand.NewSource(seed)))
	for _, kind := range seats {
		builder.WithAgents(kind, 1)
	}
	g, err := builder.Build()
	if err != nil {
		return GameRecord{}, fmt.Errorf("game %s: %w", id, err)
	}
	result, err := g.Play()
	if err != nil {
		log.Errorf("Game aborted after %d rounds: %v", result.Rounds, err)
		return GameRecord{}, fmt.Errorf("game %s (seed %d): %w", id, seed, err)
	}
	log.Debugf("Player %d won in %d rounds.", result.Winner, result.Rounds)
	return GameRecord{ID: id, Rounds: result.Rounds, Winner: result.Winner}, nil
}

func summarize(seats []game.AgentKind, records []GameRecord) Summary {
	s := Summary{
		Games:   len(records),
		Wins:    make(map[int]int),
		Seats:   seats,
		Records: records,
	}
	for i, rec := range records {
		s.TotalRounds += rec.Rounds
		s.Wins[rec.Winner]++
		if i == 0 || rec.Rounds < s.MinRounds {
			s.MinRounds = rec.Rounds
		}
		if rec.Rounds > s.MaxRounds {
			s.MaxRounds = rec.Rounds
		}
	}
	return s
}

// WinRates returns each seat's share of wins, ordered by seat.
func (s Summary) WinRates() []float64 {
	rates := make([]float64, len(s.Seats))
	if s.Games == 0 {
		return rates
	}
	for id := range s.Seats {
		rates[id] = float64(s.Wins[id]) / float64(s.Games)
	}
	return rates
}
