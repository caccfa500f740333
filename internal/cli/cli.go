package cli

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"strconv"

	"clue-sim/internal/batch"
	"clue-sim/internal/config"
	"clue-sim/internal/events"
	"clue-sim/internal/game"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	line *liner.State
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &CLI{
		log:  log,
		line: line,
	}
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(ctx context.Context, args []string, cfg *config.GameConfig, rng *rand.Rand) error {
	defer c.line.Close()
	if len(args) < 1 {
		c.printUsage()
		return errors.New("no command provided")
	}

	switch args[0] {
	case "play":
		numPlayers, err := c.playerCount(args, 1)
		if err != nil {
			return err
		}
		seats, err := seatKinds(argOr(args, 2, "strategic"), numPlayers)
		if err != nil {
			return err
		}
		return c.runSingleGame(cfg, seats, rng)
	case "batch":
		numPlayers, err := c.playerCount(args, 1)
		if err != nil {
			return err
		}
		games, err := strconv.Atoi(argOr(args, 2, "5000"))
		if err != nil || games < 1 {
			return fmt.Errorf("invalid game count %q", argOr(args, 2, ""))
		}
		seats, err := seatKinds(argOr(args, 3, "deductive"), numPlayers)
		if err != nil {
			return err
		}
		return c.runBatch(ctx, cfg, seats, games, rng.Int63())
	default:
		c.printUsage()
		return fmt.Errorf("unknown command '%s'", args[0])
	}
}

func (c *CLI) runSingleGame(cfg *config.GameConfig, seats []game.AgentKind, rng *rand.Rand) error {
	C.Header.Println("--- Running Single Game ---")

	builder := game.NewBuilder(cfg, c.log, rng)
	builder.EventManager().Subscribe(&SimulationRenderer{})
	var final events.GameOverEvent
	builder.EventManager().Subscribe(events.ListenerFunc(func(e events.Event) {
		if over, ok := e.(events.GameOverEvent); ok {
			final = over
		}
	}))
	for _, kind := range seats {
		builder.WithAgents(kind, 1)
	}

	g, err := builder.Build()
	if err != nil {
		return fmt.Errorf("failed to build game: %w", err)
	}

	if _, err := g.Play(); err != nil {
		return fmt.Errorf("game aborted: %w", err)
	}

	for _, p := range g.Players {
		if p.ID() == final.Winner {
			DisplayAgentNotes(p, cfg)
			break
		}
	}
	return nil
}

func (c *CLI) runBatch(ctx context.Context, cfg *config.GameConfig, seats []game.AgentKind, games int, seed int64) error {
	C.Header.Printf("--- Running %d games with %d players ---\n", games, len(seats))
	runner := batch.NewRunner(cfg, c.log)
	summary, err := runner.Run(ctx, batch.Options{
		Games:   games,
		Workers: runtime.NumCPU(),
		Seed:    seed,
		Seats:   seats,
	})
	if err != nil {
		return fmt.Errorf("batch failed: %w", err)
	}
	RenderSummary(summary)
	return nil
}

// playerCount reads the player count from args[i], prompting when it is missing.
func (c *CLI) playerCount(args []string, i int) (int, error) {
	if len(args) <= i {
		return c.promptForInt("Enter the number of players (2-6): ", config.MinPlayers, config.MaxPlayers)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil || n < config.MinPlayers || n > config.MaxPlayers {
		return 0, fmt.Errorf("player count must be between %d and %d, got %q", config.MinPlayers, config.MaxPlayers, args[i])
	}
	return n, nil
}

// seatKinds turns an agent name into one kind per seat. "mixed" cycles
// through random, deductive and strategic.
func seatKinds(name string, numPlayers int) ([]game.AgentKind, error) {
	seats := make([]game.AgentKind, numPlayers)
	if name == "mixed" {
		kinds := []game.AgentKind{game.KindRandom, game.KindDeductive, game.KindStrategic}
		for i := range seats {
			seats[i] = kinds[i%len(kinds)]
		}
		return seats, nil
	}
	kind, err := game.ParseAgentKind(name)
	if err != nil {
		return nil, err
	}
	for i := range seats {
		seats[i] = kind
	}
	return seats, nil
}

func argOr(args []string, i int, def string) string {
	if len(args) > i {
		return args[i]
	}
	return def
}
