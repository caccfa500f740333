package game

import (
	"fmt"
	"math/rand"

	"clue-sim/internal/ai"
	"clue-sim/internal/config"
	"clue-sim/internal/events"
	"clue-sim/internal/player"

	"github.com/sirupsen/logrus"
)

// AgentKind selects an agent variant.
type AgentKind int

const (
	KindRandom AgentKind = iota
	KindDeductive
	KindStrategic
)

func (k AgentKind) String() string {
	return []string{"random", "deductive", "strategic"}[k]
}

// ParseAgentKind maps a name from the command line to an AgentKind.
func ParseAgentKind(s string) (AgentKind, error) {
	switch s {
	case "random":
		return KindRandom, nil
	case "deductive":
		return KindDeductive, nil
	case "strategic":
		return KindStrategic, nil
	default:
		return 0, fmt.Errorf("unknown agent kind %q", s)
	}
}

// GameBuilder provides a step-by-step API for constructing a Game object.
type GameBuilder struct {
	cfg          *config.GameConfig
	eventManager *events.Manager
	log          logrus.FieldLogger
	rand         *rand.Rand
	seats        []AgentKind
	solution     *config.Triple
	chooser      func(r *rand.Rand) ai.Chooser
}

// NewBuilder creates a new GameBuilder with its required dependencies.
func NewBuilder(cfg *config.GameConfig, logger logrus.FieldLogger, rng *rand.Rand) *GameBuilder {
	return &GameBuilder{
		cfg:          cfg,
		log:          logger,
		rand:         rng,
		eventManager: events.NewManager(),
		chooser:      func(r *rand.Rand) ai.Chooser { return ai.NewRandomChooser(r) },
	}
}

// EventManager is a public getter for the unexported field.
func (b *GameBuilder) EventManager() *events.Manager {
	return b.eventManager
}

func (b *GameBuilder) WithRandomAgents(n int) *GameBuilder    { return b.withAgents(KindRandom, n) }
func (b *GameBuilder) WithDeductiveAgents(n int) *GameBuilder { return b.withAgents(KindDeductive, n) }
func (b *GameBuilder) WithStrategicAgents(n int) *GameBuilder { return b.withAgents(KindStrategic, n) }

// WithAgents seats n agents of the given kind after those already added.
func (b *GameBuilder) WithAgents(kind AgentKind, n int) *GameBuilder { return b.withAgents(kind, n) }

func (b *GameBuilder) withAgents(kind AgentKind, n int) *GameBuilder {
	for i := 0; i < n; i++ {
		b.seats = append(b.seats, kind)
	}
	return b
}

// WithSolution fixes the solution instead of drawing it at random.
func (b *GameBuilder) WithSolution(t config.Triple) *GameBuilder {
	b.solution = &t
	return b
}

// WithDeterministicChoices makes every agent pick the alphabetically first
// option instead of a random one.
func (b *GameBuilder) WithDeterministicChoices() *GameBuilder {
	b.chooser = func(*rand.Rand) ai.Chooser { return &ai.DeterministicChooser{} }
	return b
}

// Build constructs the Game object after all options have been configured.
func (b *GameBuilder) Build() (*Game, error) {
	total := len(b.seats)
	if total < config.MinPlayers || total > config.MaxPlayers {
		return nil, fmt.Errorf("invalid number of players: %d (want %d-%d)", total, config.MinPlayers, config.MaxPlayers)
	}

	// 1. Create the Game object with its hidden solution
	game := &Game{
		Config:       b.cfg,
		EventManager: b.eventManager,
		log:          b.log,
		rand:         b.rand,
	}
	if b.solution != nil {
		for _, cat := range config.Categories {
			card := b.solution.Card(cat)
			if got, ok := b.cfg.Category(card); !ok || got != cat {
				return nil, fmt.Errorf("solution card %q is not one of the %s", card, cat)
			}
		}
		game.Solution = *b.solution
	} else {
		for _, cat := range config.Categories {
			cards := b.cfg.CardListForCategory(cat)
			game.Solution = game.Solution.Set(cat, cards[b.rand.Intn(len(cards))])
		}
	}

	// 2. Create players, each with its own config copy and random source
	for id, kind := range b.seats {
		aiRand := rand.New(rand.NewSource(b.rand.Int63()))
		chooser := b.chooser(aiRand)
		game.Players = append(game.Players, newAgent(kind, id, total, b.cfg.DeepCopy(), chooser, b.log))
	}

	// 3. Deal the cards
	hands := game.deal()

	b.eventManager.Publish(events.GameReadyEvent{Solution: game.Solution, Hands: hands})

	return game, nil
}

func newAgent(kind AgentKind, id, numPlayers int, cfg *config.GameConfig, chooser ai.Chooser, log logrus.FieldLogger) player.Player {
	switch kind {
	case KindDeductive:
		return ai.NewDeductiveAgent(id, numPlayers, cfg, chooser, log)
	case KindStrategic:
		return ai.NewStrategicAgent(id, numPlayers, cfg, chooser, log)
	default:
		return ai.NewRandomAgent(id, cfg, chooser, log)
	}
}
