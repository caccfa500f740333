package ai

import (
	"sort"

	"clue-sim/internal/belief"
	"clue-sim/internal/config"
	"clue-sim/internal/events"

	"github.com/sirupsen/logrus"
)

// baseAgent carries what every variant shares: a hand, a notebook of cards
// ruled out of the solution, and the uniform guess policy.
type baseAgent struct {
	id       int
	cfg      *config.GameConfig
	hand     map[string]struct{}
	notebook *belief.Notebook
	replies  ReplyStrategy
	chooser  Chooser
	log      logrus.FieldLogger
}

func newBaseAgent(id int, cfg *config.GameConfig, chooser Chooser, logger logrus.FieldLogger) *baseAgent {
	return &baseAgent{
		id:       id,
		cfg:      cfg,
		hand:     make(map[string]struct{}),
		notebook: belief.NewNotebook(cfg),
		replies:  &BaseReply{chooser: chooser},
		chooser:  chooser,
		log:      logger.WithField("player", id),
	}
}

func (a *baseAgent) ID() int { return a.id }

func (a *baseAgent) Hand() []string {
	cards := make([]string, 0, len(a.hand))
	for card := range a.hand {
		cards = append(cards, card)
	}
	sort.Strings(cards)
	return cards
}

// Notebook exposes the agent's known-card sets.
func (a *baseAgent) Notebook() *belief.Notebook { return a.notebook }

func (a *baseAgent) Known(cat config.CardCategory) []string { return a.notebook.Known(cat) }

func (a *baseAgent) Dealt(cards []string) {
	for _, card := range cards {
		a.hand[card] = struct{}{}
		a.notebook.Add(card)
	}
	a.log.Debugf("Dealt %v.", a.Hand())
}

// Guess picks, per category, uniformly among cards not yet ruled out.
func (a *baseAgent) Guess() (events.Guess, error) {
	g := events.Guess{Guesser: a.id}
	for _, cat := range config.Categories {
		g.Triple = g.Triple.Set(cat, a.chooser.Choose(a.notebook.Unknown(cat)))
	}
	return g, nil
}

func (a *baseAgent) Reply(guess events.Guess) (events.Reply, bool) {
	card, ok := a.replies.ChooseCard(a.hand, guess)
	if !ok {
		return events.Reply{}, false
	}
	return events.Reply{Card: card, Responder: a.id}, true
}

func (a *baseAgent) Receive(reply events.Reply) {
	if a.notebook.Add(reply.Card) {
		a.log.Debugf("Player %d showed me '%s'.", reply.Responder, reply.Card)
	}
}

// RandomAgent guesses among unknown cards and never reasons about replies it
// did not see.
type RandomAgent struct {
	*baseAgent
}

// NewRandomAgent creates the baseline agent.
func NewRandomAgent(id int, cfg *config.GameConfig, chooser Chooser, logger logrus.FieldLogger) *RandomAgent {
	return &RandomAgent{baseAgent: newBaseAgent(id, cfg, chooser, logger)}
}
