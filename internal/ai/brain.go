package ai

import (
	"clue-sim/internal/belief"
	"clue-sim/internal/config"
	"clue-sim/internal/events"

	"github.com/sirupsen/logrus"
)

// DeductiveAgent keeps a logical belief state and simplifies it before every
// guess, so its guesses avoid anything it can already rule out.
type DeductiveAgent struct {
	*baseAgent
	beliefs *belief.State
}

// NewDeductiveAgent is the constructor for the deduction-capable agent.
func NewDeductiveAgent(id, numPlayers int, cfg *config.GameConfig, chooser Chooser, logger logrus.FieldLogger) *DeductiveAgent {
	base := newBaseAgent(id, cfg, chooser, logger)
	beliefs := belief.New(cfg, id, numPlayers, base.log)
	base.notebook = beliefs.Notebook
	base.log.Debugf("Deduction engine initialized.")
	return &DeductiveAgent{baseAgent: base, beliefs: beliefs}
}

// Beliefs exposes the belief state for rendering and tests.
func (d *DeductiveAgent) Beliefs() *belief.State { return d.beliefs }

func (d *DeductiveAgent) Dealt(cards []string) {
	for _, card := range cards {
		d.hand[card] = struct{}{}
	}
	d.beliefs.Dealt(cards)
	d.log.Debugf("Dealt %v.", d.Hand())
}

// Guess folds everything learned so far into the notebook, then guesses among
// the cards that remain.
func (d *DeductiveAgent) Guess() (events.Guess, error) {
	if err := d.beliefs.Update(); err != nil {
		d.log.Errorf("FATAL LOGIC ERROR: %v", err)
		return events.Guess{}, err
	}
	if solution, ok := d.notebook.Solution(); ok {
		d.log.Debugf("I know the answer: %s.", solution)
	}
	return d.baseAgent.Guess()
}

func (d *DeductiveAgent) Receive(reply events.Reply) {
	d.beliefs.Revealed(reply.Card, reply.Responder)
}

// Inform folds in a reply this agent did not see.
func (d *DeductiveAgent) Inform(e events.Inform) {
	if e.Responder == d.id || e.Guess.Guesser == d.id {
		return
	}
	d.beliefs.Observe(e.Guess.Guesser, e.Responder, e.Guess.Triple)
}

// StrategicAgent deduces like DeductiveAgent and answers guesses so as to
// reveal as few distinct cards as possible to each opponent.
type StrategicAgent struct {
	*DeductiveAgent
	exposure *LeastExposureReply
}

// NewStrategicAgent creates a deductive agent with the least-exposure reply policy.
func NewStrategicAgent(id, numPlayers int, cfg *config.GameConfig, chooser Chooser, logger logrus.FieldLogger) *StrategicAgent {
	d := NewDeductiveAgent(id, numPlayers, cfg, chooser, logger)
	exposure := NewLeastExposureReply(id, numPlayers, chooser, d.log)
	d.replies = exposure
	return &StrategicAgent{DeductiveAgent: d, exposure: exposure}
}

// Shown returns the cards this agent has revealed to opponent opp.
func (s *StrategicAgent) Shown(opp int) []string { return s.exposure.Shown(opp) }
