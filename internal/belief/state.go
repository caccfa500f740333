// Package belief holds what a deduction-capable agent knows: a notebook of
// cards proven out of the solution, a logical formula constraining the
// solution, and one formula per opponent constraining that opponent's hand.
package belief

import (
	"fmt"

	"clue-sim/internal/config"
	"clue-sim/internal/logic"

	"github.com/sirupsen/logrus"
)

// State is the belief state of one agent. Symbols in the solution formula mean
// "this card is the solution"; symbols in a hand formula mean "this card is in
// that player's hand".
type State struct {
	*Notebook

	self      int
	opponents []int
	own       map[string]struct{}
	solution  *logic.Formula
	hands     map[int]*logic.Formula
	held      map[int]map[string]struct{}
	verify    bool
	log       logrus.FieldLogger
}

// New creates the belief state for player self in a game of numPlayers seats.
// The solution formula starts with one "at least one of" clause per category.
func New(cfg *config.GameConfig, self, numPlayers int, log logrus.FieldLogger) *State {
	s := &State{
		Notebook: NewNotebook(cfg),
		self:     self,
		own:      make(map[string]struct{}),
		solution: logic.New(),
		hands:    make(map[int]*logic.Formula),
		held:     make(map[int]map[string]struct{}),
		verify:   cfg.VerifyBeliefs,
		log:      log,
	}
	for _, cat := range config.Categories {
		s.solution.Add(logic.AnyOf(cfg.CardListForCategory(cat)...))
	}
	for p := 0; p < numPlayers; p++ {
		if p == self {
			continue
		}
		s.opponents = append(s.opponents, p)
		s.hands[p] = logic.New()
		s.held[p] = make(map[string]struct{})
	}
	return s
}

// Dealt records the agent's own hand. None of these cards can be the solution
// or sit in anybody else's hand.
func (s *State) Dealt(cards []string) {
	for _, card := range cards {
		s.own[card] = struct{}{}
		s.Notebook.Add(card)
		s.solution.Add(logic.Or(logic.Neg(card)))
		for _, p := range s.opponents {
			s.hands[p].Add(logic.Or(logic.Neg(card)))
		}
	}
}

// Revealed records that responder showed card to this agent.
func (s *State) Revealed(card string, responder int) {
	s.Notebook.Add(card)
	s.solution.Add(logic.Or(logic.Neg(card)))
	for _, p := range s.opponents {
		if p == responder {
			s.hands[p].Add(logic.Or(logic.Pos(card)))
			s.held[p][card] = struct{}{}
			continue
		}
		s.hands[p].Add(logic.Or(logic.Neg(card)))
	}
	s.log.Debugf("Player %d showed me '%s'.", responder, card)
}

// Observe records that responder showed guesser some card of guess without
// this agent seeing which. It returns false when nothing new can be derived
// and the event was discarded.
func (s *State) Observe(guesser, responder int, guess config.Triple) bool {
	var candidates []string
	for _, card := range guess.Cards() {
		if _, mine := s.own[card]; mine {
			continue
		}
		if holder, ok := s.HeldBy(card); ok && holder != responder {
			continue
		}
		candidates = append(candidates, card)
	}
	if len(candidates) == 0 {
		s.log.Debugf("Nothing to learn from player %d answering player %d.", responder, guesser)
		return false
	}

	s.solution.Add(logic.NotAll(candidates...))
	if responder != s.self {
		if h, ok := s.hands[responder]; ok {
			h.Add(logic.AnyOf(candidates...))
		}
	}
	if guesser != s.self {
		if h, ok := s.hands[guesser]; ok {
			h.Add(logic.NotAll(candidates...))
		}
	}
	s.log.Debugf("Noted that player %d holds one of %v.", responder, candidates)
	return true
}

// Update simplifies every formula and folds the certain facts it exposes into
// the notebook and the held sets, repeating until nothing new is learned.
func (s *State) Update() error {
	for {
		changed := false

		if err := s.solution.Simplify(); err != nil {
			return fmt.Errorf("player %d solution beliefs: %w", s.self, err)
		}
		for _, l := range s.solution.Units() {
			if l.Negated && s.Notebook.Add(l.Symbol) {
				s.log.Debugf("Deduced '%s' is not the solution.", l.Symbol)
				changed = true
			}
		}

		for _, p := range s.opponents {
			if err := s.hands[p].Simplify(); err != nil {
				return fmt.Errorf("player %d beliefs about player %d: %w", s.self, p, err)
			}
			for _, l := range s.hands[p].Units() {
				if !l.Negated && s.markHeld(p, l.Symbol) {
					changed = true
				}
			}
		}

		if !changed {
			break
		}
	}

	if s.verify {
		if !s.solution.Satisfiable() {
			return fmt.Errorf("player %d solution beliefs unsatisfiable: %w", s.self, logic.ErrContradiction)
		}
		for _, p := range s.opponents {
			if !s.hands[p].Satisfiable() {
				return fmt.Errorf("player %d beliefs about player %d unsatisfiable: %w", s.self, p, logic.ErrContradiction)
			}
		}
	}
	return nil
}

// markHeld folds a proven holding: the card leaves the solution and every
// other hand.
func (s *State) markHeld(p int, card string) bool {
	if _, ok := s.held[p][card]; ok {
		return false
	}
	s.log.Debugf("SOLVED: player %d must hold '%s'.", p, card)
	s.held[p][card] = struct{}{}
	s.Notebook.Add(card)
	s.solution.Add(logic.Or(logic.Neg(card)))
	for _, q := range s.opponents {
		if q != p {
			s.hands[q].Add(logic.Or(logic.Neg(card)))
		}
	}
	return true
}

// Held returns the cards this agent believes player p holds.
func (s *State) Held(p int) []string {
	return sortedKeys(s.held[p])
}

// HeldBy returns the opponent proven to hold card.
func (s *State) HeldBy(card string) (int, bool) {
	for _, p := range s.opponents {
		if _, ok := s.held[p][card]; ok {
			return p, true
		}
	}
	return 0, false
}

// Opponents returns the tracked player ids in seating order.
func (s *State) Opponents() []int {
	return append([]int(nil), s.opponents...)
}

// Len returns the total clause count across all formulas.
func (s *State) Len() int {
	n := s.solution.Len()
	for _, p := range s.opponents {
		n += s.hands[p].Len()
	}
	return n
}

// SolutionFormula exposes the solution formula for rendering.
func (s *State) SolutionFormula() *logic.Formula { return s.solution }

// HandFormula exposes the formula about player p's hand.
func (s *State) HandFormula(p int) *logic.Formula { return s.hands[p] }
