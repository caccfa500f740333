package ai

import (
	"sort"

	"clue-sim/internal/events"

	"github.com/sirupsen/logrus"
)

// ReplyStrategy decides which card, if any, to show in answer to a guess.
type ReplyStrategy interface {
	ChooseCard(hand map[string]struct{}, guess events.Guess) (string, bool)
}

// --- Strategy Implementations ---

// 1. BaseReply shows any matching card, chosen uniformly.
type BaseReply struct {
	chooser Chooser
}

func (s *BaseReply) ChooseCard(hand map[string]struct{}, guess events.Guess) (string, bool) {
	canShow := matching(hand, guess)
	if len(canShow) == 0 {
		return "", false
	}
	return s.chooser.Choose(canShow), true
}

// 2. LeastExposureReply remembers what it showed to whom and prefers to show
// a card again over revealing a new one.
type LeastExposureReply struct {
	base       *BaseReply
	self       int
	numPlayers int
	shown      map[int]map[string]struct{}
	log        logrus.FieldLogger
}

func NewLeastExposureReply(self, numPlayers int, chooser Chooser, logger logrus.FieldLogger) *LeastExposureReply {
	s := &LeastExposureReply{
		base:       &BaseReply{chooser: chooser},
		self:       self,
		numPlayers: numPlayers,
		shown:      make(map[int]map[string]struct{}),
		log:        logger,
	}
	for p := 0; p < numPlayers; p++ {
		if p != self {
			s.shown[p] = make(map[string]struct{})
		}
	}
	return s
}

// ChooseCard searches opponents starting from the guesser for a card already
// shown that also answers this guess. Only when none exists is a new card
// revealed.
func (s *LeastExposureReply) ChooseCard(hand map[string]struct{}, guess events.Guess) (string, bool) {
	for k := 0; k < s.numPlayers; k++ {
		opp := (guess.Guesser + k) % s.numPlayers
		if opp == s.self {
			continue
		}
		for _, card := range guess.Cards() {
			if _, wasShown := s.shown[opp][card]; !wasShown {
				continue
			}
			if _, mine := hand[card]; !mine {
				continue
			}
			s.log.Debugf("Re-showing '%s' (already seen by player %d) to player %d.", card, opp, guess.Guesser)
			s.record(guess.Guesser, card)
			return card, true
		}
	}

	card, ok := s.base.ChooseCard(hand, guess)
	if ok {
		s.record(guess.Guesser, card)
	}
	return card, ok
}

func (s *LeastExposureReply) record(opp int, card string) {
	if set, ok := s.shown[opp]; ok {
		set[card] = struct{}{}
	}
}

// Shown returns the cards revealed to opponent opp so far.
func (s *LeastExposureReply) Shown(opp int) []string {
	out := make([]string, 0, len(s.shown[opp]))
	for card := range s.shown[opp] {
		out = append(out, card)
	}
	sort.Strings(out)
	return out
}

// --- Strategy Helpers ---

func matching(hand map[string]struct{}, guess events.Guess) []string {
	var canShow []string
	for _, card := range guess.Cards() {
		if _, ok := hand[card]; ok {
			canShow = append(canShow, card)
		}
	}
	return canShow
}
