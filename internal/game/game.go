package game

import (
	"errors"
	"fmt"
	"math/rand"

	"clue-sim/internal/config"
	"clue-sim/internal/events"
	"clue-sim/internal/player"

	"github.com/sirupsen/logrus"
)

// ErrRoundLimit is returned when a game runs past the configured round limit.
// Legal play always ends well before it.
var ErrRoundLimit = errors.New("round limit reached without a winner")

// Result is the outcome of a finished game.
type Result struct {
	Rounds int
	Winner int
}

// Game represents the state and turn protocol of a single Clue game.
type Game struct {
	Config       *config.GameConfig
	Players      []player.Player
	Solution     config.Triple
	EventManager *events.Manager
	round        int
	winner       int
	over         bool
	log          logrus.FieldLogger
	rand         *rand.Rand
}

// Round returns the number of rounds started so far.
func (g *Game) Round() int { return g.round }

// Over reports whether a winning turn has happened.
func (g *Game) Over() bool { return g.over }

// deal shuffles every non-solution card and hands out contiguous slices of the deck.
func (g *Game) deal() map[int][]string {
	var deck []string
	for _, card := range g.Config.AllCards {
		if !g.Solution.Contains(card) {
			deck = append(deck, card)
		}
	}
	g.rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })

	hands := make(map[int][]string, len(g.Players))
	for i, hand := range Partition(deck, len(g.Players)) {
		g.Players[i].Dealt(hand)
		hands[g.Players[i].ID()] = hand
		g.log.Debugf("Player %d Hand: %v", g.Players[i].ID(), hand)
	}
	g.log.Debugf("Ground Truth Initialized. Solution: %s", g.Solution)
	return hands
}

// Partition splits deck into n contiguous hands whose sizes differ by at most
// one. The last seat takes its share from the back of the deck first, so early
// seats get the smaller hands.
func Partition(deck []string, n int) [][]string {
	hands := make([][]string, n)
	cardsLeft := len(deck)
	for i := 0; i < n; i++ {
		seat := n - 1 - i
		take := cardsLeft / (n - i)
		hands[seat] = append([]string(nil), deck[cardsLeft-take:cardsLeft]...)
		cardsLeft -= take
	}
	return hands
}

// handleGuess polls the other players in seating order, starting right after
// the guesser, and returns the first reply.
func (g *Game) handleGuess(guesserIdx int, guess events.Guess) (events.Reply, bool) {
	for i := 1; i < len(g.Players); i++ {
		playerIdx := (guesserIdx + i) % len(g.Players)
		if reply, ok := g.Players[playerIdx].Reply(guess); ok {
			return reply, true
		}
	}
	return events.Reply{}, false
}

// takeTurn plays one turn and reports whether it was a winning one.
func (g *Game) takeTurn(idx int) (bool, error) {
	current := g.Players[idx]
	g.EventManager.Publish(events.TurnStartEvent{Round: g.round, Player: current.ID()})

	guess, err := current.Guess()
	if err != nil {
		return false, fmt.Errorf("player %d guess in round %d: %w", current.ID(), g.round, err)
	}
	g.EventManager.Publish(events.GuessMadeEvent{Guess: guess})

	reply, ok := g.handleGuess(idx, guess)
	if !ok {
		g.EventManager.Publish(events.NoReplyEvent{Guesser: current.ID()})
		return true, nil
	}

	current.Receive(reply)
	g.EventManager.Publish(events.ReplyEvent{Guesser: current.ID(), Responder: reply.Responder, Card: reply.Card})

	// Everyone else who reasons learns that a card changed hands, but not which.
	inform := events.Inform{Guess: guess, Responder: reply.Responder}
	for _, p := range g.Players {
		if p.ID() == current.ID() || p.ID() == reply.Responder {
			continue
		}
		if informer, ok := p.(player.Informer); ok {
			informer.Inform(inform)
		}
	}
	return false, nil
}

// PlayRound gives every player one turn in seating order. It returns the
// winner's id and true as soon as a guess draws no reply. Once the game is
// over the round count is frozen and the same winner is returned.
func (g *Game) PlayRound() (int, bool, error) {
	if g.over {
		return g.winner, true, nil
	}
	if g.round >= g.Config.MaxRounds {
		return 0, false, ErrRoundLimit
	}
	g.round++

	for i := range g.Players {
		won, err := g.takeTurn(i)
		if err != nil {
			return 0, false, err
		}
		if won {
			g.over = true
			g.winner = g.Players[i].ID()
			g.EventManager.Publish(events.GameOverEvent{Winner: g.winner, Rounds: g.round, Solution: g.Solution})
			return g.winner, true, nil
		}
	}
	return 0, false, nil
}

// Play runs rounds until somebody wins.
func (g *Game) Play() (Result, error) {
	for {
		winner, won, err := g.PlayRound()
		if err != nil {
			return Result{Rounds: g.round}, err
		}
		if won {
			g.log.Debugf("Player %d wins after %d rounds.", winner, g.round)
			return Result{Rounds: g.round, Winner: winner}, nil
		}
	}
}
