package game

import (
	"io"
	"testing"

	"clue-sim/internal/config"
	"clue-sim/internal/events"
	"clue-sim/internal/player"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSeat is a player with a fixed hand and a fixed guess. Every reply
// request is logged to asked so tests can check the polling order.
type scriptedSeat struct {
	id       int
	hand     []string
	guess    config.Triple
	asked    *[]int
	received []events.Reply
}

func (s *scriptedSeat) ID() int { return s.id }

func (s *scriptedSeat) Hand() []string { return s.hand }

func (s *scriptedSeat) Dealt(cards []string) { s.hand = cards }

func (s *scriptedSeat) Receive(r events.Reply) { s.received = append(s.received, r) }

func (s *scriptedSeat) Known(config.CardCategory) []string { return nil }

func (s *scriptedSeat) Guess() (events.Guess, error) {
	return events.Guess{Triple: s.guess, Guesser: s.id}, nil
}

func (s *scriptedSeat) Reply(g events.Guess) (events.Reply, bool) {
	*s.asked = append(*s.asked, s.id)
	for _, card := range s.hand {
		if g.Contains(card) {
			return events.Reply{Card: card, Responder: s.id}, true
		}
	}
	return events.Reply{}, false
}

// listeningSeat additionally accepts Inform events.
type listeningSeat struct {
	*scriptedSeat
	informs []events.Inform
}

func (s *listeningSeat) Inform(e events.Inform) { s.informs = append(s.informs, e) }

func newScriptedGame(t *testing.T, seats ...player.Player) *Game {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Game{
		Config:       config.Default(),
		Players:      seats,
		Solution:     scenarioSolution,
		EventManager: events.NewManager(),
		log:          log,
	}
}

func TestTakeTurnRoutesReplyAndInform(t *testing.T) {
	// GIVEN five seats where seat 2 guesses White / Hall / Rope. Seat 0 could
	// also answer but sits before the guesser; seat 4 is the first able to answer.
	var asked []int
	guess := config.Triple{Suspect: "Mrs. White", Room: "Hall", Weapon: "Rope"}
	seat0 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 0, hand: []string{"Hall"}, asked: &asked}}
	seat1 := &scriptedSeat{id: 1, hand: []string{"Knife"}, asked: &asked}
	seat2 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 2, hand: []string{"Study"}, guess: guess, asked: &asked}}
	seat3 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 3, hand: []string{"Lounge"}, asked: &asked}}
	seat4 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 4, hand: []string{"Rope", "Mrs. White"}, asked: &asked}}
	g := newScriptedGame(t, seat0, seat1, seat2, seat3, seat4)

	// WHEN seat 2 takes its turn
	won, err := g.takeTurn(2)
	require.NoError(t, err)

	// THEN polling starts after the guesser and stops at the first reply
	assert.False(t, won)
	assert.Equal(t, []int{3, 4}, asked)

	// AND only the guesser sees the card
	require.Len(t, seat2.received, 1)
	assert.Equal(t, events.Reply{Card: "Rope", Responder: 4}, seat2.received[0])
	assert.Empty(t, seat0.received)
	assert.Empty(t, seat3.received)

	// AND every uninvolved listener is informed, never the guesser or the responder
	want := events.Inform{Guess: events.Guess{Triple: guess, Guesser: 2}, Responder: 4}
	assert.Equal(t, []events.Inform{want}, seat0.informs)
	assert.Equal(t, []events.Inform{want}, seat3.informs)
	assert.Empty(t, seat2.informs)
	assert.Empty(t, seat4.informs)
}

func TestTakeTurnPollingWrapsAround(t *testing.T) {
	// GIVEN the last seat guesses and only seat 1 can answer
	var asked []int
	guess := config.Triple{Suspect: "Mr. Green", Room: "Library", Weapon: "Wrench"}
	seat0 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 0, hand: []string{"Hall"}, asked: &asked}}
	seat1 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 1, hand: []string{"Library"}, asked: &asked}}
	seat2 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 2, hand: []string{"Study"}, guess: guess, asked: &asked}}
	g := newScriptedGame(t, seat0, seat1, seat2)

	won, err := g.takeTurn(2)
	require.NoError(t, err)

	// THEN seats are polled from the front of the table after the guesser
	assert.False(t, won)
	assert.Equal(t, []int{0, 1}, asked)
	assert.Len(t, seat0.informs, 1)
	assert.Empty(t, seat1.informs)
}

func TestTakeTurnWithoutReplyWins(t *testing.T) {
	// GIVEN nobody holds any card of the guess
	var asked []int
	seat0 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 0, hand: []string{"Knife"}, guess: scenarioSolution, asked: &asked}}
	seat1 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 1, hand: []string{"Hall"}, asked: &asked}}
	seat2 := &listeningSeat{scriptedSeat: &scriptedSeat{id: 2, hand: []string{"Rope"}, asked: &asked}}
	g := newScriptedGame(t, seat0, seat1, seat2)
	recorder := &turnRecorder{}
	g.EventManager.Subscribe(recorder)

	// WHEN the round is played
	winner, won, err := g.PlayRound()
	require.NoError(t, err)

	// THEN the first guesser wins, everyone was asked, and nobody is informed
	assert.True(t, won)
	assert.Equal(t, 0, winner)
	assert.Equal(t, []int{1, 2}, asked)
	assert.Empty(t, seat1.informs)
	assert.Empty(t, seat2.informs)
	require.Len(t, recorder.over, 1)
	assert.Equal(t, 0, recorder.over[0].Winner)
}
