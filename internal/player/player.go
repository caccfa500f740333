package player

import (
	"clue-sim/internal/config"
	"clue-sim/internal/events"
)

// Player is the interface that every agent variant must implement.
type Player interface {
	ID() int
	Hand() []string
	Dealt(cards []string)
	// Guess may fail only when the agent's beliefs became contradictory.
	Guess() (events.Guess, error)
	// Reply returns ok == false when the agent holds none of the guessed cards.
	Reply(guess events.Guess) (reply events.Reply, ok bool)
	Receive(reply events.Reply)
	Known(cat config.CardCategory) []string
}

// Informer is implemented by agents that reason about replies they did not see.
type Informer interface {
	Inform(e events.Inform)
}
