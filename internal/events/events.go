package events

import (
	"clue-sim/internal/config"
)

// Event is anything published on the bus.
type Event interface{}

// Listener reacts to published events. HandleEvent runs synchronously on the
// publishing goroutine, so it must not block.
type Listener interface {
	HandleEvent(e Event)
}

// ListenerFunc lets a plain function subscribe to a Manager.
type ListenerFunc func(e Event)

func (f ListenerFunc) HandleEvent(e Event) { f(e) }

// Manager fans events out to its listeners in subscription order. A Manager
// belongs to one game and is not safe for concurrent use.
type Manager struct {
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

func (em *Manager) Subscribe(l Listener) {
	em.listeners = append(em.listeners, l)
}

func (em *Manager) Publish(e Event) {
	for _, l := range em.listeners {
		l.HandleEvent(e)
	}
}

// --- Protocol Messages ---

// Guess is a suggestion made by a player on its turn.
type Guess struct {
	config.Triple
	Guesser int
}

// Reply is a single card shown privately to the guesser.
type Reply struct {
	Card      string
	Responder int
}

// Inform tells an uninvolved player that Responder answered Guess, without
// saying which card was shown.
type Inform struct {
	Guess     Guess
	Responder int
}

// --- Event Types for Rendering ---

// GameReadyEvent is published once the game is built and cards are dealt.
type GameReadyEvent struct {
	Solution config.Triple
	Hands    map[int][]string
}

type TurnStartEvent struct {
	Round  int
	Player int
}

type GuessMadeEvent struct {
	Guess Guess
}

// ReplyEvent carries the shown card as ground truth, for logging only.
type ReplyEvent struct {
	Guesser   int
	Responder int
	Card      string
}

type NoReplyEvent struct {
	Guesser int
}

type GameOverEvent struct {
	Winner   int
	Rounds   int
	Solution config.Triple
}
