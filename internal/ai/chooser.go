package ai

import "math/rand"

// Chooser picks one card out of the candidates an agent is allowed to use,
// either for a guess or for a reply. Implementations must return "" for an
// empty slice and must not modify cards.
type Chooser interface {
	Choose(cards []string) string
}

// RandomChooser draws uniformly from the agent's own generator, so two agents
// never compete for the same random stream.
type RandomChooser struct {
	rand *rand.Rand
}

// NewRandomChooser wraps r. r must not be shared with another goroutine.
func NewRandomChooser(r *rand.Rand) *RandomChooser {
	return &RandomChooser{rand: r}
}

func (r *RandomChooser) Choose(cards []string) string {
	if len(cards) == 0 {
		return ""
	}
	return cards[r.rand.Intn(len(cards))]
}

// DeterministicChooser always takes the alphabetically smallest candidate.
// Games built with it replay identically for a given deal.
type DeterministicChooser struct{}

func (DeterministicChooser) Choose(cards []string) string {
	best := ""
	for i, card := range cards {
		if i == 0 || card < best {
			best = card
		}
	}
	return best
}
