package cli

import (
	"testing"

	"clue-sim/internal/game"
)

func TestSeatKinds(t *testing.T) {
	t.Run("a single kind fills every seat", func(t *testing.T) {
		seats, err := seatKinds("deductive", 4)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for i, k := range seats {
			if k != game.KindDeductive {
				t.Errorf("Seat %d: expected deductive, got %s", i, k)
			}
		}
	})

	t.Run("mixed cycles through the variants", func(t *testing.T) {
		seats, _ := seatKinds("mixed", 5)
		want := []game.AgentKind{game.KindRandom, game.KindDeductive, game.KindStrategic, game.KindRandom, game.KindDeductive}
		for i := range want {
			if seats[i] != want[i] {
				t.Errorf("Seat %d: expected %s, got %s", i, want[i], seats[i])
			}
		}
	})

	t.Run("unknown kinds are rejected", func(t *testing.T) {
		if _, err := seatKinds("psychic", 3); err == nil {
			t.Error("Expected an error for an unknown agent kind")
		}
	})
}
