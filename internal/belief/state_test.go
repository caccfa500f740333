package belief

import (
	"errors"
	"io"
	"testing"

	"clue-sim/internal/config"
	"clue-sim/internal/logic"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestState creates a clean belief state for player 0 with logging discarded.
func setupTestState(t *testing.T, numPlayers int) (*State, *config.GameConfig) {
	t.Helper()
	cfg, err := config.Load("../../default_config.json")
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(cfg, 0, numPlayers, log), cfg
}

func knownSnapshot(s *State) map[config.CardCategory][]string {
	out := make(map[config.CardCategory][]string)
	for _, cat := range config.Categories {
		out[cat] = s.Known(cat)
	}
	return out
}

func TestNewStateHasOneClausePerCategory(t *testing.T) {
	s, _ := setupTestState(t, 3)
	assert.Equal(t, 3, s.SolutionFormula().Len())
	assert.Equal(t, []int{1, 2}, s.Opponents())
	assert.Equal(t, 3, s.Len())
}

func TestDealtCardsAreKnownAndAbsentElsewhere(t *testing.T) {
	// GIVEN a fresh state
	s, _ := setupTestState(t, 3)

	// WHEN the agent is dealt two cards and simplifies
	s.Dealt([]string{"Rope", "Hall"})
	require.NoError(t, s.Update())

	// THEN both cards are ruled out of the solution and out of every other hand
	assert.True(t, s.IsKnown("Rope"))
	assert.True(t, s.IsKnown("Hall"))
	for _, p := range s.Opponents() {
		assert.Equal(t, logic.False, s.HandFormula(p).Value("Rope"))
		assert.Equal(t, logic.False, s.HandFormula(p).Value("Hall"))
	}
	assert.Equal(t, logic.False, s.SolutionFormula().Value("Rope"))
}

func TestRevealedCardIsHeldByResponderOnly(t *testing.T) {
	s, _ := setupTestState(t, 4)
	s.Revealed("Wrench", 2)
	require.NoError(t, s.Update())

	assert.Equal(t, []string{"Wrench"}, s.Held(2))
	assert.True(t, s.IsKnown("Wrench"))
	assert.Equal(t, logic.True, s.HandFormula(2).Value("Wrench"))
	assert.Equal(t, logic.False, s.HandFormula(1).Value("Wrench"))
	assert.Equal(t, logic.False, s.HandFormula(3).Value("Wrench"))

	holder, ok := s.HeldBy("Wrench")
	assert.True(t, ok)
	assert.Equal(t, 2, holder)
}

func TestObserveThenEliminate(t *testing.T) {
	// GIVEN player 1 answered player 2's guess of White / Hall / Rope
	s, _ := setupTestState(t, 3)
	s.Dealt([]string{"Knife"})
	guess := config.Triple{Suspect: "Mrs. White", Room: "Hall", Weapon: "Rope"}
	require.True(t, s.Observe(2, 1, guess))

	// AND we later see player 2 holding White and Hall
	s.Revealed("Mrs. White", 2)
	s.Revealed("Hall", 2)

	// WHEN beliefs are simplified
	require.NoError(t, s.Update())

	// THEN player 1 must have shown the Rope
	assert.Equal(t, []string{"Rope"}, s.Held(1))
	assert.True(t, s.IsKnown("Rope"), "a held card cannot be the solution")
	assert.Equal(t, logic.False, s.HandFormula(2).Value("Rope"))
}

func TestObserveDropsCardsKnownElsewhere(t *testing.T) {
	s, _ := setupTestState(t, 4)
	s.Dealt([]string{"Knife"})
	s.Revealed("Hall", 3)
	require.NoError(t, s.Update())

	// Knife is ours and Hall is player 3's, so player 1 can only have shown the Rope.
	guess := config.Triple{Suspect: "Mrs. White", Room: "Hall", Weapon: "Knife"}
	require.True(t, s.Observe(2, 1, guess))
	require.NoError(t, s.Update())
	assert.Equal(t, []string{"Mrs. White"}, s.Held(1))
	assert.True(t, s.IsKnown("Mrs. White"))
}

func TestObserveDiscardsFullyExplainedGuess(t *testing.T) {
	// GIVEN every card of the guess is already proven to sit in a third hand
	s, _ := setupTestState(t, 4)
	s.Revealed("Mrs. White", 2)
	s.Revealed("Hall", 2)
	s.Revealed("Rope", 3)
	require.NoError(t, s.Update())
	before := s.Len()

	// WHEN player 1 is reported to have answered that guess
	guess := config.Triple{Suspect: "Mrs. White", Room: "Hall", Weapon: "Rope"}
	learned := s.Observe(2, 1, guess)

	// THEN the event is discarded without touching the belief state
	assert.False(t, learned)
	assert.Equal(t, before, s.Len())
}

func TestCategoryEliminationPinsSolution(t *testing.T) {
	s, cfg := setupTestState(t, 3)
	for _, suspect := range cfg.Suspects {
		if suspect != "Mrs. Peacock" {
			s.Revealed(suspect, 1)
		}
	}
	require.NoError(t, s.Update())

	assert.True(t, s.Complete(config.CategorySuspect))
	assert.Equal(t, []string{"Mrs. Peacock"}, s.Unknown(config.CategorySuspect))
	assert.Equal(t, logic.True, s.SolutionFormula().Value("Mrs. Peacock"))
	_, solved := s.Solution()
	assert.False(t, solved, "rooms and weapons are still open")
}

func TestUpdateIsIdempotent(t *testing.T) {
	s, _ := setupTestState(t, 3)
	s.Dealt([]string{"Knife", "Study", "Mr. Green"})
	s.Observe(2, 1, config.Triple{Suspect: "Mrs. White", Room: "Hall", Weapon: "Rope"})
	s.Revealed("Hall", 2)
	require.NoError(t, s.Update())
	known, size := knownSnapshot(s), s.Len()
	clauses := s.SolutionFormula().Clauses()

	require.NoError(t, s.Update())
	assert.Equal(t, known, knownSnapshot(s))
	assert.Equal(t, size, s.Len())
	assert.Equal(t, clauses, s.SolutionFormula().Clauses())
}

func TestKnowledgeIsMonotonic(t *testing.T) {
	s, _ := setupTestState(t, 3)
	steps := []func(){
		func() { s.Dealt([]string{"Knife", "Study"}) },
		func() { s.Observe(1, 2, config.Triple{Suspect: "Mr. Green", Room: "Lounge", Weapon: "Rope"}) },
		func() { s.Revealed("Lounge", 2) },
		func() { s.Revealed("Mr. Green", 1) },
	}

	prevKnown := 0
	prevHeld := 0
	for i, step := range steps {
		step()
		require.NoError(t, s.Update())
		known := 0
		for _, cat := range config.Categories {
			known += s.Size(cat)
		}
		held := len(s.Held(1)) + len(s.Held(2))
		assert.GreaterOrEqual(t, known, prevKnown, "known set shrank at step %d", i)
		assert.GreaterOrEqual(t, held, prevHeld, "held set shrank at step %d", i)
		prevKnown, prevHeld = known, held
	}
}

func TestContradictionIsSurfaced(t *testing.T) {
	// GIVEN two different players both claimed to show the same card
	s, _ := setupTestState(t, 3)
	s.Revealed("Rope", 1)
	s.Revealed("Rope", 2)

	// WHEN simplifying
	err := s.Update()

	// THEN the engine reports an internal-consistency fault
	if !errors.Is(err, logic.ErrContradiction) {
		t.Fatalf("expected ErrContradiction, got %v", err)
	}
}
