package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"clue-sim/internal/batch"
	"clue-sim/internal/config"
	"clue-sim/internal/events"
	"clue-sim/internal/player"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// SimulationRenderer implements the events.Listener interface to print game state to the console.
type SimulationRenderer struct{}

// HandleEvent is the central dispatcher for rendering events.
func (r *SimulationRenderer) HandleEvent(e events.Event) {
	switch event := e.(type) {
	case events.GameReadyEvent:
		C.Header.Println("--- Starting Game: Initial State ---")
		C.Debug.Printf("SOLUTION: %s\n", event.Solution)
		ids := make([]int, 0, len(event.Hands))
		for id := range event.Hands {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			C.Info.Printf("Player %d: %s\n", id, colorizeAll(event.Hands[id]))
		}
	case events.TurnStartEvent:
		if event.Player == 0 {
			C.Header.Printf("\n---------- ROUND %d ----------\n", event.Round)
		}
	case events.GuessMadeEvent:
		C.Info.Printf("Player %d guessed: %s\n", event.Guess.Guesser, colorizeAll(event.Guess.Cards()))
	case events.ReplyEvent:
		C.Info.Printf("-> Player %d replied: %s\n", event.Responder, ColorizeCard(event.Card))
	case events.NoReplyEvent:
		C.Yes.Println("-> No player could show a card.")
	case events.GameOverEvent:
		C.Header.Println("\n--- GAME OVER ---")
		C.Yes.Printf("Player %d wins after %d rounds!\n", event.Winner, event.Rounds)
		C.Info.Printf("The solution was: %s\n", event.Solution)
	}
}

func colorizeAll(cards []string) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = ColorizeCard(card)
	}
	return strings.Join(parts, ", ")
}

// DisplayAgentNotes is a helper function to render the final board state of an agent.
func DisplayAgentNotes(p player.Player, cfg *config.GameConfig) {
	view, ok := p.(notebookView)
	if !ok {
		return
	}
	fmt.Println()
	C.Header.Printf("--- Notes for Player %d ---\n", p.ID())
	RenderNotes(view, cfg)
}

// RenderSummary prints batch results: overall round statistics and per-seat wins.
func RenderSummary(s batch.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("%d games, %.2f rounds on average (min %d, max %d)",
		s.Games, s.MeanRounds(), s.MinRounds, s.MaxRounds))
	t.AppendHeader(table.Row{"Seat", "Agent", "Wins", "Win rate"})
	rates := s.WinRates()
	for id, kind := range s.Seats {
		t.AppendRow(table.Row{id, kind.String(), s.Wins[id], fmt.Sprintf("%.1f%%", rates[id]*100)})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}
