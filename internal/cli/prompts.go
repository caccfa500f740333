package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"clue-sim/internal/ai"
	"clue-sim/internal/belief"
	"clue-sim/internal/config"
	"clue-sim/internal/logic"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/peterh/liner"
)

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Yes, No, Maybe, Info, Warn, Header, Prompt, Debug *color.Color
}{
	Yes:    color.New(color.FgGreen),
	No:     color.New(color.FgRed),
	Maybe:  color.New(color.FgYellow),
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
	Debug:  color.New(color.FgMagenta),
}

// SuspectColors maps suspect names to specific colors for display.
var SuspectColors = map[string]*color.Color{
	"Miss Scarlett":   color.New(color.FgRed),
	"Colonel Mustard": color.New(color.FgYellow),
	"Mrs. White":      color.New(color.FgWhite),
	"Mr. Green":       color.New(color.FgGreen),
	"Mrs. Peacock":    color.New(color.FgBlue),
	"Professor Plum":  color.New(color.FgMagenta),
}

// ColorizeCard returns a card name as a colored string if it's a suspect.
func ColorizeCard(name string) string {
	if c, ok := SuspectColors[name]; ok {
		return c.Sprint(name)
	}
	return name
}

// notebookView is what a table needs from any agent.
type notebookView interface {
	ID() int
	Hand() []string
	Notebook() *belief.Notebook
}

// RenderNotes displays an agent's knowledge grid in a formatted table. Hand
// columns are only shown for agents that keep a belief state.
func RenderNotes(agent notebookView, cfg *config.GameConfig) {
	var beliefs *belief.State
	switch a := agent.(type) {
	case *ai.DeductiveAgent:
		beliefs = a.Beliefs()
	case *ai.StrategicAgent:
		beliefs = a.Beliefs()
	}

	own := make(map[string]bool)
	for _, card := range agent.Hand() {
		own[card] = true
	}
	notebook := agent.Notebook()

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle(fmt.Sprintf("Player %d's Detective Notes", agent.ID()))
	header := table.Row{"ID", "Card", "Type", "Mine"}
	if beliefs != nil {
		for _, p := range beliefs.Opponents() {
			header = append(header, fmt.Sprintf("P%d", p))
		}
	}
	header = append(header, "Solution")
	t.AppendHeader(header)

	for cardID, card := range cfg.AllCards {
		if cardID > 0 && cfg.CardToType[card] != cfg.CardToType[cfg.AllCards[cardID-1]] {
			t.AppendSeparator()
		}
		cat := cfg.CardToType[card]
		row := table.Row{cardID + 1, ColorizeCard(card), cat.String(), mineMark(own[card])}
		if beliefs != nil {
			for _, p := range beliefs.Opponents() {
				row = append(row, symbolFor(beliefs.HandFormula(p).Value(card)))
			}
		}
		solution := logic.Unknown
		if notebook.IsKnown(card) {
			solution = logic.False
		} else if notebook.Complete(cat) {
			solution = logic.True
		}
		row = append(row, symbolFor(solution))
		t.AppendRow(row)
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = false
	t.Style().Title.Align = text.AlignCenter
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 1, Align: text.AlignRight}})
	t.Render()
}

func symbolFor(v logic.Value) string {
	switch v {
	case logic.True:
		return C.Yes.Sprint("✔")
	case logic.False:
		return C.No.Sprint("✖")
	default:
		return C.Maybe.Sprint("?")
	}
}

func mineMark(mine bool) string {
	if mine {
		return C.Yes.Sprint("✔")
	}
	return ""
}

// --- Prompting and Usage ---

func (c *CLI) printUsage() {
	C.Header.Println("\n--- Clue Deduction Simulator ---")
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/clue play [players] [random|deductive|strategic|mixed]")
	fmt.Println("    Play one game and print every turn.")
	fmt.Println("  go run ./cmd/clue batch [players] [games] [random|deductive|strategic|mixed]")
	fmt.Println("    Play many games in parallel and report round counts and win rates.")
	fmt.Println("\nFlags:")
	fmt.Println("  -loglevel debug    Enable detailed deduction tracing.")
	fmt.Println("  -config path       Card configuration (default default_config.json).")
}

var errAborted = errors.New("input aborted")

func (c *CLI) promptForString(prompt string) (string, error) {
	for {
		input, err := c.line.Prompt(prompt)
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				C.Info.Println("\nGoodbye!")
				return "", errAborted
			}
			return "", fmt.Errorf("error reading line: %w", err)
		}
		trimmed := strings.TrimSpace(input)
		if trimmed != "" {
			c.line.AppendHistory(trimmed)
			return trimmed, nil
		}
	}
}

func (c *CLI) promptForInt(prompt string, min, max int) (int, error) {
	for {
		input, err := c.promptForString(prompt)
		if err != nil {
			return 0, err
		}
		num, err := strconv.Atoi(input)
		if err != nil || num < min || num > max {
			C.Warn.Printf("Invalid input. Please enter a number between %d and %d.\n", min, max)
			continue
		}
		return num, nil
	}
}
