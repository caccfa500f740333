package belief

import (
	"sort"

	"clue-sim/internal/config"
)

// Notebook holds the cards an agent has proven are not part of the solution,
// one set per category. Sets only ever grow.
type Notebook struct {
	cfg   *config.GameConfig
	known map[config.CardCategory]map[string]struct{}
}

// NewNotebook returns an empty notebook for the card universe in cfg.
func NewNotebook(cfg *config.GameConfig) *Notebook {
	n := &Notebook{cfg: cfg, known: make(map[config.CardCategory]map[string]struct{})}
	for _, cat := range config.Categories {
		n.known[cat] = make(map[string]struct{})
	}
	return n
}

// Add marks card as not the solution. It reports whether the card was new.
func (n *Notebook) Add(card string) bool {
	cat, ok := n.cfg.Category(card)
	if !ok {
		return false
	}
	if _, seen := n.known[cat][card]; seen {
		return false
	}
	n.known[cat][card] = struct{}{}
	return true
}

// IsKnown reports whether card is proven not to be the solution.
func (n *Notebook) IsKnown(card string) bool {
	cat, ok := n.cfg.Category(card)
	if !ok {
		return false
	}
	_, known := n.known[cat][card]
	return known
}

// Known returns the sorted known cards of a category.
func (n *Notebook) Known(cat config.CardCategory) []string {
	return sortedKeys(n.known[cat])
}

// Unknown returns the cards of a category that could still be the solution,
// in config order.
func (n *Notebook) Unknown(cat config.CardCategory) []string {
	var out []string
	for _, card := range n.cfg.CardListForCategory(cat) {
		if _, known := n.known[cat][card]; !known {
			out = append(out, card)
		}
	}
	return out
}

// Size returns how many cards of a category are known.
func (n *Notebook) Size(cat config.CardCategory) int { return len(n.known[cat]) }

// Complete reports whether the category is pinned down by elimination.
func (n *Notebook) Complete(cat config.CardCategory) bool {
	return len(n.known[cat]) == len(n.cfg.CardListForCategory(cat))-1
}

// Solution returns the solution triple when every category is complete.
func (n *Notebook) Solution() (config.Triple, bool) {
	var t config.Triple
	for _, cat := range config.Categories {
		if !n.Complete(cat) {
			return config.Triple{}, false
		}
		t = t.Set(cat, n.Unknown(cat)[0])
	}
	return t, true
}

func sortedKeys(m map[string]struct{}) []string {
	k := make([]string, 0, len(m))
	for key := range m {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}
