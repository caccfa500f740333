package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// CardCategory defines the type of a card using a typed enum.
type CardCategory int

const (
	CategorySuspect CardCategory = iota
	CategoryRoom
	CategoryWeapon
)

// Categories lists every category in guess order.
var Categories = []CardCategory{CategorySuspect, CategoryRoom, CategoryWeapon}

func (cc CardCategory) String() string {
	return []string{"suspects", "rooms", "weapons"}[cc]
}

const (
	DefaultMaxRounds = 100
	MinPlayers       = 2
	MaxPlayers       = 6
)

// GameConfig holds the static definitions for a game of Clue.
type GameConfig struct {
	Suspects      []string                `json:"suspects"`
	Rooms         []string                `json:"rooms"`
	Weapons       []string                `json:"weapons"`
	MaxRounds     int                     `json:"max_rounds"`
	VerifyBeliefs bool                    `json:"verify_beliefs"`
	AllCards      []string                `json:"-"`
	CardToType    map[string]CardCategory `json:"-"`
}

// Load reads, parses, and prepares the game configuration from a file.
func Load(path string) (*GameConfig, error) {
	var cfg GameConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.prepare(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Default returns the classic card set.
func Default() *GameConfig {
	cfg := &GameConfig{
		Suspects: []string{
			"Miss Scarlett", "Colonel Mustard", "Mrs. White",
			"Mr. Green", "Mrs. Peacock", "Professor Plum",
		},
		Rooms: []string{
			"Kitchen", "Ballroom", "Conservatory", "Dining Room", "Billiard Room",
			"Library", "Lounge", "Hall", "Study",
		},
		Weapons:       []string{"Candlestick", "Knife", "Lead Pipe", "Revolver", "Rope", "Wrench"},
		MaxRounds:     DefaultMaxRounds,
		VerifyBeliefs: true,
	}
	if err := cfg.prepare(); err != nil {
		panic(err)
	}
	return cfg
}

// prepare sorts the card lists and builds the lookup tables. Categories must be
// non-empty and disjoint.
func (c *GameConfig) prepare() error {
	c.AllCards = nil
	c.CardToType = make(map[string]CardCategory)
	sort.Strings(c.Suspects)
	sort.Strings(c.Rooms)
	sort.Strings(c.Weapons)

	for _, cat := range Categories {
		cards := c.CardListForCategory(cat)
		if len(cards) == 0 {
			return fmt.Errorf("no %s defined", cat)
		}
		for _, card := range cards {
			if prev, dup := c.CardToType[card]; dup {
				return fmt.Errorf("card %q listed in both %s and %s", card, prev, cat)
			}
			c.AllCards = append(c.AllCards, card)
			c.CardToType[card] = cat
		}
	}
	if c.MaxRounds <= 0 {
		c.MaxRounds = DefaultMaxRounds
	}
	return nil
}

// DeepCopy creates a new GameConfig with all slices copied to prevent shared state.
func (c *GameConfig) DeepCopy() *GameConfig {
	newCfg := &GameConfig{
		MaxRounds:     c.MaxRounds,
		VerifyBeliefs: c.VerifyBeliefs,
		CardToType:    make(map[string]CardCategory),
	}
	newCfg.Suspects = append([]string(nil), c.Suspects...)
	newCfg.Rooms = append([]string(nil), c.Rooms...)
	newCfg.Weapons = append([]string(nil), c.Weapons...)
	newCfg.AllCards = append([]string(nil), c.AllCards...)
	for k, v := range c.CardToType {
		newCfg.CardToType[k] = v
	}
	return newCfg
}

// CardListForCategory is a helper to get the correct card list from the config.
func (c *GameConfig) CardListForCategory(cat CardCategory) []string {
	switch cat {
	case CategorySuspect:
		return c.Suspects
	case CategoryRoom:
		return c.Rooms
	case CategoryWeapon:
		return c.Weapons
	default:
		return nil
	}
}

// Category reports the category of a card and whether the card exists.
func (c *GameConfig) Category(card string) (CardCategory, bool) {
	cat, ok := c.CardToType[card]
	return cat, ok
}

// Triple is one card per category, in guess order. It is used both for guesses
// and for the hidden solution.
type Triple struct {
	Suspect string
	Room    string
	Weapon  string
}

// Cards returns the triple as a slice in category order.
func (t Triple) Cards() []string {
	return []string{t.Suspect, t.Room, t.Weapon}
}

// Card returns the card of the given category.
func (t Triple) Card(cat CardCategory) string {
	switch cat {
	case CategorySuspect:
		return t.Suspect
	case CategoryRoom:
		return t.Room
	case CategoryWeapon:
		return t.Weapon
	default:
		return ""
	}
}

// Set returns a copy of t with the card of the given category replaced.
func (t Triple) Set(cat CardCategory, card string) Triple {
	switch cat {
	case CategorySuspect:
		t.Suspect = card
	case CategoryRoom:
		t.Room = card
	case CategoryWeapon:
		t.Weapon = card
	}
	return t
}

// Contains reports whether card is one of the three.
func (t Triple) Contains(card string) bool {
	return t.Suspect == card || t.Room == card || t.Weapon == card
}

func (t Triple) String() string {
	return fmt.Sprintf("%s in the %s with the %s", t.Suspect, t.Room, t.Weapon)
}
