// internal/roster/pokemon.go
//
// Reference data for a single Pokémon.
// Records are decoded once at startup and never mutated afterwards; every
// other package holds *Pokemon pointers into the Roster's backing slice.

package roster

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// StatNames is the display order of the six base stats.
var StatNames = []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

// Pokemon is one roster entry.
type Pokemon struct {
	ID                     int            `json:"id"`
	Name                   string         `json:"name"`
	Types                  []string       `json:"types"`
	Generation             Generation     `json:"generation"`
	EvolutionStage         int            `json:"evolution_stage"`
	EvolvesFrom            int            `json:"evolves_from,omitempty"` // id of the pre-evolution, 0 if none
	Habitat                string         `json:"habitat"`
	Height                 float64        `json:"height"`
	Weight                 float64        `json:"weight"`
	MainColour             string         `json:"main_colour"`
	SecondaryColours       []string       `json:"secondary_colours"`
	Stats                  map[string]int `json:"stats"`
	Abilities              []string       `json:"abilities"`
	Moves                  []string       `json:"moves"`
	Genus                  string         `json:"genus"`
	FlavorTextEntries      []string       `json:"flavor_text_entries"` // name-redacted
	LocationAreaEncounters []Encounter    `json:"location_area_encounters"`
	HeldItems              []string       `json:"held_items"`
	Shape                  string         `json:"shape"`
}

// Encounter is one wild location entry.
type Encounter struct {
	LocationArea string   `json:"location_area"`
	Games        []string `json:"games"`
	Method       string   `json:"method"`
	Chance       int      `json:"chance"`
	LevelRange   string   `json:"level_range"`
}

// Colours returns the main colour followed by the secondary colours.
func (p *Pokemon) Colours() []string {
	out := make([]string, 0, 1+len(p.SecondaryColours))
	if p.MainColour != "" {
		out = append(out, p.MainColour)
	}
	return append(out, p.SecondaryColours...)
}

// Generation is the debut generation number (1-based).
// JSON accepts either a number or a label such as "generation-iii" or "III".
type Generation int

var romanGenerations = map[string]int{
	"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5,
	"vi": 6, "vii": 7, "viii": 8, "ix": 9,
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Generation) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		if n <= 0 {
			return fmt.Errorf("generation: want a positive number, got %d", n)
		}
		*g = Generation(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("generation: want number or label, got %s", b)
	}
	v, err := ParseGeneration(s)
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// ParseGeneration parses "3", "III" or "generation-iii".
func ParseGeneration(s string) (Generation, error) {
	label := strings.ToLower(strings.TrimSpace(s))
	label = strings.TrimPrefix(label, "generation-")
	label = strings.TrimPrefix(label, "generation ")
	if n, err := strconv.Atoi(label); err == nil && n > 0 {
		return Generation(n), nil
	}
	if n, ok := romanGenerations[label]; ok {
		return Generation(n), nil
	}
	return 0, fmt.Errorf("generation: unknown label %q", s)
}
