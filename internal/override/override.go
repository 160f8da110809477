// internal/override/override.go
//
// Operator-maintained table of hardcoded daily answers.
//
// The table is read once at startup from YAML keyed by 8-digit day keys:
//
//	"20251225":
//	  classic: 204
//	  card:
//	    pokemonId: 25
//	    cardType: special
//	    cardFile: pikachu-xmas.png
//
// A mode value is either a bare Pokémon id or a card override mapping.
// Lookups are exact: the day key must be formatted the same way the daily
// package formats it. An entry, when present, wins over procedural selection.

package override

import (
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/pokedle/internal/roster"
)

var dayKeyPattern = regexp.MustCompile(`^\d{8}$`)

// Value is one mode's override for one day.
type Value struct {
	PokemonID int             `yaml:"pokemonId" json:"pokemonId"`
	CardType  roster.CardType `yaml:"cardType,omitempty" json:"cardType,omitempty"`
	CardFile  string          `yaml:"cardFile,omitempty" json:"cardFile,omitempty"`
}

// UnmarshalYAML accepts either a scalar id or a mapping.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var id int
		if err := node.Decode(&id); err != nil {
			return fmt.Errorf("line %d: want pokemon id: %w", node.Line, err)
		}
		*v = Value{PokemonID: id}
		return nil
	}
	type plain Value
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.CardType != "" {
		if _, err := roster.ParseCardType(string(p.CardType)); err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
	}
	*v = Value(p)
	return nil
}

// Table is the static day → mode → Value mapping. A nil *Table has no entries.
type Table struct {
	days map[string]map[string]Value
}

// New builds a table from an already-decoded mapping.
func New(days map[string]map[string]Value) *Table {
	return &Table{days: days}
}

// Load decodes YAML from rd. When knownModes is non-empty, mode keys outside
// it are rejected so operator typos surface at startup.
func Load(rd io.Reader, knownModes []string) (*Table, error) {
	days := map[string]map[string]Value{}
	if err := yaml.NewDecoder(rd).Decode(&days); err != nil && err != io.EOF {
		return nil, fmt.Errorf("overrides: decode: %w", err)
	}
	for day, modes := range days {
		if !dayKeyPattern.MatchString(day) {
			return nil, fmt.Errorf("overrides: day key %q is not YYYYMMDD", day)
		}
		for mode, v := range modes {
			if len(knownModes) > 0 && !lo.Contains(knownModes, mode) {
				return nil, fmt.Errorf("overrides: %s: unknown mode %q", day, mode)
			}
			if v.PokemonID <= 0 {
				return nil, fmt.Errorf("overrides: %s/%s: invalid pokemon id %d", day, mode, v.PokemonID)
			}
		}
	}
	return New(days), nil
}

// LoadFile reads an override YAML file.
func LoadFile(path string, knownModes []string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, knownModes)
}

// Lookup returns the override for (dayKey, mode), if any.
func (t *Table) Lookup(dayKey, mode string) (Value, bool) {
	if t == nil {
		return Value{}, false
	}
	v, ok := t.days[dayKey][mode]
	return v, ok
}

// Days reports how many days carry at least one override.
func (t *Table) Days() int {
	if t == nil {
		return 0
	}
	return len(t.days)
}
