// internal/roster/roster.go
//
// Ordered, immutable Pokémon roster.
//
// Responsibilities:
//   - Decode the roster JSON document (an array of Pokemon).
//   - Validate it once: unique positive ids, unique names, 1–2 types.
//   - Redact each entry's own name from its Pokédex entries.
//   - Provide positional access (the daily selector indexes by position),
//     id lookup, case-insensitive name lookup, and the sorted name list
//     used for input autocomplete.
//
// Roster order is load-bearing: the same document must produce the same
// answers, so entries are never re-sorted.

package roster

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// ErrEmpty is returned when a roster document holds no entries.
var ErrEmpty = errors.New("roster: no entries")

// Roster is the loaded reference list. A nil *Roster behaves as an empty,
// not-yet-loaded roster.
type Roster struct {
	list   []*Pokemon
	byID   map[int]*Pokemon
	byName map[string]*Pokemon
	names  []string
}

// New validates entries and builds the lookup indexes. The slice order is kept.
func New(entries []Pokemon) (*Roster, error) {
	if len(entries) == 0 {
		return nil, ErrEmpty
	}
	r := &Roster{
		list:   make([]*Pokemon, 0, len(entries)),
		byID:   make(map[int]*Pokemon, len(entries)),
		byName: make(map[string]*Pokemon, len(entries)),
	}
	for i := range entries {
		p := &entries[i]
		if p.ID <= 0 {
			return nil, fmt.Errorf("roster: entry %d: invalid id %d", i, p.ID)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("roster: duplicate id %d", p.ID)
		}
		key := normalizeName(p.Name)
		if key == "" {
			return nil, fmt.Errorf("roster: id %d: empty name", p.ID)
		}
		if _, dup := r.byName[key]; dup {
			return nil, fmt.Errorf("roster: duplicate name %q", p.Name)
		}
		if len(p.Types) < 1 || len(p.Types) > 2 {
			return nil, fmt.Errorf("roster: %s: want 1-2 types, got %d", p.Name, len(p.Types))
		}
		if p.EvolutionStage == 0 {
			p.EvolutionStage = 1
		}
		p.FlavorTextEntries = redactEntries(strings.TrimSpace(p.Name), p.FlavorTextEntries)
		r.list = append(r.list, p)
		r.byID[p.ID] = p
		r.byName[key] = p
	}
	r.names = lo.Map(r.list, func(p *Pokemon, _ int) string { return p.Name })
	sort.Strings(r.names)
	return r, nil
}

// Load decodes a roster JSON array from rd.
func Load(rd io.Reader) (*Roster, error) {
	var entries []Pokemon
	if err := json.NewDecoder(rd).Decode(&entries); err != nil {
		return nil, fmt.Errorf("roster: decode: %w", err)
	}
	return New(entries)
}

// LoadFile reads a roster JSON file.
func LoadFile(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Len reports the number of entries (0 for a nil roster).
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.list)
}

// At returns the entry at position i.
func (r *Roster) At(i int) *Pokemon { return r.list[i] }

// All returns the entries in roster order. Callers must not modify the slice.
func (r *Roster) All() []*Pokemon {
	if r == nil {
		return nil
	}
	return r.list
}

// ByID looks up an entry by Pokémon id.
func (r *Roster) ByID(id int) (*Pokemon, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byID[id]
	return p, ok
}

// ByName looks up an entry by name, ignoring case and surrounding space.
func (r *Roster) ByName(name string) (*Pokemon, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byName[normalizeName(name)]
	return p, ok
}

// Names returns all names sorted alphabetically.
func (r *Roster) Names() []string {
	if r == nil {
		return nil
	}
	return r.names
}

// PreEvolution returns the entry p evolves from, if it is in the roster.
func (r *Roster) PreEvolution(p *Pokemon) (*Pokemon, bool) {
	if p == nil || p.EvolvesFrom == 0 {
		return nil, false
	}
	return r.ByID(p.EvolvesFrom)
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
