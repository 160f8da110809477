// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Sessions are ephemeral: a player's in-progress guesses live here until the
// win is persisted to the results table.
//
// Characteristics:
//   - Stores *game.Game objects keyed by ID in a map.
//   - A second index maps player|mode|day to the game ID so a reload resumes
//     the same session instead of starting a new one.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Sessions for days other than the current one can be dropped with Prune.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/pokedle/internal/daily"
	"github.com/robalobadob/pokedle/internal/game"
)

// ErrNotFound is returned by Get and Active for unknown sessions.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save persists or updates a session owned by playerID.
	Save(ctx context.Context, playerID string, g *game.Game) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Active returns the player's session for mode and day.
	Active(ctx context.Context, playerID string, mode daily.Mode, day daily.DayKey) (*game.Game, error)

	// Prune drops every session whose day is not keep and returns how many went.
	Prune(ctx context.Context, keep daily.DayKey) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex          // guards both maps
	games  map[string]*game.Game // keyed by Game.ID
	active map[string]string     // playerID|mode|day → Game.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		games:  make(map[string]*game.Game),
		active: make(map[string]string),
	}
}

func activeKey(playerID string, mode daily.Mode, day daily.DayKey) string {
	return playerID + "|" + string(mode) + "|" + day.String()
}

// Save adds or updates the game and its player index entry.
func (m *memory) Save(ctx context.Context, playerID string, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
	m.active[activeKey(playerID, g.Mode, g.Day)] = g.ID
	return nil
}

// Get looks up a game by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.games[id]; ok {
		return g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Active(ctx context.Context, playerID string, mode daily.Mode, day daily.DayKey) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if id, ok := m.active[activeKey(playerID, mode, day)]; ok {
		if g, ok := m.games[id]; ok {
			return g, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memory) Prune(ctx context.Context, keep daily.DayKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, g := range m.games {
		if g.Day != keep {
			delete(m.games, id)
			n++
		}
	}
	for k, id := range m.active {
		if _, ok := m.games[id]; !ok {
			delete(m.active, k)
		}
	}
	return n
}
