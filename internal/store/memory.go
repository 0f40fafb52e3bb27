// internal/store/memory.go
//
// In-memory implementation of the session Store.
// Holds live *game.Game values for the HTTP API between requests.
//
// Characteristics:
//   - Games keyed by Game.ID in a map guarded by an RWMutex.
//   - Update runs its callback under the write lock, so guesses against
//     the same game are applied one at a time.
//   - Each game remembers when it was last saved or updated; Prune drops
//     games idle for longer than a given duration.
//   - State is lost when the process restarts; finished games are
//     recorded durably by the history package.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/evilhangman/internal/game"
)

// ErrNotFound is returned for unknown game IDs.
var ErrNotFound = errors.New("store: game not found")

// Store defines the persistence interface for live game sessions.
type Store interface {
	// Save persists or replaces a game.
	Save(ctx context.Context, g *game.Game) error

	// Get retrieves a game by ID. Callers must not mutate the result;
	// use Update for that.
	Get(ctx context.Context, id string) (*game.Game, error)

	// Update runs fn with exclusive access to the game.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Delete removes a game; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Prune removes games not saved or updated within idle and reports
	// how many were removed.
	Prune(ctx context.Context, idle time.Duration) (int, error)

	// Len reports how many games are held.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu    sync.RWMutex      // guards games and the games they point to
	games map[string]*entry // keyed by Game.ID
	now   func() time.Time
}

type entry struct {
	g       *game.Game
	touched time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{games: make(map[string]*entry), now: time.Now}
}

func (m *memory) Save(ctx context.Context, g *game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = &entry{g: g, touched: m.now()}
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.games[id]; ok {
		return e.g, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return ErrNotFound
	}
	e.touched = m.now()
	return fn(e.g)
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

func (m *memory) Prune(ctx context.Context, idle time.Duration) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.touched.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n, nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
