// path: internal/httpx/manager.go
package httpx

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"laserchess/internal/game"
)

// ErrGameNotFound reports an unknown game ID.
var ErrGameNotFound = errors.New("game not found")

// managedGame pairs one engine with the hub pushing its turn events.
// The engine is not safe for concurrent use; every access holds mu.
type managedGame struct {
	id        string
	mu        sync.Mutex
	engine    *game.Engine
	hub       *eventHub
	createdAt time.Time
	updatedAt time.Time
}

// Manager owns every live game, keyed by UUID. New games start from the
// manager's configured layout.
type Manager struct {
	mu     sync.RWMutex
	games  map[string]*managedGame
	layout game.Layout
}

func NewManager(layout game.Layout) *Manager {
	return &Manager{
		games:  make(map[string]*managedGame),
		layout: layout,
	}
}

// Create starts a fresh game and registers it under a new UUID.
func (m *Manager) Create() (*managedGame, error) {
	engine, err := game.NewEngine(m.layout)
	if err != nil {
		return nil, err
	}
	g := &managedGame{
		id:        uuid.NewString(),
		engine:    engine,
		hub:       newEventHub(),
		createdAt: time.Now(),
	}
	g.updatedAt = g.createdAt

	m.mu.Lock()
	m.games[g.id] = g
	m.mu.Unlock()
	return g, nil
}

// Get looks up a live game by ID.
func (m *Manager) Get(id string) (*managedGame, error) {
	m.mu.RLock()
	g, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}

// Len reports the number of live games.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
