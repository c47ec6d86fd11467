// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Active game sessions live only for the lifetime of the process; finished
// games are persisted separately to the database by the HTTP layer.
//
// Characteristics:
//   - Stores *Session objects keyed by UUID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Errors are returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hforsten/unscramble/internal/game"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Session pairs a game engine with its identity. The engine holds all game
// state; the session only adds what the transport layer needs.
type Session struct {
	ID        string
	Engine    *game.Engine
	CreatedAt time.Time
}

// NewSession wraps an engine with a fresh UUID.
func NewSession(e *game.Engine) *Session {
	return &Session{ID: uuid.NewString(), Engine: e, CreatedAt: time.Now().UTC()}
}

// Store defines the session registry interface.
// Implementations may be backed by memory (this package), Redis, etc.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session is unknown.
	Get(ctx context.Context, id string) (*Session, error)
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}
