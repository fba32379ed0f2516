package engine

import (
	"errors"
	"sync"
	"time"

	"github.com/moveease/sitclock/internal/storage"
)

var (
	ErrEngineExists   = errors.New("engine already running for user")
	ErrEngineNotFound = errors.New("engine not found")
)

// Manager owns one engine per logged-in user. Starting twice for the same
// user is refused rather than stacking duplicate timers; stopping is the
// logout teardown.
type Manager struct {
	mu      sync.Mutex
	engines map[string]*Engine

	store     storage.SnapshotStore
	stats     StatsClient
	loc       *time.Location
	intervals Intervals
}

func NewManager(store storage.SnapshotStore, stats StatsClient, loc *time.Location, intervals Intervals) *Manager {
	return &Manager{
		engines:   make(map[string]*Engine),
		store:     store,
		stats:     stats,
		loc:       loc,
		intervals: intervals,
	}
}

func (m *Manager) Start(userID string) (*Engine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.engines[userID]; exists {
		return nil, ErrEngineExists
	}

	e := NewEngine(userID, m.store, m.stats, m.loc, m.intervals)
	e.Run()
	m.engines[userID] = e

	return e, nil
}

// Stop tears down the user's engine and all its periodic tasks.
func (m *Manager) Stop(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.engines[userID]
	if !exists {
		return ErrEngineNotFound
	}

	e.Close()
	delete(m.engines, userID)
	return nil
}

func (m *Manager) Get(userID string) (*Engine, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.engines[userID]
	return e, exists
}

func (m *Manager) Events(userID string) (<-chan Event, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, exists := m.engines[userID]
	if !exists {
		return nil, false
	}
	return e.Events(), true
}

// CloseAll stops every engine, for process shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, e := range m.engines {
		e.Close()
		delete(m.engines, id)
	}
}
