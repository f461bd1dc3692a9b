package storage

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jwebster45206/school-maze/pkg/state"
)

// MockStorage is a mock implementation of Storage for testing. Saves are
// stored serialized so later mutation of the caller's state does not leak in.
type MockStorage struct {
	mu        sync.RWMutex
	data      []byte
	saves     int
	pingError error
	saveError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

func NewMockStorage() *MockStorage {
	return &MockStorage{}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// SetSaveError makes every later save fail.
func (m *MockStorage) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveError = err
}

// SetRaw stores an arbitrary blob, e.g. to simulate corruption.
func (m *MockStorage) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
}

func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

func (m *MockStorage) Close() error {
	return nil
}

func (m *MockStorage) SaveGameState(ctx context.Context, gs *state.GameState) error {
	if gs == nil {
		return ErrNilGameState
	}
	data, err := json.Marshal(gs)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.data = data
	m.saves++
	return nil
}

func (m *MockStorage) LoadGameState(ctx context.Context) (*state.GameState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.data == nil {
		return nil, nil
	}
	var gs state.GameState
	if err := json.Unmarshal(m.data, &gs); err != nil {
		return nil, nil
	}
	return &gs, nil
}

func (m *MockStorage) DeleteGameState(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

// HasSave reports whether the slot holds data.
func (m *MockStorage) HasSave() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data != nil
}

// SaveCount returns the number of successful saves.
func (m *MockStorage) SaveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

// MockLeaderboard keeps entries in memory.
type MockLeaderboard struct {
	mu      sync.RWMutex
	entries []Entry
}

var _ Leaderboard = (*MockLeaderboard)(nil)

func NewMockLeaderboard(entries ...Entry) *MockLeaderboard {
	return &MockLeaderboard{entries: RankEntries(entries)}
}

func (m *MockLeaderboard) RecordResult(name string, score int, seconds float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = RankEntries(append(m.entries, Entry{Name: name, Score: score, Seconds: seconds}))
	return nil
}

func (m *MockLeaderboard) TopEntries() ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return RankEntries(m.entries), nil
}
