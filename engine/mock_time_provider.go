package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a manually driven clock for deterministic scheduling tests
// Each Now call advances the clock by Step, so a positive Step simulates a lagging host
type MockTimeProvider struct {
	mu   sync.Mutex
	now  time.Time
	Step time.Duration
}

// NewMockTimeProvider creates a mock clock starting at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mock time, then advances it by Step
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.now
	m.now = m.now.Add(m.Step)
	return t
}

// Advance moves the mock clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
