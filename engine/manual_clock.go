package engine

import (
	"sync"
	"time"
)

// ManualClock is a TimeProvider and TickerFactory driven by tests
// Tick advances time by the ticker period and releases one frame
type ManualClock struct {
	mu      sync.Mutex
	now     time.Time
	period  time.Duration
	ch      chan time.Time
	stopped bool
}

// NewManualClock creates a clock starting at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start, ch: make(chan time.Time)}
}

// Now returns the current manual time
func (m *ManualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves time forward without releasing a tick
func (m *ManualClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// NewTicker implements TickerFactory; one ManualClock serves one scheduler
func (m *ManualClock) NewTicker(d time.Duration) Ticker {
	m.mu.Lock()
	m.period = d
	m.stopped = false
	m.mu.Unlock()
	return m
}

// Tick advances by one period and blocks until the scheduler receives it
func (m *ManualClock) Tick() {
	m.mu.Lock()
	m.now = m.now.Add(m.period)
	now := m.now
	m.mu.Unlock()
	m.ch <- now
}

// C implements Ticker
func (m *ManualClock) C() <-chan time.Time {
	return m.ch
}

// Stop implements Ticker
func (m *ManualClock) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

// Stopped reports whether the scheduler released its ticker
func (m *ManualClock) Stopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}
