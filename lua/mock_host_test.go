package lua

import (
	"sync"
	"time"
)

// MockHost implements Host for testing.
type MockHost struct {
	mu sync.Mutex

	// Captured calls
	Pushed          []ScriptMessage
	PrintCalls      []string
	QuitCalled      bool
	ReloadCalls     int
	Boxes           []struct{ Title, Text string }
	Canceled        []int
	ScheduledTimers []struct {
		ID       int
		Duration time.Duration
		Repeat   bool
	}

	// Timer ID generation
	nextTimerID int
}

func NewMockHost() *MockHost {
	return &MockHost{}
}

func (m *MockHost) Push(msg ScriptMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Pushed = append(m.Pushed, msg)
}

func (m *MockHost) Print(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PrintCalls = append(m.PrintCalls, text)
}

func (m *MockHost) Quit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuitCalled = true
}

func (m *MockHost) Reload() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReloadCalls++
}

func (m *MockHost) MessageBox(title, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Boxes = append(m.Boxes, struct{ Title, Text string }{title, text})
}

func (m *MockHost) Windows() []string {
	return []string{"Counter", "Counter"}
}

func (m *MockHost) TimerAfter(d time.Duration) int {
	return m.schedule(d, false)
}

func (m *MockHost) TimerEvery(d time.Duration) int {
	return m.schedule(d, true)
}

func (m *MockHost) schedule(d time.Duration, repeat bool) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextTimerID++
	id := m.nextTimerID
	m.ScheduledTimers = append(m.ScheduledTimers, struct {
		ID       int
		Duration time.Duration
		Repeat   bool
	}{id, d, repeat})
	return id
}

func (m *MockHost) TimerCancel(id int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Canceled = append(m.Canceled, id)
}

func (m *MockHost) TimerCancelAll() {
	// No-op for tests
}

// Helper methods for tests

func (m *MockHost) DrainPrintCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := m.PrintCalls
	m.PrintCalls = nil
	return calls
}

func (m *MockHost) DrainPushed() []ScriptMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	msgs := m.Pushed
	m.Pushed = nil
	return msgs
}
