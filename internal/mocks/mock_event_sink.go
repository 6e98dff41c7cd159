package mocks

import (
	"sync"

	"github.com/vcm-medical/vcmclient/domain"
)

// MockEventSink implements domain.EventSink, recording every published
// event for assertions.
type MockEventSink struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

// NewMockEventSink creates a new MockEventSink
func NewMockEventSink() *MockEventSink {
	return &MockEventSink{}
}

// Publish records the event
func (m *MockEventSink) Publish(event domain.AuthEvent) {
	m.mu.Lock()
	m.events = append(m.events, event)
	m.mu.Unlock()
}

// Events returns a copy of everything published so far
func (m *MockEventSink) Events() []domain.AuthEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.AuthEvent, len(m.events))
	copy(out, m.events)
	return out
}

// Last returns the most recent event, or a zero event if none
func (m *MockEventSink) Last() domain.AuthEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == 0 {
		return domain.AuthEvent{}
	}
	return m.events[len(m.events)-1]
}

// Compile-time interface compliance verification
var _ domain.EventSink = (*MockEventSink)(nil)
