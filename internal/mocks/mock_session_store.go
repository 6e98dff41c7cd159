package mocks

import (
	"context"
	"sync"

	"github.com/vcm-medical/vcmclient/domain"
)

// MockSessionStore implements domain.SessionStore for testing. Without
// override funcs it behaves as an in-memory store, which is what most
// controller tests want.
type MockSessionStore struct {
	LoadFunc  func(ctx context.Context) (*domain.Session, error)
	SaveFunc  func(ctx context.Context, session *domain.Session) error
	ClearFunc func(ctx context.Context) error

	mu         sync.Mutex
	saved      *domain.Session
	SaveCalls  int
	ClearCalls int
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

// Load returns the stored session
func (m *MockSessionStore) Load(ctx context.Context) (*domain.Session, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil, domain.ErrSessionNotFound
	}
	return m.saved, nil
}

// Save stores the session
func (m *MockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	m.mu.Lock()
	m.SaveCalls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, session)
	}
	m.mu.Lock()
	m.saved = session
	m.mu.Unlock()
	return nil
}

// Clear removes the stored session
func (m *MockSessionStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	m.mu.Lock()
	m.saved = nil
	m.mu.Unlock()
	return nil
}

// Saved returns the currently stored session, if any.
func (m *MockSessionStore) Saved() *domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)
