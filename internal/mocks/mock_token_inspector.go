package mocks

import "github.com/vcm-medical/vcmclient/domain"

// MockTokenInspector implements domain.TokenInspector for testing
type MockTokenInspector struct {
	ExpiredFunc func(token string) bool
}

// NewMockTokenInspector creates a new MockTokenInspector
func NewMockTokenInspector() *MockTokenInspector {
	return &MockTokenInspector{}
}

// Expired reports whether the token is expired
func (m *MockTokenInspector) Expired(token string) bool {
	if m.ExpiredFunc != nil {
		return m.ExpiredFunc(token)
	}
	return false
}

// Compile-time interface compliance verification
var _ domain.TokenInspector = (*MockTokenInspector)(nil)
