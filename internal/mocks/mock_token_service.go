package mocks

import (
	"fmt"

	"github.com/you/accountsvc/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateFunc func() (string, error)
	EqualFunc    func(a, b string) bool

	counter int
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Generate produces an opaque token
func (m *MockTokenService) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	// Default behavior: deterministic, distinct, 32 characters
	m.counter++
	return fmt.Sprintf("mock-token-%04d-%019d", m.counter, 0), nil
}

// Equal compares two tokens
func (m *MockTokenService) Equal(a, b string) bool {
	if m.EqualFunc != nil {
		return m.EqualFunc(a, b)
	}
	// Default behavior: plain equality
	return a == b
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
