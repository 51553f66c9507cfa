package mocks

import (
	"context"

	"github.com/you/accountsvc/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc            func(ctx context.Context, user *domain.User) error
	FindByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	FindByAccessTokenFunc func(ctx context.Context, token string) (*domain.User, error)
	UpdateFunc            func(ctx context.Context, userID uint, changes *domain.UserChanges) error
	CreateCompanyFunc     func(ctx context.Context, company *domain.Company) error
	CompaniesByOwnerFunc  func(ctx context.Context, userID uint) ([]domain.Company, error)
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success
	user.ID = 1
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// FindByAccessToken finds a user by access token
func (m *MockUserRepository) FindByAccessToken(ctx context.Context, token string) (*domain.User, error) {
	if m.FindByAccessTokenFunc != nil {
		return m.FindByAccessTokenFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// Update applies a partial update to a user row
func (m *MockUserRepository) Update(ctx context.Context, userID uint, changes *domain.UserChanges) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, userID, changes)
	}
	// Default behavior: success
	return nil
}

// CreateCompany creates a new company
func (m *MockUserRepository) CreateCompany(ctx context.Context, company *domain.Company) error {
	if m.CreateCompanyFunc != nil {
		return m.CreateCompanyFunc(ctx, company)
	}
	// Default behavior: success
	company.ID = 1
	return nil
}

// CompaniesByOwner lists companies owned by a user
func (m *MockUserRepository) CompaniesByOwner(ctx context.Context, userID uint) ([]domain.Company, error) {
	if m.CompaniesByOwnerFunc != nil {
		return m.CompaniesByOwnerFunc(ctx, userID)
	}
	// Default behavior: empty list
	return []domain.Company{}, nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
