package mocks

import (
	"context"

	"github.com/you/accountsvc/domain"
)

// MockAccountService implements domain.AccountService interface for testing
type MockAccountService struct {
	RegisterFunc            func(ctx context.Context, in domain.RegisterInput) (*domain.User, error)
	AuthenticateFunc        func(ctx context.Context, in domain.CredentialsInput) (*domain.User, error)
	IssueRecoveryTokenFunc  func(ctx context.Context, in domain.RecoveryInput) error
	RedeemRecoveryTokenFunc func(ctx context.Context, in domain.RedeemInput) error
	UserByAccessTokenFunc   func(ctx context.Context, token string) (*domain.User, error)
	CreateCompanyFunc       func(ctx context.Context, user *domain.User, in domain.CompanyInput) (*domain.Company, error)
	ListCompaniesFunc       func(ctx context.Context, user *domain.User) ([]domain.Company, error)
}

// NewMockAccountService creates a new MockAccountService with default behaviors
func NewMockAccountService() *MockAccountService {
	return &MockAccountService{}
}

// Register registers a user
func (m *MockAccountService) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, in)
	}
	return &domain.User{ID: 1, FirstName: in.FirstName, LastName: in.LastName, Phone: in.Phone, Email: in.Email}, nil
}

// Authenticate signs a user in
func (m *MockAccountService) Authenticate(ctx context.Context, in domain.CredentialsInput) (*domain.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, in)
	}
	token := "mock-access-token-0123456789abcdef"
	return &domain.User{ID: 1, Email: in.Email, AccessToken: &token}, nil
}

// IssueRecoveryToken issues a password recovery token
func (m *MockAccountService) IssueRecoveryToken(ctx context.Context, in domain.RecoveryInput) error {
	if m.IssueRecoveryTokenFunc != nil {
		return m.IssueRecoveryTokenFunc(ctx, in)
	}
	return nil
}

// RedeemRecoveryToken redeems a recovery token
func (m *MockAccountService) RedeemRecoveryToken(ctx context.Context, in domain.RedeemInput) error {
	if m.RedeemRecoveryTokenFunc != nil {
		return m.RedeemRecoveryTokenFunc(ctx, in)
	}
	return nil
}

// UserByAccessToken resolves a bearer token to a user
func (m *MockAccountService) UserByAccessToken(ctx context.Context, token string) (*domain.User, error) {
	if m.UserByAccessTokenFunc != nil {
		return m.UserByAccessTokenFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrUserNotFound
}

// CreateCompany creates a company for a user
func (m *MockAccountService) CreateCompany(ctx context.Context, user *domain.User, in domain.CompanyInput) (*domain.Company, error) {
	if m.CreateCompanyFunc != nil {
		return m.CreateCompanyFunc(ctx, user, in)
	}
	return &domain.Company{ID: 1, UserID: user.ID, Title: in.Title, Phone: in.Phone, Description: in.Description}, nil
}

// ListCompanies lists a user's companies
func (m *MockAccountService) ListCompanies(ctx context.Context, user *domain.User) ([]domain.Company, error) {
	if m.ListCompaniesFunc != nil {
		return m.ListCompaniesFunc(ctx, user)
	}
	return []domain.Company{}, nil
}

// Compile-time interface compliance verification
var _ domain.AccountService = (*MockAccountService)(nil)
