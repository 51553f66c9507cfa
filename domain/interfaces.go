package domain

import "context"

// UserRepository defines user and company data access operations.
// Lookups return ErrUserNotFound when no row matches; callers translate
// that into the appropriate domain failure.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByAccessToken(ctx context.Context, token string) (*User, error)
	Update(ctx context.Context, userID uint, changes *UserChanges) error
	CreateCompany(ctx context.Context, company *Company) error
	CompaniesByOwner(ctx context.Context, userID uint) ([]Company, error)
}

// AccountService defines the account business logic.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*User, error)
	Authenticate(ctx context.Context, in CredentialsInput) (*User, error)
	IssueRecoveryToken(ctx context.Context, in RecoveryInput) error
	RedeemRecoveryToken(ctx context.Context, in RedeemInput) error
	UserByAccessToken(ctx context.Context, token string) (*User, error)
	CreateCompany(ctx context.Context, user *User, in CompanyInput) (*Company, error)
	ListCompanies(ctx context.Context, user *User) ([]Company, error)
}

// PasswordService defines password hashing operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines opaque token operations.
type TokenService interface {
	Generate() (string, error)
	Equal(a, b string) bool
}
