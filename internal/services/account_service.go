package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/you/accountsvc/domain"
)

// AccountServiceImpl implements domain.AccountService
type AccountServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	validate    *validator.Validate
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
) domain.AccountService {
	return &AccountServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		validate:    validator.New(),
	}
}

// Register implements domain.AccountService
func (s *AccountServiceImpl) Register(ctx context.Context, in domain.RegisterInput) (*domain.User, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	_, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hash, err := s.passwordSvc.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Phone:        in.Phone,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate implements domain.AccountService. On success the returned
// user carries a freshly issued access token; the previous token for the
// account is overwritten.
func (s *AccountServiceImpl) Authenticate(ctx context.Context, in domain.CredentialsInput) (*domain.User, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, in.Password) {
		return nil, domain.ErrInvalidPassword
	}

	token, err := s.tokenSvc.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := time.Now()
	tokenPtr := &token
	timePtr := &now
	changes := &domain.UserChanges{
		AccessToken:          &tokenPtr,
		AccessTokenCreatedAt: &timePtr,
		LastLoginAt:          &now,
	}
	if err := s.userRepo.Update(ctx, user.ID, changes); err != nil {
		return nil, fmt.Errorf("failed to store access token: %w", err)
	}

	user.AccessToken = &token
	user.AccessTokenCreatedAt = &now
	user.LastLoginAt = &now
	return user, nil
}

// IssueRecoveryToken implements domain.AccountService. Any previously
// issued recovery token is overwritten and thereby invalidated.
func (s *AccountServiceImpl) IssueRecoveryToken(ctx context.Context, in domain.RecoveryInput) error {
	if err := s.check(in); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	token, err := s.tokenSvc.Generate()
	if err != nil {
		return fmt.Errorf("failed to generate recovery token: %w", err)
	}

	now := time.Now()
	tokenPtr := &token
	timePtr := &now
	changes := &domain.UserChanges{
		PasswordRecoveryToken:          &tokenPtr,
		PasswordRecoveryTokenCreatedAt: &timePtr,
	}
	if err := s.userRepo.Update(ctx, user.ID, changes); err != nil {
		return fmt.Errorf("failed to store recovery token: %w", err)
	}

	return nil
}

// RedeemRecoveryToken implements domain.AccountService. The token is
// single-shot on success: the password is replaced and the token cleared in
// one update. Failed attempts leave the stored token in place. Token age is
// not checked.
func (s *AccountServiceImpl) RedeemRecoveryToken(ctx context.Context, in domain.RedeemInput) error {
	if err := s.check(in); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return err
	}

	if user.PasswordRecoveryToken == nil {
		return domain.ErrInvalidRecoveryToken
	}
	if !s.tokenSvc.Equal(*user.PasswordRecoveryToken, in.Token) {
		return domain.ErrInvalidRecoveryToken
	}

	hash, err := s.passwordSvc.Hash(in.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	var nilToken *string
	var nilTime *time.Time
	changes := &domain.UserChanges{
		PasswordHash:                   &hash,
		PasswordRecoveryToken:          &nilToken,
		PasswordRecoveryTokenCreatedAt: &nilTime,
		LastPasswordChangeAt:           &now,
	}
	if err := s.userRepo.Update(ctx, user.ID, changes); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}

	return nil
}

// UserByAccessToken implements domain.AccountService
func (s *AccountServiceImpl) UserByAccessToken(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUserNotFound
	}
	return s.userRepo.FindByAccessToken(ctx, token)
}

// CreateCompany implements domain.AccountService
func (s *AccountServiceImpl) CreateCompany(ctx context.Context, user *domain.User, in domain.CompanyInput) (*domain.Company, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	company := &domain.Company{
		UserID:      user.ID,
		Title:       in.Title,
		Phone:       in.Phone,
		Description: in.Description,
	}
	if err := s.userRepo.CreateCompany(ctx, company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	return company, nil
}

// ListCompanies implements domain.AccountService
func (s *AccountServiceImpl) ListCompanies(ctx context.Context, user *domain.User) ([]domain.Company, error) {
	return s.userRepo.CompaniesByOwner(ctx, user.ID)
}

// check validates an input struct and converts validator failures into a
// domain.ValidationError keyed by snake_case field names.
func (s *AccountServiceImpl) check(in interface{}) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validation: %w", err)
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[snakeCase(fe.Field())] = messageFor(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return "is invalid"
	}
}

func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
