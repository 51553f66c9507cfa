package services_test

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/you/accountsvc/domain"
	"github.com/you/accountsvc/internal/infrastructure/auth"
	"github.com/you/accountsvc/internal/infrastructure/repositories"
	"github.com/you/accountsvc/internal/services"
)

// newFlowService wires the real service against an in-memory store, so the
// full credential lifecycle can be walked end to end.
func newFlowService(t *testing.T) (domain.AccountService, domain.UserRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&repositories.DBUser{}, &repositories.DBCompany{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	repo := repositories.NewUserRepository(db)
	svc := services.NewAccountService(repo, auth.NewPasswordService(bcrypt.MinCost), auth.NewTokenService(32))
	return svc, repo
}

func register(t *testing.T, svc domain.AccountService, email, password string) *domain.User {
	t.Helper()

	user, err := svc.Register(context.Background(), domain.RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "5551234567",
		Email:     email,
		Password:  password,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return user
}

func TestAccountFlow_RegisterThenSignIn(t *testing.T) {
	svc, repo := newFlowService(t)
	ctx := context.Background()

	created := register(t, svc, "jane@example.com", "Secr3t!")

	stored, err := repo.FindByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("created user not retrievable: %v", err)
	}
	if stored.PasswordHash == "Secr3t!" {
		t.Error("stored password must not equal the plaintext")
	}
	if stored.ID != created.ID {
		t.Errorf("expected id %d, got %d", created.ID, stored.ID)
	}

	signedIn, err := svc.Authenticate(ctx, domain.CredentialsInput{Email: "jane@example.com", Password: "Secr3t!"})
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if signedIn.AccessToken == nil || len(*signedIn.AccessToken) < 32 {
		t.Fatal("expected an access token of at least 32 characters")
	}

	// The token resolves back to the same account.
	resolved, err := svc.UserByAccessToken(ctx, *signedIn.AccessToken)
	if err != nil {
		t.Fatalf("token lookup failed: %v", err)
	}
	if resolved.ID != created.ID {
		t.Errorf("token resolved to user %d, expected %d", resolved.ID, created.ID)
	}

	// Signing in again replaces the token; the old one stops resolving.
	again, err := svc.Authenticate(ctx, domain.CredentialsInput{Email: "jane@example.com", Password: "Secr3t!"})
	if err != nil {
		t.Fatalf("second authenticate failed: %v", err)
	}
	if *again.AccessToken == *signedIn.AccessToken {
		t.Error("expected a fresh token on each sign in")
	}
	if _, err := svc.UserByAccessToken(ctx, *signedIn.AccessToken); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected the replaced token to stop resolving, got %v", err)
	}
}

func TestAccountFlow_DuplicateRegistrationLeavesFirstIntact(t *testing.T) {
	svc, repo := newFlowService(t)
	ctx := context.Background()

	first := register(t, svc, "jane@example.com", "Secr3t!")

	_, err := svc.Register(ctx, domain.RegisterInput{
		FirstName: "Impostor",
		LastName:  "Doe",
		Phone:     "5559999999",
		Email:     "jane@example.com",
		Password:  "Other!",
	})
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}

	stored, err := repo.FindByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if stored.ID != first.ID || stored.FirstName != "Jane" {
		t.Error("expected the first registration to be unchanged")
	}
}

func TestAccountFlow_SignInFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newFlowService(t)
	ctx := context.Background()

	register(t, svc, "jane@example.com", "Secr3t!")

	_, wrongPw := svc.Authenticate(ctx, domain.CredentialsInput{Email: "jane@example.com", Password: "wrong"})
	_, unknown := svc.Authenticate(ctx, domain.CredentialsInput{Email: "nobody@example.com", Password: "Secr3t!"})

	if wrongPw == nil || unknown == nil {
		t.Fatal("expected both sign-in attempts to fail")
	}
	// Distinct domain errors are fine; the boundary collapses them into one
	// response. They must both belong to the collapsed pair.
	if !errors.Is(wrongPw, domain.ErrInvalidPassword) {
		t.Errorf("expected ErrInvalidPassword, got %v", wrongPw)
	}
	if !errors.Is(unknown, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", unknown)
	}
}

func TestAccountFlow_RecoveryLifecycle(t *testing.T) {
	svc, repo := newFlowService(t)
	ctx := context.Background()

	register(t, svc, "jane@example.com", "OldSecr3t!")

	if err := svc.IssueRecoveryToken(ctx, domain.RecoveryInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("issue recovery token failed: %v", err)
	}
	stored, _ := repo.FindByEmail(ctx, "jane@example.com")
	if stored.PasswordRecoveryToken == nil {
		t.Fatal("expected a stored recovery token")
	}
	firstToken := *stored.PasswordRecoveryToken

	// A second issuance invalidates the first token.
	if err := svc.IssueRecoveryToken(ctx, domain.RecoveryInput{Email: "jane@example.com"}); err != nil {
		t.Fatalf("second issue failed: %v", err)
	}
	err := svc.RedeemRecoveryToken(ctx, domain.RedeemInput{
		Email:       "jane@example.com",
		Token:       firstToken,
		NewPassword: "NewSecr3t!",
	})
	if !errors.Is(err, domain.ErrInvalidRecoveryToken) {
		t.Fatalf("expected stale token to be rejected, got %v", err)
	}

	stored, _ = repo.FindByEmail(ctx, "jane@example.com")
	currentToken := *stored.PasswordRecoveryToken

	// A failed attempt left the current token usable.
	if err := svc.RedeemRecoveryToken(ctx, domain.RedeemInput{
		Email:       "jane@example.com",
		Token:       currentToken,
		NewPassword: "NewSecr3t!",
	}); err != nil {
		t.Fatalf("redeem failed: %v", err)
	}

	// Password changed, token cleared.
	if _, err := svc.Authenticate(ctx, domain.CredentialsInput{Email: "jane@example.com", Password: "OldSecr3t!"}); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Errorf("expected the old password to be rejected, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, domain.CredentialsInput{Email: "jane@example.com", Password: "NewSecr3t!"}); err != nil {
		t.Errorf("expected the new password to work, got %v", err)
	}
	stored, _ = repo.FindByEmail(ctx, "jane@example.com")
	if stored.PasswordRecoveryToken != nil || stored.PasswordRecoveryTokenCreatedAt != nil {
		t.Error("expected the recovery token and its timestamp to be cleared")
	}
	if stored.LastPasswordChangeAt == nil {
		t.Error("expected last password change time to be recorded")
	}

	// The token is single-shot; redeeming it again fails.
	err = svc.RedeemRecoveryToken(ctx, domain.RedeemInput{
		Email:       "jane@example.com",
		Token:       currentToken,
		NewPassword: "ThirdSecr3t!",
	})
	if !errors.Is(err, domain.ErrInvalidRecoveryToken) {
		t.Errorf("expected second redemption to fail, got %v", err)
	}
}

func TestAccountFlow_Companies(t *testing.T) {
	svc, _ := newFlowService(t)
	ctx := context.Background()

	owner := register(t, svc, "owner@example.com", "pw")
	other := register(t, svc, "other@example.com", "pw")

	if _, err := svc.CreateCompany(ctx, owner, domain.CompanyInput{
		Title:       "Acme Inc",
		Phone:       "5550000000",
		Description: "widgets",
	}); err != nil {
		t.Fatalf("create company failed: %v", err)
	}

	mine, err := svc.ListCompanies(ctx, owner)
	if err != nil {
		t.Fatalf("list companies failed: %v", err)
	}
	if len(mine) != 1 || mine[0].Title != "Acme Inc" {
		t.Errorf("unexpected companies for owner: %+v", mine)
	}

	theirs, err := svc.ListCompanies(ctx, other)
	if err != nil {
		t.Fatalf("list companies failed: %v", err)
	}
	if len(theirs) != 0 {
		t.Errorf("expected no companies for the other user, got %+v", theirs)
	}
}
