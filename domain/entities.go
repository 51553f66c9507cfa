package domain

import "time"

// User represents an account holder. Nullable columns are pointer fields.
// Credential material never serializes to JSON.
type User struct {
	ID                             uint       `json:"id"`
	FirstName                      string     `json:"first_name"`
	LastName                       string     `json:"last_name"`
	Phone                          string     `json:"phone"`
	Email                          string     `json:"email"`
	PasswordHash                   string     `json:"-"`
	AccessToken                    *string    `json:"-"`
	AccessTokenCreatedAt           *time.Time `json:"-"`
	PasswordRecoveryToken          *string    `json:"-"`
	PasswordRecoveryTokenCreatedAt *time.Time `json:"-"`
	LastLoginAt                    *time.Time `json:"-"`
	LastPasswordChangeAt           *time.Time `json:"-"`
	CreatedAt                      time.Time  `json:"created_at"`
	UpdatedAt                      time.Time  `json:"updated_at"`
}

// Company belongs to exactly one user and is removed when its owner is.
type Company struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserChanges is a partial update of a single user row. Nil fields leave
// the column untouched. Token fields are double pointers so that a
// present-but-nil value writes SQL NULL (clearing a token).
type UserChanges struct {
	PasswordHash                   *string
	AccessToken                    **string
	AccessTokenCreatedAt           **time.Time
	PasswordRecoveryToken          **string
	PasswordRecoveryTokenCreatedAt **time.Time
	LastLoginAt                    *time.Time
	LastPasswordChangeAt           *time.Time
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FirstName string `validate:"required,max=64"`
	LastName  string `validate:"required,max=64"`
	Phone     string `validate:"required,max=16"`
	Email     string `validate:"required,email,max=128"`
	Password  string `validate:"required,max=255"`
}

// CredentialsInput carries a sign-in attempt.
type CredentialsInput struct {
	Email    string `validate:"required,email,max=128"`
	Password string `validate:"required,max=255"`
}

// RecoveryInput requests a password-recovery token for an account.
type RecoveryInput struct {
	Email string `validate:"required,email,max=128"`
}

// RedeemInput redeems a previously issued recovery token.
type RedeemInput struct {
	Email       string `validate:"required,email,max=128"`
	Token       string `validate:"required,max=32"`
	NewPassword string `validate:"required,max=255"`
}

// CompanyInput carries the fields of a company creation request.
type CompanyInput struct {
	Title       string `validate:"required,max=128"`
	Phone       string `validate:"required,max=16"`
	Description string `validate:"required,max=1024"`
}
