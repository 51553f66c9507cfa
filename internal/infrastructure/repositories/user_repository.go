package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/you/accountsvc/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM.
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID                             uint       `gorm:"primaryKey"`
	FirstName                      string     `gorm:"size:64;not null"`
	LastName                       string     `gorm:"size:64;not null"`
	Phone                          string     `gorm:"size:16;not null"`
	Email                          string     `gorm:"uniqueIndex;size:128;not null"`
	PasswordHash                   string     `gorm:"column:password;size:255;not null"`
	AccessToken                    *string    `gorm:"uniqueIndex;size:64"`
	AccessTokenCreatedAt           *time.Time
	PasswordRecoveryToken          *string `gorm:"size:64"`
	PasswordRecoveryTokenCreatedAt *time.Time
	LastLoginAt                    *time.Time
	LastPasswordChangeAt           *time.Time
	CreatedAt                      time.Time
	UpdatedAt                      time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// DBCompany represents the database model for Company. The foreign key
// cascades on update and delete, so an orphaned company cannot exist.
type DBCompany struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:128;not null"`
	Phone       string `gorm:"size:16;not null"`
	Description string `gorm:"size:1024;not null"`
	UserID      uint   `gorm:"index;not null"`
	User        DBUser `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (DBCompany) TableName() string {
	return "companies"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByAccessToken implements domain.UserRepository
func (r *UserRepositoryImpl) FindByAccessToken(ctx context.Context, token string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("access_token = ?", token).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository. Only the supplied fields are
// written; a present-but-nil token field writes NULL. The write is a single
// row update with last-write-wins semantics.
func (r *UserRepositoryImpl) Update(ctx context.Context, userID uint, changes *domain.UserChanges) error {
	columns := map[string]interface{}{}
	if changes.PasswordHash != nil {
		columns["password"] = *changes.PasswordHash
	}
	if changes.AccessToken != nil {
		columns["access_token"] = *changes.AccessToken
	}
	if changes.AccessTokenCreatedAt != nil {
		columns["access_token_created_at"] = *changes.AccessTokenCreatedAt
	}
	if changes.PasswordRecoveryToken != nil {
		columns["password_recovery_token"] = *changes.PasswordRecoveryToken
	}
	if changes.PasswordRecoveryTokenCreatedAt != nil {
		columns["password_recovery_token_created_at"] = *changes.PasswordRecoveryTokenCreatedAt
	}
	if changes.LastLoginAt != nil {
		columns["last_login_at"] = *changes.LastLoginAt
	}
	if changes.LastPasswordChangeAt != nil {
		columns["last_password_change_at"] = *changes.LastPasswordChangeAt
	}
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(columns).Error
}

// CreateCompany implements domain.UserRepository
func (r *UserRepositoryImpl) CreateCompany(ctx context.Context, company *domain.Company) error {
	dbCompany := &DBCompany{
		Title:       company.Title,
		Phone:       company.Phone,
		Description: company.Description,
		UserID:      company.UserID,
	}
	if err := r.db.WithContext(ctx).Omit("User").Create(dbCompany).Error; err != nil {
		return err
	}
	company.ID = dbCompany.ID
	company.CreatedAt = dbCompany.CreatedAt
	company.UpdatedAt = dbCompany.UpdatedAt
	return nil
}

// CompaniesByOwner implements domain.UserRepository
func (r *UserRepositoryImpl) CompaniesByOwner(ctx context.Context, userID uint) ([]domain.Company, error) {
	var dbCompanies []DBCompany
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&dbCompanies).Error; err != nil {
		return nil, err
	}
	companies := make([]domain.Company, 0, len(dbCompanies))
	for i := range dbCompanies {
		companies = append(companies, domain.Company{
			ID:          dbCompanies[i].ID,
			UserID:      dbCompanies[i].UserID,
			Title:       dbCompanies[i].Title,
			Phone:       dbCompanies[i].Phone,
			Description: dbCompanies[i].Description,
			CreatedAt:   dbCompanies[i].CreatedAt,
			UpdatedAt:   dbCompanies[i].UpdatedAt,
		})
	}
	return companies, nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:                             user.ID,
		FirstName:                      user.FirstName,
		LastName:                       user.LastName,
		Phone:                          user.Phone,
		Email:                          user.Email,
		PasswordHash:                   user.PasswordHash,
		AccessToken:                    user.AccessToken,
		AccessTokenCreatedAt:           user.AccessTokenCreatedAt,
		PasswordRecoveryToken:          user.PasswordRecoveryToken,
		PasswordRecoveryTokenCreatedAt: user.PasswordRecoveryTokenCreatedAt,
		LastLoginAt:                    user.LastLoginAt,
		LastPasswordChangeAt:           user.LastPasswordChangeAt,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:                             dbUser.ID,
		FirstName:                      dbUser.FirstName,
		LastName:                       dbUser.LastName,
		Phone:                          dbUser.Phone,
		Email:                          dbUser.Email,
		PasswordHash:                   dbUser.PasswordHash,
		AccessToken:                    dbUser.AccessToken,
		AccessTokenCreatedAt:           dbUser.AccessTokenCreatedAt,
		PasswordRecoveryToken:          dbUser.PasswordRecoveryToken,
		PasswordRecoveryTokenCreatedAt: dbUser.PasswordRecoveryTokenCreatedAt,
		LastLoginAt:                    dbUser.LastLoginAt,
		LastPasswordChangeAt:           dbUser.LastPasswordChangeAt,
		CreatedAt:                      dbUser.CreatedAt,
		UpdatedAt:                      dbUser.UpdatedAt,
	}
}
