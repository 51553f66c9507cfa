package app

import (
	"gorm.io/gorm"

	"github.com/you/accountsvc/domain"
	"github.com/you/accountsvc/internal/config"
	"github.com/you/accountsvc/internal/infrastructure/auth"
	"github.com/you/accountsvc/internal/infrastructure/database"
	"github.com/you/accountsvc/internal/infrastructure/repositories"
	"github.com/you/accountsvc/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB *gorm.DB

	UserRepo domain.UserRepository

	PasswordSvc domain.PasswordService
	TokenSvc    domain.TokenService
	AccountSvc  domain.AccountService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	container := &Container{Config: cfg}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, err
	}
	container.DB = db

	container.UserRepo = repositories.NewUserRepository(db)

	container.PasswordSvc = auth.NewPasswordService(cfg.BcryptCost)
	container.TokenSvc = auth.NewTokenService(cfg.TokenLength)
	container.AccountSvc = services.NewAccountService(
		container.UserRepo,
		container.PasswordSvc,
		container.TokenSvc,
	)

	return container, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
