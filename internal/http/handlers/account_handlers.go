package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/domain"
	"github.com/you/accountsvc/internal/http/middleware"
)

// AccountHandlers handles account HTTP requests
type AccountHandlers struct {
	accountSvc domain.AccountService
}

// NewAccountHandlers creates new account handlers
func NewAccountHandlers(accountSvc domain.AccountService) *AccountHandlers {
	return &AccountHandlers{accountSvc: accountSvc}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// SignInRequest represents a sign-in request
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RecoverPasswordRequest represents a recovery token request
type RecoverPasswordRequest struct {
	Email string `json:"email"`
}

// ChangePasswordRequest represents a recovery token redemption
type ChangePasswordRequest struct {
	Email       string `json:"email"`
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// CreateCompanyRequest represents a company creation request
type CreateCompanyRequest struct {
	Title       string `json:"title"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

// Register handles user registration
func (h *AccountHandlers) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed request body"})
		return
	}

	user, err := h.accountSvc.Register(c.Request.Context(), domain.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email is already exists"})
			return
		}
		respondError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusOK, user)
}

// SignIn handles authentication. Whether the account was missing or the
// password wrong is deliberately not distinguishable from the response.
func (h *AccountHandlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed request body"})
		return
	}

	user, err := h.accountSvc.Authenticate(c.Request.Context(), domain.CredentialsInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidPassword) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unable to find user or wrong password"})
			return
		}
		respondError(c, err, "Failed to sign in")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": user.AccessToken})
}

// RecoverPassword issues a fresh password recovery token
func (h *AccountHandlers) RecoverPassword(c *gin.Context) {
	var req RecoverPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed request body"})
		return
	}

	err := h.accountSvc.IssueRecoveryToken(c.Request.Context(), domain.RecoveryInput{Email: req.Email})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to find user"})
			return
		}
		respondError(c, err, "Failed to issue recovery token")
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// ChangePassword redeems a recovery token. As with sign-in, a missing
// account and a wrong token produce the same response.
func (h *AccountHandlers) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed request body"})
		return
	}

	err := h.accountSvc.RedeemRecoveryToken(c.Request.Context(), domain.RedeemInput{
		Email:       req.Email,
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidRecoveryToken) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unable to find user or wrong token"})
			return
		}
		respondError(c, err, "Failed to change password")
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// CreateCompany creates a company owned by the authenticated user
func (h *AccountHandlers) CreateCompany(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Malformed request body"})
		return
	}

	company, err := h.accountSvc.CreateCompany(c.Request.Context(), user, domain.CompanyInput{
		Title:       req.Title,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "Failed to create company")
		return
	}

	c.JSON(http.StatusCreated, company)
}

// ListCompanies lists the authenticated user's companies
func (h *AccountHandlers) ListCompanies(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return
	}

	companies, err := h.accountSvc.ListCompanies(c.Request.Context(), user)
	if err != nil {
		respondError(c, err, "Failed to list companies")
		return
	}

	c.JSON(http.StatusOK, companies)
}

// respondError maps validation failures to 422 and everything else to a
// generic 500 that leaks no detail.
func respondError(c *gin.Context, err error, fallback string) {
	if ve, ok := domain.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "The given data was invalid",
			"errors": ve.Fields,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
}
