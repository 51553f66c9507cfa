package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/you/accountsvc/internal/http/handlers"
	"github.com/you/accountsvc/internal/http/middleware"
)

// BuildRouter wires the account routes. Company endpoints sit behind the
// bearer-token gate; everything else is public.
func BuildRouter(ah *handlers.AccountHandlers, authMW gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	user := r.Group("/api/user")
	user.POST("/register", ah.Register)
	user.POST("/sign-in", ah.SignIn)
	user.POST("/recover-password", ah.RecoverPassword)
	user.POST("/change-password", ah.ChangePassword)

	companies := r.Group("/api/user/companies").Use(authMW)
	companies.POST("", ah.CreateCompany)
	companies.GET("", ah.ListCompanies)

	return r
}
