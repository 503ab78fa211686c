package testutil

import (
	"context"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// StaffPassword is the password of every account created by CreateStaff
const StaffPassword = "correct-horse-battery"

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(subject, role string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  "storefront-api",
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Role: role,
		},
	}
}

// SetMockAuthContext sets up a mock authenticated context for testing
func SetMockAuthContext(c *gin.Context, subject, role string) {
	c.Set(middleware.CtxKeyUserID, subject)
	c.Set(middleware.CtxKeyClaims, MockValidatedClaims(subject, role))
}

// CreateTestContext creates a test Gin context
func CreateTestContext() (*gin.Context, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	c, engine := gin.CreateTestContext(nil)
	return c, engine
}

// CreateStaff adds a staff account with StaffPassword
func CreateStaff(t *testing.T, db *gorm.DB, email, userType string) {
	t.Helper()
	_, err := services.NewAuthService(db, nil).CreateUser(context.Background(), services.CreateUserInput{
		Email:    email,
		Name:     "Staff " + userType,
		Password: StaffPassword,
		Type:     userType,
	})
	require.NoError(t, err)
}

// BearerToken creates a staff account and returns an Authorization header
// value carrying a real HS256 token for it
func BearerToken(t *testing.T, db *gorm.DB, cfg *config.Config, email, userType string) string {
	t.Helper()
	CreateStaff(t, db, email, userType)

	auth := services.NewAuthService(db, services.NewTokenIssuer(cfg))
	token, _, err := auth.Login(context.Background(), services.LoginInput{Email: email, Password: StaffPassword})
	require.NoError(t, err)
	return "Bearer " + token.AccessToken
}
