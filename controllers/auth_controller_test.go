package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/models"
	"github.com/shahzadcollection/storefront-api/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserInfo struct {
	info *services.Auth0UserInfo
	err  error
}

func (s *stubUserInfo) GetUserInfo(ctx context.Context, accessToken string) (*services.Auth0UserInfo, error) {
	return s.info, s.err
}

func useUserInfo(t *testing.T, provider services.UserInfoProvider) {
	t.Helper()
	SetUserInfoProvider(provider)
	t.Cleanup(func() { SetUserInfoProvider(nil) })
}

func enableAuth0(t *testing.T) {
	t.Helper()
	cfg := config.GetConfig()
	cfg.Auth0Domain = "shahzad.eu.auth0.com"
	config.SetConfig(cfg)
}

func seedStaff(t *testing.T, db *gorm.DB, email, userType string) *models.User {
	t.Helper()
	user, err := services.NewAuthService(db, nil).CreateUser(context.Background(), services.CreateUserInput{
		Email:    email,
		Name:     "Staff Member",
		Password: "correct-horse",
		Type:     userType,
	})
	require.NoError(t, err)
	return user
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	seedStaff(t, db, "owner@shahzad.pk", models.UserTypeAdmin)

	router := setupTestRouter()
	router.POST("/auth/login", Login)

	t.Run("valid credentials", func(t *testing.T) {
		w := performRequest(router, http.MethodPost, "/auth/login", gin.H{
			"email": "Owner@Shahzad.pk", "password": "correct-horse",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var data struct {
			Token services.IssuedToken `json:"token"`
			User  models.User          `json:"user"`
		}
		decodeData(t, w, &data)
		assert.NotEmpty(t, data.Token.AccessToken)
		assert.Equal(t, "Bearer", data.Token.TokenType)
		assert.Equal(t, "owner@shahzad.pk", data.User.Email)
		assert.NotContains(t, w.Body.String(), "password")
	})

	tests := []struct {
		name           string
		body           gin.H
		expectedStatus int
		expectedCode   string
	}{
		{"wrong password", gin.H{"email": "owner@shahzad.pk", "password": "wrong-horse"}, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unknown email", gin.H{"email": "nobody@shahzad.pk", "password": "correct-horse"}, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"missing password", gin.H{"email": "owner@shahzad.pk"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed email", gin.H{"email": "owner", "password": "correct-horse"}, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/auth/login", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeResponse(t, w).Error.Code)
		})
	}
}

func TestGetMe(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db, "clerk@shahzad.pk", models.UserTypeEmployee)

	t.Run("local subject", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/auth/me", mockAuthMiddleware(strconv.FormatUint(uint64(staff.ID), 10), models.UserTypeEmployee, "token"), GetMe)

		w := performRequest(router, http.MethodGet, "/auth/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var user models.User
		decodeData(t, w, &user)
		assert.Equal(t, staff.ID, user.ID)
	})

	t.Run("unknown subject", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/auth/me", mockAuthMiddleware("auth0|stranger", models.UserTypeAdmin, "token"), GetMe)

		w := performRequest(router, http.MethodGet, "/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNKNOWN_STAFF", decodeResponse(t, w).Error.Code)
	})

	t.Run("no token context", func(t *testing.T) {
		router := setupTestRouter()
		router.GET("/auth/me", GetMe)

		w := performRequest(router, http.MethodGet, "/auth/me", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestLinkAuth0(t *testing.T) {
	const subject = "auth0|abc123"

	setupLinkRouter := func() *gin.Engine {
		router := setupTestRouter()
		router.POST("/auth/auth0/link", mockAuthMiddleware(subject, "", "access-token"), LinkAuth0)
		router.GET("/auth/me", mockAuthMiddleware(subject, "", "access-token"), GetMe)
		return router
	}

	t.Run("links verified email", func(t *testing.T) {
		db := setupTestDB(t)
		enableAuth0(t)
		staff := seedStaff(t, db, "clerk@shahzad.pk", models.UserTypeEmployee)
		useUserInfo(t, &stubUserInfo{info: &services.Auth0UserInfo{
			Sub: subject, Email: "clerk@shahzad.pk", EmailVerified: true,
		}})
		router := setupLinkRouter()

		w := performRequest(router, http.MethodPost, "/auth/auth0/link", nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var user models.User
		decodeData(t, w, &user)
		assert.Equal(t, staff.ID, user.ID)
		require.NotNil(t, user.Auth0ID)
		assert.Equal(t, subject, *user.Auth0ID)

		w = performRequest(router, http.MethodGet, "/auth/me", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	tests := []struct {
		name           string
		info           *services.Auth0UserInfo
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "unverified email",
			info:           &services.Auth0UserInfo{Sub: subject, Email: "clerk@shahzad.pk"},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "EMAIL_NOT_VERIFIED",
		},
		{
			name:           "subject mismatch",
			info:           &services.Auth0UserInfo{Sub: "auth0|other", Email: "clerk@shahzad.pk", EmailVerified: true},
			expectedStatus: http.StatusUnauthorized,
			expectedCode:   "SUBJECT_MISMATCH",
		},
		{
			name:           "no staff account",
			info:           &services.Auth0UserInfo{Sub: subject, Email: "shopper@gmail.com", EmailVerified: true},
			expectedStatus: http.StatusForbidden,
			expectedCode:   "NO_STAFF_ACCOUNT",
		},
		{
			name:           "userinfo failure",
			err:            errors.New("auth0 returned status 500"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "AUTH0_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			enableAuth0(t)
			seedStaff(t, db, "clerk@shahzad.pk", models.UserTypeEmployee)
			useUserInfo(t, &stubUserInfo{info: tt.info, err: tt.err})

			w := performRequest(setupLinkRouter(), http.MethodPost, "/auth/auth0/link", nil)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCode, decodeResponse(t, w).Error.Code)
		})
	}

	t.Run("auth0 disabled", func(t *testing.T) {
		setupTestDB(t)

		w := performRequest(setupLinkRouter(), http.MethodPost, "/auth/auth0/link", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "AUTH0_DISABLED", decodeResponse(t, w).Error.Code)
	})
}
