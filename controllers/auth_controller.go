package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
)

var userInfoProvider services.UserInfoProvider

// SetUserInfoProvider replaces the Auth0 userinfo client (primarily for testing)
func SetUserInfoProvider(provider services.UserInfoProvider) {
	userInfoProvider = provider
}

func getUserInfoProvider(cfg *config.Config) services.UserInfoProvider {
	if userInfoProvider != nil {
		return userInfoProvider
	}
	return services.NewAuth0Service(cfg)
}

func authService() *services.AuthService {
	cfg := config.GetConfig()
	var tokens *services.TokenIssuer
	if cfg.JWTSecret != "" {
		tokens = services.NewTokenIssuer(cfg)
	}
	return services.NewAuthService(config.GetDB(), tokens)
}

// Login handles POST /api/v1/auth/login - exchanges staff credentials for a token
func Login(c *gin.Context) {
	var req services.LoginInput
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := authService().Login(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetMe handles GET /api/v1/auth/me - the staff profile behind the token
func GetMe(c *gin.Context) {
	subject, err := middleware.GetUserID(c)
	if err != nil {
		middleware.RespondError(c, services.UnauthorizedError("UNAUTHORIZED", "Could not extract user ID from token"))
		return
	}

	user, err := authService().ResolveSubject(c.Request.Context(), subject)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, user)
}

// LinkAuth0 handles POST /api/v1/auth/auth0/link - attaches the caller's Auth0
// identity to the staff account with the same verified email
func LinkAuth0(c *gin.Context) {
	cfg := config.GetConfig()
	if !cfg.UsesAuth0() {
		middleware.RespondError(c, services.ForbiddenError("AUTH0_DISABLED", "Auth0 sign-in is not configured"))
		return
	}

	// Get the Auth0 user ID from the validated JWT
	subject, err := middleware.GetUserID(c)
	if err != nil {
		middleware.RespondError(c, services.UnauthorizedError("UNAUTHORIZED", "Could not extract user ID from token"))
		return
	}

	// Get the access token to call Auth0's /userinfo endpoint
	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		middleware.RespondError(c, services.UnauthorizedError("MISSING_TOKEN", "Access token not found"))
		return
	}

	userInfo, err := getUserInfoProvider(cfg).GetUserInfo(c.Request.Context(), accessToken)
	if err != nil {
		middleware.RespondError(c, services.InternalError("AUTH0_ERROR", err))
		return
	}

	if userInfo.Sub != "" && userInfo.Sub != subject {
		middleware.RespondError(c, services.UnauthorizedError("SUBJECT_MISMATCH", "Token does not match the Auth0 profile"))
		return
	}
	if userInfo.Email == "" || !userInfo.EmailVerified {
		middleware.RespondError(c, services.ForbiddenError("EMAIL_NOT_VERIFIED", "A verified email is required to link an account"))
		return
	}

	user, err := authService().LinkAuth0(c.Request.Context(), subject, userInfo.Email)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, user)
}
