package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/services"
	"go.uber.org/zap"
)

// Context keys set by EnsureValidToken
const (
	CtxKeyUserID      = "user_id"
	CtxKeyClaims      = "validated_claims"
	CtxKeyAccessToken = "access_token"
)

// CustomClaims contains custom data we want from the token.
type CustomClaims struct {
	Scope string `json:"scope"`
	Role  string `json:"role"`
	Email string `json:"email"`
}

// Validate does nothing for this example, but we need
// it to satisfy validator.CustomClaims interface.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// HasScope checks whether our claims have a specific scope.
func (c CustomClaims) HasScope(expectedScope string) bool {
	result := strings.Split(c.Scope, " ")
	for i := range result {
		if result[i] == expectedScope {
			return true
		}
	}

	return false
}

// HasRole accepts either a role claim or a "role:<name>" scope
func (c CustomClaims) HasRole(role string) bool {
	return c.Role == role || c.HasScope("role:"+role)
}

// NewTokenValidator validates Auth0 RS256 tokens when AUTH0_DOMAIN is set,
// and locally issued HS256 tokens otherwise.
func NewTokenValidator(cfg *config.Config) (*validator.Validator, error) {
	opts := []validator.Option{
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	}

	if cfg.UsesAuth0() {
		issuerURL, err := url.Parse("https://" + cfg.Auth0Domain + "/")
		if err != nil {
			return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
		}

		provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)
		return validator.New(
			provider.KeyFunc,
			validator.RS256,
			issuerURL.String(),
			[]string{cfg.Auth0Audience},
			opts...,
		)
	}

	secret := []byte(cfg.JWTSecret)
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return secret, nil
	}
	return validator.New(
		keyFunc,
		validator.HS256,
		cfg.JWTIssuer,
		[]string{cfg.JWTAudience},
		opts...,
	)
}

// EnsureValidToken is a middleware that will check the validity of our JWT.
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	jwtValidator, err := NewTokenValidator(cfg)
	if err != nil {
		zap.L().Fatal("Failed to set up the jwt validator", zap.Error(err))
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		code, message := "INVALID_TOKEN", "Failed to validate JWT."
		if errors.Is(err, jwtmiddleware.ErrJWTMissing) {
			code, message = "MISSING_TOKEN", "Authorization token is required."
		}
		zap.L().Info("Rejected request token", zap.String("code", code), zap.Error(err))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		body := fmt.Sprintf(`{"success":false,"error":{"code":%q,"kind":"unauthorized","message":%q}}`, code, message)
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			zap.L().Warn("Failed to write error response", zap.Error(writeErr))
		}
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		validated := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			validated = true
			token := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)

			c.Request = r
			c.Set(CtxKeyUserID, token.RegisteredClaims.Subject)
			c.Set(CtxKeyClaims, token)
			if accessToken, err := jwtmiddleware.AuthHeaderTokenExtractor(r); err == nil {
				c.Set(CtxKeyAccessToken, accessToken)
			}

			c.Next()
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !validated {
			c.Abort()
		}
	}
}

// GetUserID extracts the token subject from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(CtxKeyUserID)
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get(CtxKeyClaims)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// GetCustomClaims returns the role, scope and email carried by the token
func GetCustomClaims(c *gin.Context) (*CustomClaims, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return nil, err
	}

	custom, ok := claims.CustomClaims.(*CustomClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}
	return custom, nil
}

// GetAccessToken returns the raw bearer token of the request
func GetAccessToken(c *gin.Context) (string, error) {
	token := c.GetString(CtxKeyAccessToken)
	if token == "" {
		return "", &AuthError{Code: "MISSING_TOKEN", Message: "Access token not found in context"}
	}
	return token, nil
}

// RequireRole is a middleware that lets through tokens carrying any of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetCustomClaims(c)
		if err != nil {
			RespondError(c, services.UnauthorizedError("MISSING_CLAIMS", "Could not retrieve token claims"))
			return
		}

		for _, role := range roles {
			if claims.HasRole(role) {
				c.Next()
				return
			}
		}

		RespondError(c, services.ForbiddenError("INSUFFICIENT_ROLE", "Insufficient permissions to access this resource"))
	}
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
