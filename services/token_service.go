package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/models"
)

// StaffClaims are the claims of a locally issued staff token
type StaffClaims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// IssuedToken is returned to a staff member after login
type IssuedToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// TokenIssuer signs HS256 staff tokens that the auth middleware accepts
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenIssuer creates an issuer from the JWT settings
func NewTokenIssuer(cfg *config.Config) *TokenIssuer {
	return &TokenIssuer{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      cfg.JWTTTL,
		now:      time.Now,
	}
}

// Issue signs a token whose subject is the user's id
func (i *TokenIssuer) Issue(user *models.User) (*IssuedToken, error) {
	if len(i.secret) == 0 {
		return nil, fmt.Errorf("JWT_SECRET is not configured")
	}

	now := i.now()
	expiresAt := now.Add(i.ttl)
	claims := StaffClaims{
		Role:  user.Type,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &IssuedToken{AccessToken: signed, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}
