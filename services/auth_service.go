package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/shahzadcollection/storefront-api/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

// LoginInput is the staff login request
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateUserInput creates a staff account
type CreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Type     string `json:"type" binding:"required,oneof=admin employee"`
}

// AuthService manages staff accounts and their credentials
type AuthService struct {
	db     *gorm.DB
	tokens *TokenIssuer
}

// NewAuthService creates an auth service. tokens may be nil when staff
// tokens come from Auth0.
func NewAuthService(db *gorm.DB, tokens *TokenIssuer) *AuthService {
	return &AuthService{db: db, tokens: tokens}
}

// Login checks a staff member's password and issues a token
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*IssuedToken, *models.User, error) {
	invalid := UnauthorizedError("INVALID_CREDENTIALS", "Invalid email or password")

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND active = ?", normalizeEmail(in.Email), true).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, invalid
		}
		return nil, nil, InternalError("DATABASE_ERROR", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		zap.L().Info("Rejected staff login", zap.Uint("user_id", user.ID))
		return nil, nil, invalid
	}

	if s.tokens == nil {
		return nil, nil, ForbiddenError("LOCAL_LOGIN_DISABLED", "Password login is disabled; sign in with Auth0")
	}
	token, err := s.tokens.Issue(&user)
	if err != nil {
		return nil, nil, InternalError("TOKEN_ERROR", err)
	}

	zap.L().Info("Staff login", zap.Uint("user_id", user.ID), zap.String("type", user.Type))
	return token, &user, nil
}

// CreateUser adds a staff account with a bcrypt-hashed password
func (s *AuthService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	fields := map[string]string{}
	email := normalizeEmail(in.Email)
	if email == "" {
		fields["email"] = "is required"
	}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "is required"
	}
	if len(in.Password) < minPasswordLength {
		fields["password"] = "must be at least 8"
	}
	if !models.IsValidUserType(in.Type) {
		fields["type"] = "must be one of: admin, employee"
	}
	if len(fields) > 0 {
		return nil, ValidationError("VALIDATION_ERROR", "Missing or invalid user fields", fields)
	}

	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	if existing > 0 {
		return nil, emailTaken()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, InternalError("PASSWORD_HASH_ERROR", err)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: string(hash),
		Type:         in.Type,
		Active:       true,
	}
	if err := db.Create(user).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, emailTaken()
		}
		return nil, InternalError("DATABASE_ERROR", err)
	}

	zap.L().Info("Staff user created", zap.Uint("user_id", user.ID), zap.String("type", user.Type))
	return user, nil
}

// ListUsers returns active staff accounts, oldest first
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.db.WithContext(ctx).Where("active = ?", true).Order("created_at ASC").Find(&users).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return users, nil
}

// DeactivateUser soft-deletes a staff account
func (s *AuthService) DeactivateUser(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	if result.Error != nil {
		return InternalError("DATABASE_ERROR", result.Error)
	}
	if result.RowsAffected == 0 {
		return NotFoundError("USER_NOT_FOUND", "User not found")
	}

	zap.L().Info("Staff user deactivated", zap.Uint("user_id", id))
	return nil
}

// EnsureAdmin creates the bootstrap admin account when no user has its email
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password, name string) error {
	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", normalizeEmail(email)).Count(&existing).Error; err != nil {
		return InternalError("DATABASE_ERROR", err)
	}
	if existing > 0 {
		return nil
	}

	_, err := s.CreateUser(ctx, CreateUserInput{Email: email, Name: name, Password: password, Type: models.UserTypeAdmin})
	return err
}

// ResolveSubject finds the active staff account a token subject refers to.
// Auth0 subjects are matched against linked identities; locally issued
// tokens carry the numeric user id.
func (s *AuthService) ResolveSubject(ctx context.Context, subject string) (*models.User, error) {
	db := s.db.WithContext(ctx)
	var user models.User

	err := db.Where("auth0_id = ? AND active = ?", subject, true).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, InternalError("DATABASE_ERROR", err)
	}

	if id, convErr := strconv.ParseUint(subject, 10, 64); convErr == nil {
		err = db.Where("id = ? AND active = ?", id, true).First(&user).Error
		if err == nil {
			return &user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, InternalError("DATABASE_ERROR", err)
		}
	}

	return nil, UnauthorizedError("UNKNOWN_STAFF", "No active staff account for this token")
}

// LinkAuth0 attaches an Auth0 subject to the active staff account with the same email
func (s *AuthService) LinkAuth0(ctx context.Context, subject, email string) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Where("email = ? AND active = ?", normalizeEmail(email), true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ForbiddenError("NO_STAFF_ACCOUNT", "No staff account exists for this email")
		}
		return nil, InternalError("DATABASE_ERROR", err)
	}

	if user.Auth0ID != nil {
		if *user.Auth0ID == subject {
			return &user, nil
		}
		return nil, ConflictError("ALREADY_LINKED", "This staff account is linked to another identity")
	}

	if err := db.Model(&user).Update("auth0_id", subject).Error; err != nil {
		if IsUniqueViolation(err) {
			return nil, ConflictError("ALREADY_LINKED", "This identity is linked to another staff account")
		}
		return nil, InternalError("DATABASE_ERROR", err)
	}
	user.Auth0ID = &subject

	zap.L().Info("Linked Auth0 identity", zap.Uint("user_id", user.ID))
	return &user, nil
}

func emailTaken() *AppError {
	return ConflictError("EMAIL_TAKEN", "A user with this email already exists")
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
