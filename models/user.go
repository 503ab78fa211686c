package models

import (
	"time"
)

// Staff user types
const (
	UserTypeAdmin    = "admin"
	UserTypeEmployee = "employee"
)

// User represents a back-office staff member
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string    `gorm:"not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Type         string    `gorm:"not null;default:'employee'" json:"type"`        // "admin" or "employee"
	Auth0ID      *string   `gorm:"uniqueIndex;size:191" json:"auth0_id,omitempty"` // set once linked to an Auth0 identity
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsValidUserType reports whether t is a known staff type
func IsValidUserType(t string) bool {
	return t == UserTypeAdmin || t == UserTypeEmployee
}

// IsAdmin reports whether the user may access admin-only routes
func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}
