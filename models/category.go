package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product types, shared by categories and products
const (
	ProductTypeLadies = "ladies"
	ProductTypeGents  = "gents"
)

// Category groups products for one audience
type Category struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Name        string                      `gorm:"not null" json:"name"`
	Description *string                     `json:"description"`
	Image       *string                     `json:"image"`
	Type        string                      `gorm:"not null;index" json:"type"` // ladies, gents
	Items       datatypes.JSONSlice[string] `json:"items"`
	Active      bool                        `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// IsValidProductType reports whether t is ladies or gents
func IsValidProductType(t string) bool {
	return t == ProductTypeLadies || t == ProductTypeGents
}
