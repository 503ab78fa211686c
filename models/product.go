package models

import (
	"time"

	"gorm.io/datatypes"
)

// Product is a fabric listed in the catalog. Price is a display string
// ("PKR 1,200/meter"); numeric values are derived where needed.
type Product struct {
	ID              uint                        `gorm:"primaryKey" json:"id"`
	Name            string                      `gorm:"not null" json:"name"`
	Description     string                      `json:"description"`
	FullDescription *string                     `json:"full_description"`
	Price           string                      `gorm:"not null" json:"price"`
	OriginalPrice   *string                     `json:"original_price"`
	Image           string                      `json:"image"`
	Images          datatypes.JSONSlice[string] `json:"images"`
	CategoryID      uint                        `gorm:"not null;index" json:"category_id"`
	Category        *Category                   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Type            string                      `gorm:"not null;index" json:"type"`
	InStock         bool                        `gorm:"not null;default:true" json:"in_stock"`
	StockQuantity   *int                        `json:"stock_quantity"`
	Material        *string                     `json:"material"`
	Width           *string                     `json:"width"`
	Weight          *string                     `json:"weight"`
	Care            *string                     `json:"care"`
	Origin          *string                     `json:"origin"`
	Colors          datatypes.JSONSlice[string] `json:"colors"`
	Sizes           datatypes.JSONSlice[string] `json:"sizes"`
	Features        datatypes.JSONSlice[string] `json:"features"`
	Rating          *float64                    `json:"rating"`
	Reviews         *int                        `json:"reviews"`
	Featured        bool                        `gorm:"not null;default:false;index" json:"featured"`
	Active          bool                        `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time                   `json:"created_at"`
	UpdatedAt       time.Time                   `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
