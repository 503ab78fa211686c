package models

import (
	"time"

	"gorm.io/datatypes"
)

// StoreInfo is the storefront's "visit our store" block. One active row is used.
type StoreInfo struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  *string   `json:"description"`
	Image        *string   `json:"image"`
	Location     string    `gorm:"not null" json:"location"`
	ContactPhone string    `gorm:"not null" json:"contact_phone"`
	Email        *string   `json:"email"`
	StoreHours   *string   `json:"store_hours"`
	FacebookURL  *string   `json:"facebook_url"`
	InstagramURL *string   `json:"instagram_url"`
	TiktokURL    *string   `json:"tiktok_url"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name for the StoreInfo model
func (StoreInfo) TableName() string {
	return "store_info"
}

// BankDetails is the account shown to shoppers who pay online
type BankDetails struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	BankName      string    `gorm:"not null" json:"bank_name"`
	AccountNumber string    `gorm:"not null" json:"account_number"`
	AccountTitle  string    `gorm:"not null" json:"account_title"`
	IBAN          *string   `gorm:"column:iban" json:"iban"`
	SwiftCode     *string   `json:"swift_code"`
	BranchName    *string   `json:"branch_name"`
	BranchAddress *string   `json:"branch_address"`
	ContactPhone  *string   `json:"contact_phone"`
	Active        bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the BankDetails model
func (BankDetails) TableName() string {
	return "bank_details"
}

// AboutPage holds the copy of the about page
type AboutPage struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PageTitle     string    `gorm:"not null" json:"page_title"`
	PageSubtitle  *string   `json:"page_subtitle"`
	StoryTitle    string    `gorm:"not null" json:"story_title"`
	StoryContent  *string   `json:"story_content"`
	ValuesTitle   *string   `json:"values_title"`
	Value1Title   *string   `json:"value1_title"`
	Value1Content *string   `json:"value1_content"`
	Value2Title   *string   `json:"value2_title"`
	Value2Content *string   `json:"value2_content"`
	Value3Title   *string   `json:"value3_title"`
	Value3Content *string   `json:"value3_content"`
	Active        bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the AboutPage model
func (AboutPage) TableName() string {
	return "about_pages"
}

// Owner is one of the people introduced on the about page
type Owner struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Image       *string   `json:"image"`
	Description *string   `json:"description"`
	Position    int       `gorm:"not null;default:0" json:"position"` // display order, ascending
	Active      bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Owner model
func (Owner) TableName() string {
	return "owners"
}

// Section is a home-page banner for one audience. At most one active
// section exists per type.
type Section struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Type        string                      `gorm:"not null;index" json:"type"` // ladies, gents
	Title       string                      `gorm:"not null" json:"title"`
	Description *string                     `json:"description"`
	Image       string                      `gorm:"not null" json:"image"`
	Items       datatypes.JSONSlice[string] `json:"items"`
	Active      bool                        `gorm:"not null;default:true" json:"active"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TableName specifies the table name for the Section model
func (Section) TableName() string {
	return "sections"
}
