package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func init() {
	// Money travels as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Order statuses. The set is flat: staff may move an order between any two of them.
const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment methods accepted at checkout
const (
	PaymentMethodOnline = "online"
	PaymentMethodCOD    = "cod"
)

// OrderStatuses lists every valid status in display order
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// OrderItem is one line of the item snapshot frozen into an order at checkout
type OrderItem struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Price         string  `json:"price"` // display string, e.g. "PKR 1,200/meter"
	Image         string  `json:"image"`
	Quantity      int     `json:"quantity"`
	Category      string  `json:"category"`
	Type          string  `json:"type"`
	SelectedColor *string `json:"selected_color,omitempty"`
	SelectedSize  *string `json:"selected_size,omitempty"`
}

// Order represents a customer order placed through the storefront
type Order struct {
	ID              uint                           `gorm:"primaryKey" json:"id"`
	OrderNumber     string                         `gorm:"uniqueIndex;size:32;not null" json:"order_number"`
	CustomerName    string                         `gorm:"not null" json:"customer_name"`
	CustomerPhone   string                         `gorm:"not null" json:"customer_phone"`
	CustomerAddress string                         `gorm:"not null" json:"customer_address"`
	City            string                         `gorm:"not null" json:"city"`
	PostalCode      *string                        `json:"postal_code"`
	DeliveryNotes   *string                        `json:"delivery_notes"`
	PaymentMethod   string                         `gorm:"not null" json:"payment_method"` // online, cod
	Status          string                         `gorm:"not null;default:'pending';index" json:"status"`
	TotalAmount     decimal.Decimal                `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Items           datatypes.JSONSlice[OrderItem] `gorm:"not null" json:"items"`
	Active          bool                           `gorm:"not null;default:true;index" json:"active"`
	CreatedAt       time.Time                      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time                      `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// BeforeSave stores timestamps in UTC. Report windows are UTC day bounds and
// sqlite compares the stored text, so a local offset would shift the day.
func (o *Order) BeforeSave(tx *gorm.DB) error {
	if !o.CreatedAt.IsZero() {
		o.CreatedAt = o.CreatedAt.UTC()
	}
	if !o.UpdatedAt.IsZero() {
		o.UpdatedAt = o.UpdatedAt.UTC()
	}
	return nil
}

// IsValidOrderStatus reports whether status is one of the known order statuses
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidPaymentMethod reports whether method is accepted at checkout
func IsValidPaymentMethod(method string) bool {
	return method == PaymentMethodOnline || method == PaymentMethodCOD
}
