package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shahzadcollection/storefront-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultOrderPageSize = 50
	maxOrderPageSize     = 200
)

// CreateOrderInput carries a checkout submission. TotalAmount accepts a JSON
// number or a numeric string.
type CreateOrderInput struct {
	OrderNumber     string             `json:"order_number"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	City            string             `json:"city"`
	PostalCode      string             `json:"postal_code"`
	DeliveryNotes   string             `json:"delivery_notes"`
	PaymentMethod   string             `json:"payment_method"`
	TotalAmount     *decimal.Decimal   `json:"total_amount"`
	Items           []models.OrderItem `json:"items"`
}

// ListOrdersInput filters the staff order list. Status "all" or empty disables the filter.
type ListOrdersInput struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// UpdateOrderInput changes an order's status, or soft-deletes it with Active=false
type UpdateOrderInput struct {
	Status *string `json:"status"`
	Active *bool   `json:"active"`
}

// OrderPage is one page of the staff order list
type OrderPage struct {
	Items      []models.Order `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// OrderService persists and queries orders
type OrderService struct {
	db          *gorm.DB
	defaultCity string
}

// NewOrderService creates an order service. defaultCity is used when a
// submission leaves the city blank.
func NewOrderService(db *gorm.DB, defaultCity string) *OrderService {
	return &OrderService{db: db, defaultCity: defaultCity}
}

// CreateOrder validates and stores a new pending order
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := s.validateCreate(in); err != nil {
		return nil, err
	}

	orderNumber := strings.TrimSpace(in.OrderNumber)
	db := s.db.WithContext(ctx)

	var existing int64
	if err := db.Model(&models.Order{}).Where("order_number = ?", orderNumber).Count(&existing).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	if existing > 0 {
		return nil, duplicateOrderNumber()
	}

	city := strings.TrimSpace(in.City)
	if city == "" {
		city = s.defaultCity
	}

	order := &models.Order{
		OrderNumber:     orderNumber,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		CustomerPhone:   strings.TrimSpace(in.CustomerPhone),
		CustomerAddress: strings.TrimSpace(in.CustomerAddress),
		City:            city,
		PostalCode:      optionalString(in.PostalCode),
		DeliveryNotes:   optionalString(in.DeliveryNotes),
		PaymentMethod:   in.PaymentMethod,
		Status:          models.OrderStatusPending,
		TotalAmount:     *in.TotalAmount,
		Items:           in.Items,
		Active:          true,
	}

	if err := db.Create(order).Error; err != nil {
		// A concurrent request may have taken the number after the pre-check.
		if IsUniqueViolation(err) {
			return nil, duplicateOrderNumber()
		}
		return nil, InternalError("DATABASE_ERROR", err)
	}

	zap.L().Info("Order created",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("payment_method", order.PaymentMethod),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
		zap.Int("items", len(order.Items)))

	return order, nil
}

func (s *OrderService) validateCreate(in CreateOrderInput) error {
	fields := map[string]string{}

	required := map[string]string{
		"order_number":     in.OrderNumber,
		"customer_name":    in.CustomerName,
		"customer_phone":   in.CustomerPhone,
		"customer_address": in.CustomerAddress,
		"payment_method":   in.PaymentMethod,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			fields[field] = "is required"
		}
	}

	if _, missing := fields["payment_method"]; !missing && !models.IsValidPaymentMethod(in.PaymentMethod) {
		fields["payment_method"] = "must be one of: online, cod"
	}

	switch {
	case in.TotalAmount == nil:
		fields["total_amount"] = "is required"
	case in.TotalAmount.IsNegative():
		fields["total_amount"] = "must not be negative"
	}

	if len(in.Items) == 0 {
		fields["items"] = "must contain at least one item"
	}

	if len(fields) > 0 {
		return ValidationError("VALIDATION_ERROR", "Missing or invalid order fields", fields)
	}
	return nil
}

// ListOrders returns active orders, newest first
func (s *OrderService) ListOrders(ctx context.Context, in ListOrdersInput) (*OrderPage, error) {
	status := strings.TrimSpace(in.Status)
	if status != "" && status != "all" && !models.IsValidOrderStatus(status) {
		return nil, ValidationError("INVALID_STATUS", "Invalid status filter",
			map[string]string{"status": "must be all or a valid order status"})
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	pageSize := in.PageSize
	if pageSize < 1 {
		pageSize = defaultOrderPageSize
	}
	if pageSize > maxOrderPageSize {
		pageSize = maxOrderPageSize
	}

	query := s.db.WithContext(ctx).Model(&models.Order{}).Where("active = ?", true)
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}

	orders := []models.Order{}
	if err := query.Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * pageSize).Limit(pageSize).
		Find(&orders).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &OrderPage{Items: orders, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages}, nil
}

// GetOrder returns an active order by id
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("ORDER_NOT_FOUND", "Order not found")
		}
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return &order, nil
}

// UpdateOrder sets the status of an active order or soft-deletes it.
// Any status may follow any other.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint, in UpdateOrderInput) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)

	if in.Active != nil {
		if *in.Active {
			return nil, ValidationError("INVALID_ACTIVE", "Only active:false is accepted",
				map[string]string{"active": "must be false"})
		}
		if err := db.Model(order).Update("active", false).Error; err != nil {
			return nil, InternalError("DATABASE_ERROR", err)
		}
		order.Active = false
		zap.L().Info("Order deactivated", zap.Uint("order_id", order.ID))
		return order, nil
	}

	if in.Status == nil {
		return nil, ValidationError("VALIDATION_ERROR", "Nothing to update",
			map[string]string{"status": "is required"})
	}
	if !models.IsValidOrderStatus(*in.Status) {
		return nil, ValidationError("INVALID_STATUS", "Invalid status",
			map[string]string{"status": "must be one of: " + strings.Join(models.OrderStatuses, ", ")})
	}

	previous := order.Status
	if err := db.Model(order).Update("status", *in.Status).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	order.Status = *in.Status

	zap.L().Info("Order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("from", previous),
		zap.String("to", order.Status))
	return order, nil
}

// OrdersForReport returns active orders created inside the inclusive window.
// Nil bounds are open.
func (s *OrderService) OrdersForReport(ctx context.Context, start, end *time.Time) ([]models.Order, error) {
	query := s.db.WithContext(ctx).Where("active = ?", true)
	if start != nil {
		query = query.Where("created_at >= ?", *start)
	}
	if end != nil {
		query = query.Where("created_at <= ?", *end)
	}

	var orders []models.Order
	if err := query.Order("created_at ASC").Find(&orders).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return orders, nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func duplicateOrderNumber() *AppError {
	return ConflictError("DUPLICATE_ORDER_NUMBER", "Order number already exists")
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
