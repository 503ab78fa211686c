package controllers

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
	"go.uber.org/zap"
)

// CheckoutRequest is the customer form submitted with the session cart
type CheckoutRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	City            string `json:"city"`
	PostalCode      string `json:"postal_code"`
	DeliveryNotes   string `json:"delivery_notes"`
	PaymentMethod   string `json:"payment_method"`
}

var (
	orderNumbersMu   sync.Mutex
	orderNumbers     *services.OrderNumberGenerator
	orderNumbersCode string
	orderNumbersSet  bool
)

// SetOrderNumberGenerator installs the generator used by Checkout. Passing
// nil goes back to one derived from the current config's StoreCode.
func SetOrderNumberGenerator(g *services.OrderNumberGenerator) {
	orderNumbersMu.Lock()
	defer orderNumbersMu.Unlock()
	orderNumbers = g
	orderNumbersCode = ""
	orderNumbersSet = g != nil
}

func orderNumberGenerator() *services.OrderNumberGenerator {
	orderNumbersMu.Lock()
	defer orderNumbersMu.Unlock()
	if orderNumbersSet {
		return orderNumbers
	}
	code := config.GetConfig().StoreCode
	if orderNumbers == nil || code != orderNumbersCode {
		orderNumbers = services.NewOrderNumberGenerator(code)
		orderNumbersCode = code
	}
	return orderNumbers
}

// Checkout handles POST /api/v1/checkout - turns the session cart into an order
func Checkout(c *gin.Context) {
	var req CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	cart := sessionCart(c)
	if cart.IsEmpty() {
		middleware.RespondError(c, services.ValidationError("EMPTY_CART", "Your cart is empty",
			map[string]string{"items": "is required"}))
		return
	}

	total := cart.TotalPrice()
	order, err := orderService().CreateOrder(c.Request.Context(), services.CreateOrderInput{
		OrderNumber:     orderNumberGenerator().Next(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		City:            req.City,
		PostalCode:      req.PostalCode,
		DeliveryNotes:   req.DeliveryNotes,
		PaymentMethod:   req.PaymentMethod,
		TotalAmount:     &total,
		Items:           cart.OrderItems(),
	})
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	// The order already exists; a cart that fails to clear is left for the shopper to empty.
	if err := cart.ClearCart(); err != nil {
		zap.L().Warn("Failed to clear cart after checkout",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}

	middleware.RespondOK(c, http.StatusCreated, order)
}
