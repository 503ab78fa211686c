package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/cartcookie"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
	"github.com/shopspring/decimal"
)

// CartResponse is the cart as returned to the shopper
type CartResponse struct {
	Items      []services.CartLine `json:"items"`
	TotalItems int                 `json:"total_items"`
	TotalPrice decimal.Decimal     `json:"total_price"`
}

// CartItemRequest identifies a cart line by product and selected options
type CartItemRequest struct {
	ProductID     uint    `json:"product_id" binding:"required"`
	SelectedColor *string `json:"selected_color"`
	SelectedSize  *string `json:"selected_size"`
}

// UpdateCartItemRequest sets the quantity of a cart line
type UpdateCartItemRequest struct {
	ProductID     uint    `json:"product_id" binding:"required"`
	Quantity      *int    `json:"quantity" binding:"required"`
	SelectedColor *string `json:"selected_color"`
	SelectedSize  *string `json:"selected_size"`
}

// sessionCart rehydrates the caller's cart from its signed cookie
func sessionCart(c *gin.Context) *services.CartEngine {
	cfg := config.GetConfig()
	codec := cartcookie.New([]byte(cfg.CartCookieSecret), cfg.CartCookieName, cfg.IsProduction())
	return services.NewCartEngine(cartcookie.NewStore(codec, c))
}

func cartResponse(cart *services.CartEngine) CartResponse {
	return CartResponse{
		Items:      cart.Items(),
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}
}

// GetCart handles GET /api/v1/cart
func GetCart(c *gin.Context) {
	middleware.RespondOK(c, http.StatusOK, cartResponse(sessionCart(c)))
}

// AddCartItem handles POST /api/v1/cart/items - adds one unit of a product variant
func AddCartItem(c *gin.Context) {
	var req CartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	line, err := catalogService().CartLineFor(c.Request.Context(), req.ProductID, req.SelectedColor, req.SelectedSize)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	cart := sessionCart(c)
	if err := cart.AddToCart(line); err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, cartResponse(cart))
}

// UpdateCartItem handles PATCH /api/v1/cart/items - zero or less removes the line
func UpdateCartItem(c *gin.Context) {
	var req UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	cart := sessionCart(c)
	if err := cart.UpdateQuantity(req.ProductID, *req.Quantity, req.SelectedColor, req.SelectedSize); err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, cartResponse(cart))
}

// RemoveCartItem handles DELETE /api/v1/cart/items
func RemoveCartItem(c *gin.Context) {
	var req CartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	cart := sessionCart(c)
	if err := cart.RemoveFromCart(req.ProductID, req.SelectedColor, req.SelectedSize); err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, cartResponse(cart))
}

// ClearCart handles DELETE /api/v1/cart
func ClearCart(c *gin.Context) {
	cart := sessionCart(c)
	if err := cart.ClearCart(); err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, cartResponse(cart))
}
