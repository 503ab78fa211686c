package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
)

// CreateOrder handles POST /api/v1/orders - stores an order with a caller-supplied number
func CreateOrder(c *gin.Context) {
	var req services.CreateOrderInput
	if !bindJSON(c, &req) {
		return
	}

	order, err := orderService().CreateOrder(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, order)
}

// ListOrders handles GET /api/v1/admin/orders - active orders, newest first
func ListOrders(c *gin.Context) {
	var req services.ListOrdersInput
	if !bindQuery(c, &req) {
		return
	}

	page, err := orderService().ListOrders(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, page)
}

// GetOrder handles GET /api/v1/admin/orders/:id
func GetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	order, err := orderService().GetOrder(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, order)
}

// UpdateOrder handles PATCH /api/v1/admin/orders/:id - changes status or soft-deletes
func UpdateOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateOrderInput
	if !bindJSON(c, &req) {
		return
	}

	order, err := orderService().UpdateOrder(c.Request.Context(), id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, order)
}
