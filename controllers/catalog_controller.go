package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
)

// ListCategories handles GET /api/v1/categories?type=
func ListCategories(c *gin.Context) {
	categories, err := catalogService().ListCategories(c.Request.Context(), c.Query("type"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, categories)
}

// CreateCategory handles POST /api/v1/admin/categories
func CreateCategory(c *gin.Context) {
	var req services.CategoryInput
	if !bindJSON(c, &req) {
		return
	}

	category, err := catalogService().CreateCategory(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, category)
}

// UpdateCategory handles PATCH /api/v1/admin/categories/:id
func UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateCategoryInput
	if !bindJSON(c, &req) {
		return
	}

	category, err := catalogService().UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, category)
}

// ListProducts handles GET /api/v1/products
func ListProducts(c *gin.Context) {
	var filter services.ProductFilter
	if !bindQuery(c, &filter) {
		return
	}

	products, err := catalogService().ListProducts(c.Request.Context(), filter)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, products)
}

// GetProduct handles GET /api/v1/products/:id
func GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	product, err := catalogService().GetProduct(c.Request.Context(), id)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, product)
}

// CreateProduct handles POST /api/v1/admin/products
func CreateProduct(c *gin.Context) {
	var req services.ProductInput
	if !bindJSON(c, &req) {
		return
	}

	product, err := catalogService().CreateProduct(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, product)
}

// UpdateProduct handles PATCH /api/v1/admin/products/:id
func UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductInput
	if !bindJSON(c, &req) {
		return
	}

	product, err := catalogService().UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, product)
}
