package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
	"github.com/shahzadcollection/storefront-api/utils"
)

// bindJSON binds the request body into dst, writing a validation error
// keyed by field when it fails
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.RespondError(c, services.ValidationError(
			"VALIDATION_ERROR", "Invalid request data", utils.BindingErrorFields(err, dst)))
		return false
	}
	return true
}

// bindQuery binds query parameters into dst
func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		middleware.RespondError(c, services.ValidationError(
			"VALIDATION_ERROR", "Invalid query parameters", utils.BindingErrorFields(err, dst)))
		return false
	}
	return true
}

// paramID parses a positive numeric path parameter
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		middleware.RespondError(c, services.ValidationError(
			"INVALID_ID", "Invalid "+name, map[string]string{name: "must be a positive integer"}))
		return 0, false
	}
	return uint(id), true
}

func orderService() *services.OrderService {
	return services.NewOrderService(config.GetDB(), config.GetConfig().DefaultCity)
}

func catalogService() *services.CatalogService {
	return services.NewCatalogService(config.GetDB())
}

func storeService() *services.StoreService {
	return services.NewStoreService(config.GetDB())
}
