package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/controllers"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/models"
	"github.com/shahzadcollection/storefront-api/services"
	"github.com/shahzadcollection/storefront-api/utils"
	"go.uber.org/zap"
)

// SetupRouter wires middleware and every /api/v1 route
func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = utils.MaxFileSize
	router.Use(
		middleware.RequestID(),
		middleware.Logger(zap.L()),
		middleware.Recovery(zap.L()),
		middleware.CORS(cfg),
	)
	router.NoRoute(func(c *gin.Context) {
		middleware.RespondError(c, services.NotFoundError("ROUTE_NOT_FOUND", "Route not found"))
	})

	controllers.SetOrderNumberGenerator(services.NewOrderNumberGenerator(cfg.StoreCode))

	requireToken := middleware.EnsureValidToken(cfg)
	requireStaff := middleware.RequireRole(models.UserTypeAdmin, models.UserTypeEmployee)
	requireAdmin := middleware.RequireRole(models.UserTypeAdmin)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", controllers.HealthCheck)
		v1.GET("/database/status", controllers.DatabaseStatus)

		// Catalog
		v1.GET("/categories", controllers.ListCategories)
		v1.GET("/products", controllers.ListProducts)
		v1.GET("/products/:id", controllers.GetProduct)

		// Cart, held in a signed cookie
		v1.GET("/cart", controllers.GetCart)
		v1.DELETE("/cart", controllers.ClearCart)
		v1.POST("/cart/items", controllers.AddCartItem)
		v1.PATCH("/cart/items", controllers.UpdateCartItem)
		v1.DELETE("/cart/items", controllers.RemoveCartItem)

		// Orders
		v1.POST("/checkout", controllers.Checkout)
		v1.POST("/orders", controllers.CreateOrder)

		// Store metadata
		v1.GET("/store-info", controllers.GetStoreInfo)
		v1.GET("/bank-details", controllers.GetBankDetails)
		v1.GET("/about-page", controllers.GetAboutPage)
		v1.GET("/owners", controllers.ListOwners)
		v1.GET("/sections", controllers.ListSections)

		// Product images kept in local storage
		v1.GET("/uploads/:filename", controllers.GetUploadedImage)
	}

	auth := v1.Group("/auth")
	{
		auth.POST("/login", controllers.Login)
		auth.GET("/me", requireToken, controllers.GetMe)
		auth.POST("/auth0/link", requireToken, controllers.LinkAuth0)
	}

	staff := v1.Group("/admin", requireToken, requireStaff)
	{
		staff.GET("/orders", controllers.ListOrders)
		staff.GET("/orders/:id", controllers.GetOrder)
		staff.PATCH("/orders/:id", controllers.UpdateOrder)
	}

	admin := staff.Group("", requireAdmin)
	{
		admin.POST("/sales/report", controllers.SalesReport)
		admin.POST("/sales/report/export", controllers.ExportSalesReport)

		admin.POST("/categories", controllers.CreateCategory)
		admin.PATCH("/categories/:id", controllers.UpdateCategory)
		admin.POST("/products", controllers.CreateProduct)
		admin.PATCH("/products/:id", controllers.UpdateProduct)

		admin.PUT("/store-info", controllers.SaveStoreInfo)
		admin.PUT("/bank-details", controllers.SaveBankDetails)
		admin.PUT("/about-page", controllers.SaveAboutPage)
		admin.POST("/owners", controllers.CreateOwner)
		admin.PATCH("/owners/:id", controllers.UpdateOwner)
		admin.POST("/sections", controllers.CreateSection)
		admin.PATCH("/sections/:id", controllers.UpdateSection)

		admin.POST("/uploads", controllers.UploadImage)

		admin.GET("/users", controllers.ListUsers)
		admin.POST("/users", controllers.CreateUser)
		admin.DELETE("/users/:id", controllers.DeactivateUser)
	}

	return router
}
