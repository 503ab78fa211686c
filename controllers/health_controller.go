package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
)

// HealthCheck handles GET /api/v1/health
func HealthCheck(c *gin.Context) {
	middleware.RespondOK(c, http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Storefront API is running",
	})
}

// DatabaseStatus handles GET /api/v1/database/status - checks connectivity and lists tables
func DatabaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		middleware.RespondError(c, services.InternalError("DATABASE_ERROR", err))
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		middleware.RespondError(c, services.InternalError("DATABASE_CONNECTION_ERROR", err))
		return
	}

	tables, err := db.WithContext(c.Request.Context()).Migrator().GetTables()
	if err != nil {
		middleware.RespondError(c, services.InternalError("DATABASE_QUERY_ERROR", err))
		return
	}

	middleware.RespondOK(c, http.StatusOK, gin.H{
		"status": "connected",
		"driver": db.Dialector.Name(),
		"tables": tables,
	})
}
