package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/models"
	"github.com/shahzadcollection/storefront-api/routes"
	"github.com/shahzadcollection/storefront-api/services"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if err := run(cfg); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	zap.L().Info("Starting Storefront API server...", zap.String("env", cfg.GoEnv))

	// Connect to database
	if err := config.ConnectDatabase(cfg); err != nil {
		return err
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := models.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	zap.L().Info("Database migration completed successfully")

	ctx := context.Background()
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		auth := services.NewAuthService(db, nil)
		if err := auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
	}

	storage, err := services.NewObjectStorage(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize image storage: %w", err)
	}
	services.InitImageService(storage)
	zap.L().Info("Image storage ready", zap.String("driver", cfg.StorageDriver))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(cfg)

	// Start server
	addr := ":" + cfg.Port
	zap.L().Info("Server is running", zap.String("addr", addr))
	return router.Run(addr)
}
