package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// ConnectDatabase opens the database selected by DATABASE_DRIVER
func ConnectDatabase(cfg *Config) error {
	dialector, err := Dialector(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}

	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = db
	zap.L().Info("Database connection established successfully",
		zap.String("driver", cfg.DatabaseDriver))
	return nil
}

// Dialector returns the GORM dialector for a driver name
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres", "":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// GormConfig is shared by the server and the test helpers. TranslateError
// turns driver-specific unique violations into gorm.ErrDuplicatedKey.
// Timestamps are stored in UTC so that report windows compare correctly on
// drivers that keep the offset in the stored text, such as sqlite.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger: logger.New(
			zap.NewStdLog(zap.L()),
			logger.Config{
				SlowThreshold:             200 * time.Millisecond,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// SetDB sets the database instance (primarily for testing)
func SetDB(db *gorm.DB) {
	DB = db
}
