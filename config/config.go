package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds all application configuration
type Config struct {
	DatabaseDriver string
	DatabaseURL    string
	Port           string
	GoEnv          string
	LogLevel       string

	// Staff authentication. When Auth0Domain is set, tokens are validated
	// against Auth0's JWKS; otherwise locally issued HS256 tokens are used.
	Auth0Domain   string
	Auth0Audience string
	JWTSecret     string
	JWTIssuer     string
	JWTAudience   string
	JWTTTL        time.Duration

	CartCookieName   string
	CartCookieSecret string

	StoreCode   string
	DefaultCity string

	StorageDriver      string
	UploadDir          string
	AWSRegion          string
	AWSS3Bucket        string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSS3PublicBaseURL string

	CORSAllowedOrigins []string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

var current *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// In production, environment variables are set directly
		// so it's okay if .env files don't exist
		if err := godotenv.Load(); err != nil {
			zap.L().Info("No .env file found, using system environment variables")
		}
	} else {
		zap.L().Info("Loaded configuration", zap.String("file", envFile))
	}

	config := &Config{
		DatabaseDriver:     strings.ToLower(getEnv("DATABASE_DRIVER", "postgres")),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Port:               getEnv("PORT", "8080"),
		GoEnv:              getEnv("GO_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Auth0Domain:        getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:      getEnv("AUTH0_AUDIENCE", ""),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTIssuer:          getEnv("JWT_ISSUER", "storefront-api"),
		JWTAudience:        getEnv("JWT_AUDIENCE", "storefront-admin"),
		JWTTTL:             getEnvDuration("JWT_TTL", 24*time.Hour),
		CartCookieName:     getEnv("CART_COOKIE_NAME", "shahzad-cart"),
		CartCookieSecret:   getEnv("CART_COOKIE_SECRET", ""),
		StoreCode:          getEnv("STORE_CODE", "SF"),
		DefaultCity:        getEnv("DEFAULT_CITY", "Lahore"),
		StorageDriver:      strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSS3Bucket:        getEnv("AWS_S3_BUCKET", ""),
		AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSS3PublicBaseURL: getEnv("AWS_S3_PUBLIC_BASE_URL", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AdminName:          getEnv("ADMIN_NAME", "Admin User"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Carts signed with a per-process secret do not survive a restart.
	if config.CartCookieSecret == "" {
		config.CartCookieSecret = uuid.NewString()
		zap.L().Warn("CART_COOKIE_SECRET not set, using a random secret for this process")
	}

	current = config
	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	switch c.DatabaseDriver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}

	switch c.StorageDriver {
	case "local":
	case "s3":
		if c.AWSS3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.IsProduction() {
		if c.JWTSecret == "" && !c.UsesAuth0() {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.CartCookieSecret == "" {
			return fmt.Errorf("CART_COOKIE_SECRET is required in production")
		}
	}

	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// UsesAuth0 reports whether staff tokens are issued by Auth0 instead of this API
func (c *Config) UsesAuth0() bool {
	return c.Auth0Domain != ""
}

// GetDatabaseURL returns the database URL
func (c *Config) GetDatabaseURL() string {
	return c.DatabaseURL
}

// Default returns the configuration used when Load has not been called,
// which is the case in unit tests.
func Default() *Config {
	return &Config{
		DatabaseDriver:     "sqlite",
		DatabaseURL:        "file::memory:?cache=shared",
		Port:               "8080",
		GoEnv:              "test",
		LogLevel:           "info",
		JWTSecret:          "test-secret",
		JWTIssuer:          "storefront-api",
		JWTAudience:        "storefront-admin",
		JWTTTL:             time.Hour,
		CartCookieName:     "shahzad-cart",
		CartCookieSecret:   "test-cart-secret",
		StoreCode:          "SF",
		DefaultCity:        "Lahore",
		StorageDriver:      "local",
		UploadDir:          "./uploads",
		AWSRegion:          "us-east-1",
		CORSAllowedOrigins: []string{"*"},
		AdminName:          "Admin User",
	}
}

// GetConfig returns the loaded configuration, falling back to Default
func GetConfig() *Config {
	if current == nil {
		return Default()
	}
	return current
}

// SetConfig replaces the active configuration (primarily for testing)
func SetConfig(cfg *Config) {
	current = cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Invalid duration, using default",
			zap.String("key", key),
			zap.String("value", value),
			zap.Duration("default", defaultValue))
		return defaultValue
	}
	return d
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
