package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// apiResponse is the envelope every handler writes
type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Kind    string            `json:"kind"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

// setupTestDB installs a private in-memory database and the default test configuration
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db), "Failed to migrate test database")

	cfg := config.Default()
	cfg.UploadDir = t.TempDir()
	config.SetConfig(cfg)
	config.SetDB(db)
	t.Cleanup(func() { config.SetConfig(nil) })

	return db
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	return router
}

// mockAuthMiddleware simulates the JWT middleware for testing
// It sets up the context exactly as the real EnsureValidToken middleware does
func mockAuthMiddleware(subject, role, accessToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", subject)
		c.Set("access_token", accessToken)

		mockClaims := &validator.ValidatedClaims{
			RegisteredClaims: validator.RegisteredClaims{Subject: subject},
			CustomClaims:     &middleware.CustomClaims{Role: role},
		}
		c.Set("validated_claims", mockClaims)

		c.Next()
	}
}

// performRequest sends body as JSON and carries the given cookies
func performRequest(router *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var response apiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "Response should be valid JSON: %s", w.Body.String())
	return response
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	response := decodeResponse(t, w)
	require.True(t, response.Success, "expected success: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(response.Data, dst))
}

// cartCookie returns the cart cookie set by a response, or nil
func cartCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == config.GetConfig().CartCookieName {
			return cookie
		}
	}
	return nil
}

func seedCategory(t *testing.T, db *gorm.DB, name, productType string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Type: productType, Active: true}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, category *models.Category, name, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		Price:      price,
		Image:      "/images/fabric.jpg",
		CategoryID: category.ID,
		Type:       category.Type,
		InStock:    true,
		Colors:     []string{"Red", "Blue"},
		Active:     true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
