package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/config"
	"github.com/shahzadcollection/storefront-api/models"
	"github.com/shahzadcollection/storefront-api/routes"
	"github.com/shahzadcollection/storefront-api/services"
	"github.com/shahzadcollection/storefront-api/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

// StorefrontIntegrationTestSuite drives the full router with real staff tokens
type StorefrontIntegrationTestSuite struct {
	suite.Suite
	router  *gin.Engine
	db      *gorm.DB
	cfg     *config.Config
	storage *services.MockStorage
	product *models.Product
}

func (suite *StorefrontIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

// SetupTest runs before each test
func (suite *StorefrontIntegrationTestSuite) SetupTest() {
	t := suite.T()
	testutil.MustSetTestEnvironment(t)
	suite.cfg = testutil.TestConfig(t)
	suite.db = testutil.NewSQLiteDB(t)

	suite.storage = services.NewMockStorage()
	suite.storage.SetAsMockForTesting()
	t.Cleanup(func() { services.SetImageService(nil) })

	suite.router = routes.SetupRouter(suite.cfg)

	category := &models.Category{Name: "Lawn", Type: models.ProductTypeLadies, Active: true}
	suite.Require().NoError(suite.db.Create(category).Error)
	suite.product = &models.Product{
		Name:       "Printed Lawn",
		Price:      "PKR 1,200/meter",
		Image:      "/uploads/lawn.jpg",
		CategoryID: category.ID,
		Type:       models.ProductTypeLadies,
		InStock:    true,
		Colors:     []string{"Red", "Blue"},
		Active:     true,
	}
	suite.Require().NoError(suite.db.Create(suite.product).Error)
}

func (suite *StorefrontIntegrationTestSuite) request(method, path string, body any, header http.Header, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (suite *StorefrontIntegrationTestSuite) cartCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == suite.cfg.CartCookieName {
			return cookie
		}
	}
	return nil
}

func (suite *StorefrontIntegrationTestSuite) authHeader(email, userType string) http.Header {
	return http.Header{"Authorization": {testutil.BearerToken(suite.T(), suite.db, suite.cfg, email, userType)}}
}

// TestCheckoutToSalesReport walks a shopper's cart through checkout and into the admin report
func (suite *StorefrontIntegrationTestSuite) TestCheckoutToSalesReport() {
	red := "Red"

	// Step 1: Build the cart
	w, _ := suite.request(http.MethodPost, "/api/v1/cart/items",
		gin.H{"product_id": suite.product.ID, "selected_color": red}, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	cookie := suite.cartCookie(w)
	suite.Require().NotNil(cookie)

	w, _ = suite.request(http.MethodPatch, "/api/v1/cart/items",
		gin.H{"product_id": suite.product.ID, "selected_color": red, "quantity": 3}, nil, cookie)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	cookie = suite.cartCookie(w)

	// Step 2: Check out
	w, env := suite.request(http.MethodPost, "/api/v1/checkout", gin.H{
		"customer_name":    "Ayesha Khan",
		"customer_phone":   "03001234567",
		"customer_address": "12 Mall Road",
		"payment_method":   "cod",
	}, nil, cookie)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	suite.Require().NoError(json.Unmarshal(env.Data, &order))
	suite.True(order.TotalAmount.Equal(decimal.NewFromInt(3600)))
	suite.Equal("Lahore", order.City)
	suite.Equal(models.OrderStatusPending, order.Status)
	suite.Require().Len(order.Items, 1)
	suite.Equal(3, order.Items[0].Quantity)
	suite.Regexp(`^SF-\d{8}$`, order.OrderNumber)

	cleared := suite.cartCookie(w)
	suite.Require().NotNil(cleared)
	suite.True(cleared.MaxAge < 0)

	// Step 3: An employee confirms delivery
	employee := suite.authHeader("clerk@shahzad.pk", models.UserTypeEmployee)
	w, env = suite.request(http.MethodGet, "/api/v1/admin/orders", nil, employee)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var page services.OrderPage
	suite.Require().NoError(json.Unmarshal(env.Data, &page))
	suite.Equal(int64(1), page.Total)

	w, _ = suite.request(http.MethodPatch, fmt.Sprintf("/api/v1/admin/orders/%d", order.ID),
		gin.H{"status": "delivered"}, employee)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	// Step 4: Only an admin may read the report
	w, env = suite.request(http.MethodPost, "/api/v1/admin/sales/report", gin.H{}, employee)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("INSUFFICIENT_ROLE", env.Error.Code)

	admin := suite.authHeader("owner@shahzad.pk", models.UserTypeAdmin)
	w, env = suite.request(http.MethodPost, "/api/v1/admin/sales/report", gin.H{"group_by": "month"}, admin)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var report services.SalesReport
	suite.Require().NoError(json.Unmarshal(env.Data, &report))
	suite.Equal(1, report.Summary.TotalOrders)
	suite.Equal(1, report.Summary.DeliveredOrders)
	suite.True(report.Summary.DeliveredRevenue.Equal(decimal.NewFromInt(3600)))
	suite.Require().Len(report.TopProducts, 1)
	suite.Equal(3, report.TopProducts[0].Quantity)
	suite.True(report.SalesByCity["Lahore"].Equal(decimal.NewFromInt(3600)))
	suite.Equal(services.GroupByMonth, report.DateRange.GroupBy)
}

// TestCheckout_EmptyCart rejects checkout without a cart cookie
func (suite *StorefrontIntegrationTestSuite) TestCheckout_EmptyCart() {
	w, env := suite.request(http.MethodPost, "/api/v1/checkout", gin.H{
		"customer_name": "Ayesha Khan", "customer_phone": "03001234567",
		"customer_address": "12 Mall Road", "payment_method": "cod",
	}, nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("EMPTY_CART", env.Error.Code)
}

// TestStaffLogin exchanges credentials for a token the router accepts
func (suite *StorefrontIntegrationTestSuite) TestStaffLogin() {
	testutil.CreateStaff(suite.T(), suite.db, "owner@shahzad.pk", models.UserTypeAdmin)

	w, env := suite.request(http.MethodPost, "/api/v1/auth/login",
		gin.H{"email": "owner@shahzad.pk", "password": testutil.StaffPassword}, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var login struct {
		Token services.IssuedToken `json:"token"`
	}
	suite.Require().NoError(json.Unmarshal(env.Data, &login))

	header := http.Header{"Authorization": {"Bearer " + login.Token.AccessToken}}
	w, env = suite.request(http.MethodGet, "/api/v1/auth/me", nil, header)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var me models.User
	suite.Require().NoError(json.Unmarshal(env.Data, &me))
	suite.Equal("owner@shahzad.pk", me.Email)

	w, env = suite.request(http.MethodGet, "/api/v1/admin/users", nil, http.Header{"Authorization": {"Bearer forged"}})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("INVALID_TOKEN", env.Error.Code)
}

// TestCatalogAdministration creates a product with an uploaded image and sees it in the storefront
func (suite *StorefrontIntegrationTestSuite) TestCatalogAdministration() {
	admin := suite.authHeader("owner@shahzad.pk", models.UserTypeAdmin)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "chiffon.jpg")
	suite.Require().NoError(err)
	_, err = part.Write([]byte("fake JPEG content"))
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/uploads", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", admin.Get("Authorization"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	var uploaded services.UploadedImage
	suite.Require().NoError(json.Unmarshal(env.Data, &uploaded))
	suite.Equal(1, suite.storage.Len())

	w, env = suite.request(http.MethodPost, "/api/v1/admin/products", gin.H{
		"name":        "Embroidered Chiffon",
		"price":       "PKR 4,500",
		"image":       uploaded.URL,
		"category_id": suite.product.CategoryID,
		"type":        "ladies",
		"featured":    true,
	}, admin)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w, env = suite.request(http.MethodGet, "/api/v1/products?featured=true", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var products []models.Product
	suite.Require().NoError(json.Unmarshal(env.Data, &products))
	suite.Require().Len(products, 1)
	suite.Equal(uploaded.URL, products[0].Image)
}

func TestStorefrontIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(StorefrontIntegrationTestSuite))
}

// TestCheckoutUsesRouterStoreCode checks that order numbers follow the
// configuration the router was built with
func (suite *StorefrontIntegrationTestSuite) TestCheckoutUsesRouterStoreCode() {
	cfg := *suite.cfg
	cfg.StoreCode = "ISB"
	suite.router = routes.SetupRouter(&cfg)

	w, _ := suite.request(http.MethodPost, "/api/v1/cart/items", gin.H{"product_id": suite.product.ID}, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, env := suite.request(http.MethodPost, "/api/v1/checkout", gin.H{
		"customer_name":    "Ayesha Khan",
		"customer_phone":   "03001234567",
		"customer_address": "12 Mall Road",
		"payment_method":   "online",
	}, nil, suite.cartCookie(w))
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	suite.Require().NoError(json.Unmarshal(env.Data, &order))
	suite.Regexp(`^ISB-\d{8}$`, order.OrderNumber)
}

// TestStoreMetadata edits the public store pages as an admin
func (suite *StorefrontIntegrationTestSuite) TestStoreMetadata() {
	w, env := suite.request(http.MethodGet, "/api/v1/store-info", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var info models.StoreInfo
	suite.Require().NoError(json.Unmarshal(env.Data, &info))
	suite.Equal("0323 9348438", info.ContactPhone)

	employee := suite.authHeader("clerk@shahzad.pk", models.UserTypeEmployee)
	body := gin.H{"title": "Visit Us", "location": "Ichra Road", "contact_phone": "042 111 222"}
	w, _ = suite.request(http.MethodPut, "/api/v1/admin/store-info", body, employee)
	suite.Equal(http.StatusForbidden, w.Code)

	admin := suite.authHeader("owner@shahzad.pk", models.UserTypeAdmin)
	w, _ = suite.request(http.MethodPut, "/api/v1/admin/store-info", body, admin)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	_, env = suite.request(http.MethodGet, "/api/v1/store-info", nil, nil)
	suite.Require().NoError(json.Unmarshal(env.Data, &info))
	suite.Equal("042 111 222", info.ContactPhone)

	w, _ = suite.request(http.MethodPost, "/api/v1/admin/sections",
		gin.H{"type": "gents", "title": "Gents", "image": "/gents.jpg"}, admin)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	_, env = suite.request(http.MethodGet, "/api/v1/sections", nil, nil)
	var sections []models.Section
	suite.Require().NoError(json.Unmarshal(env.Data, &sections))
	suite.Require().Len(sections, 1)
	suite.Equal("Gents", sections[0].Title)
}
