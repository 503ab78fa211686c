package services

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/shahzadcollection/storefront-api/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const maxProductLimit = 100

// CategoryInput creates a category
type CategoryInput struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Type        string   `json:"type" binding:"required,oneof=ladies gents"`
	Items       []string `json:"items"`
}

// UpdateCategoryInput changes a category. Active false soft-deletes it.
type UpdateCategoryInput struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Type        *string   `json:"type"`
	Items       *[]string `json:"items"`
	Active      *bool     `json:"active"`
}

// ProductFilter narrows the public product list
type ProductFilter struct {
	Featured   *bool  `form:"featured"`
	Type       string `form:"type"`
	CategoryID uint   `form:"category_id"`
	Limit      int    `form:"limit"`
}

// ProductInput creates a product
type ProductInput struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	FullDescription *string  `json:"full_description"`
	Price           string   `json:"price" binding:"required"`
	OriginalPrice   *string  `json:"original_price"`
	Image           string   `json:"image"`
	Images          []string `json:"images"`
	CategoryID      uint     `json:"category_id" binding:"required"`
	Type            string   `json:"type" binding:"required,oneof=ladies gents"`
	InStock         *bool    `json:"in_stock"`
	StockQuantity   *int     `json:"stock_quantity" binding:"omitempty,gte=0"`
	Material        *string  `json:"material"`
	Width           *string  `json:"width"`
	Weight          *string  `json:"weight"`
	Care            *string  `json:"care"`
	Origin          *string  `json:"origin"`
	Colors          []string `json:"colors"`
	Sizes           []string `json:"sizes"`
	Features        []string `json:"features"`
	Featured        bool     `json:"featured"`
}

// UpdateProductInput changes a product. Active false soft-deletes it.
type UpdateProductInput struct {
	Name            *string   `json:"name"`
	Description     *string   `json:"description"`
	FullDescription *string   `json:"full_description"`
	Price           *string   `json:"price"`
	OriginalPrice   *string   `json:"original_price"`
	Image           *string   `json:"image"`
	Images          *[]string `json:"images"`
	CategoryID      *uint     `json:"category_id"`
	Type            *string   `json:"type"`
	InStock         *bool     `json:"in_stock"`
	StockQuantity   *int      `json:"stock_quantity"`
	Material        *string   `json:"material"`
	Width           *string   `json:"width"`
	Weight          *string   `json:"weight"`
	Care            *string   `json:"care"`
	Origin          *string   `json:"origin"`
	Colors          *[]string `json:"colors"`
	Sizes           *[]string `json:"sizes"`
	Features        *[]string `json:"features"`
	Featured        *bool     `json:"featured"`
	Active          *bool     `json:"active"`
}

// CatalogService manages categories and products
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListCategories returns active categories, optionally of one type
func (s *CatalogService) ListCategories(ctx context.Context, productType string) ([]models.Category, error) {
	query := s.db.WithContext(ctx).Where("active = ?", true)
	if productType != "" {
		if !models.IsValidProductType(productType) {
			return nil, invalidProductType()
		}
		query = query.Where("type = ?", productType)
	}

	categories := []models.Category{}
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return categories, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ValidationError("VALIDATION_ERROR", "Invalid category", map[string]string{"name": "is required"})
	}
	if !models.IsValidProductType(in.Type) {
		return nil, invalidProductType()
	}

	category := models.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Image:       in.Image,
		Type:        in.Type,
		Items:       datatypes.JSONSlice[string](nonNil(in.Items)),
		Active:      true,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}

	zap.L().Info("Category created", zap.Uint("category_id", category.ID), zap.String("type", category.Type))
	return &category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, in UpdateCategoryInput) (*models.Category, error) {
	var category models.Category
	if err := findActive(ctx, s.db, &category, id, "CATEGORY_NOT_FOUND", "Category not found"); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Active != nil {
		if *in.Active {
			return nil, ValidationError("INVALID_UPDATE", "Only active=false is supported", map[string]string{"active": "must be false"})
		}
		updates["active"] = false
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, ValidationError("VALIDATION_ERROR", "Invalid category", map[string]string{"name": "is required"})
		}
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Type != nil {
		if !models.IsValidProductType(*in.Type) {
			return nil, invalidProductType()
		}
		updates["type"] = *in.Type
	}
	if in.Description != nil {
		updates["description"] = optionalString(*in.Description)
	}
	if in.Image != nil {
		updates["image"] = optionalString(*in.Image)
	}
	if in.Items != nil {
		updates["items"] = datatypes.JSONSlice[string](nonNil(*in.Items))
	}
	if len(updates) == 0 {
		return nil, ValidationError("INVALID_UPDATE", "Nothing to update", nil)
	}

	if err := s.db.WithContext(ctx).Model(&category).Updates(updates).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return &category, nil
}

// ListProducts returns active products, featured first then newest
func (s *CatalogService) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Preload("Category").Where("active = ?", true)
	if filter.Featured != nil {
		query = query.Where("featured = ?", *filter.Featured)
	}
	if filter.Type != "" {
		if !models.IsValidProductType(filter.Type) {
			return nil, invalidProductType()
		}
		query = query.Where("type = ?", filter.Type)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Limit > 0 {
		query = query.Limit(min(filter.Limit, maxProductLimit))
	}

	products := []models.Product{}
	if err := query.Order("featured DESC").Order("created_at DESC").Order("id DESC").Find(&products).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Category").
		Where("id = ? AND active = ?", id, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("PRODUCT_NOT_FOUND", "Product not found")
		}
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return &product, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	fields := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "is required"
	}
	if strings.TrimSpace(in.Price) == "" {
		fields["price"] = "is required"
	}
	if !models.IsValidProductType(in.Type) {
		fields["type"] = "must be one of: ladies, gents"
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		fields["stock_quantity"] = "must be at least 0"
	}
	if len(fields) > 0 {
		return nil, ValidationError("VALIDATION_ERROR", "Invalid product", fields)
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	product := models.Product{
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		FullDescription: in.FullDescription,
		Price:           strings.TrimSpace(in.Price),
		OriginalPrice:   in.OriginalPrice,
		Image:           in.Image,
		Images:          datatypes.JSONSlice[string](nonNil(in.Images)),
		CategoryID:      in.CategoryID,
		Type:            in.Type,
		InStock:         in.InStock == nil || *in.InStock,
		StockQuantity:   in.StockQuantity,
		Material:        in.Material,
		Width:           in.Width,
		Weight:          in.Weight,
		Care:            in.Care,
		Origin:          in.Origin,
		Colors:          datatypes.JSONSlice[string](nonNil(in.Colors)),
		Sizes:           datatypes.JSONSlice[string](nonNil(in.Sizes)),
		Features:        datatypes.JSONSlice[string](nonNil(in.Features)),
		Featured:        in.Featured,
		Active:          true,
	}
	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	// in_stock has a schema default of true, which Create applies to a zero value
	if !product.InStock {
		if err := s.db.WithContext(ctx).Model(&product).Update("in_stock", false).Error; err != nil {
			return nil, InternalError("DATABASE_ERROR", err)
		}
	}

	zap.L().Info("Product created", zap.Uint("product_id", product.ID), zap.Uint("category_id", product.CategoryID))
	return s.GetProduct(ctx, product.ID)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, in UpdateProductInput) (*models.Product, error) {
	var product models.Product
	if err := findActive(ctx, s.db, &product, id, "PRODUCT_NOT_FOUND", "Product not found"); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Active != nil {
		if *in.Active {
			return nil, ValidationError("INVALID_UPDATE", "Only active=false is supported", map[string]string{"active": "must be false"})
		}
		updates["active"] = false
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, ValidationError("VALIDATION_ERROR", "Invalid product", map[string]string{"name": "is required"})
		}
		updates["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		if strings.TrimSpace(*in.Price) == "" {
			return nil, ValidationError("VALIDATION_ERROR", "Invalid product", map[string]string{"price": "is required"})
		}
		updates["price"] = strings.TrimSpace(*in.Price)
	}
	if in.Type != nil {
		if !models.IsValidProductType(*in.Type) {
			return nil, invalidProductType()
		}
		updates["type"] = *in.Type
	}
	if in.CategoryID != nil {
		if err := s.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *in.CategoryID
	}
	if in.StockQuantity != nil {
		if *in.StockQuantity < 0 {
			return nil, ValidationError("VALIDATION_ERROR", "Invalid product", map[string]string{"stock_quantity": "must be at least 0"})
		}
		updates["stock_quantity"] = *in.StockQuantity
	}
	setString(updates, "description", in.Description)
	setOptional(updates, "full_description", in.FullDescription)
	setOptional(updates, "original_price", in.OriginalPrice)
	setString(updates, "image", in.Image)
	setOptional(updates, "material", in.Material)
	setOptional(updates, "width", in.Width)
	setOptional(updates, "weight", in.Weight)
	setOptional(updates, "care", in.Care)
	setOptional(updates, "origin", in.Origin)
	setList(updates, "images", in.Images)
	setList(updates, "colors", in.Colors)
	setList(updates, "sizes", in.Sizes)
	setList(updates, "features", in.Features)
	if in.InStock != nil {
		updates["in_stock"] = *in.InStock
	}
	if in.Featured != nil {
		updates["featured"] = *in.Featured
	}
	if len(updates) == 0 {
		return nil, ValidationError("INVALID_UPDATE", "Nothing to update", nil)
	}

	if err := s.db.WithContext(ctx).Model(&product).Updates(updates).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	if err := s.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, InternalError("DATABASE_ERROR", err)
	}
	return &product, nil
}

// CartLineFor resolves a product into a cart line so that names and prices
// always come from the catalog. Unavailable products and unknown options are rejected.
func (s *CatalogService) CartLineFor(ctx context.Context, productID uint, color, size *string) (CartLine, error) {
	product, err := s.GetProduct(ctx, productID)
	if err != nil {
		return CartLine{}, err
	}

	if !product.InStock || (product.StockQuantity != nil && *product.StockQuantity <= 0) {
		return CartLine{}, ValidationError("OUT_OF_STOCK", "Product is out of stock", nil)
	}
	if color != nil && len(product.Colors) > 0 && !slices.Contains(product.Colors, *color) {
		return CartLine{}, ValidationError("INVALID_OPTION", "Invalid product option",
			map[string]string{"selected_color": "is not offered for this product"})
	}
	if size != nil && len(product.Sizes) > 0 && !slices.Contains(product.Sizes, *size) {
		return CartLine{}, ValidationError("INVALID_OPTION", "Invalid product option",
			map[string]string{"selected_size": "is not offered for this product"})
	}

	line := CartLine{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		Image:         product.Image,
		Quantity:      1,
		Type:          product.Type,
		SelectedColor: color,
		SelectedSize:  size,
	}
	if product.Category != nil {
		line.Category = product.Category.Name
	}
	return line, nil
}

func (s *CatalogService) ensureCategory(ctx context.Context, id uint) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND active = ?", id, true).
		Count(&count).Error
	if err != nil {
		return InternalError("DATABASE_ERROR", err)
	}
	if count == 0 {
		return ValidationError("INVALID_CATEGORY", "Category does not exist",
			map[string]string{"category_id": "does not exist"})
	}
	return nil
}

// findActive loads the active row with the given id, or reports code as not found
func findActive(ctx context.Context, db *gorm.DB, dst any, id uint, code, message string) error {
	err := db.WithContext(ctx).Where("id = ? AND active = ?", id, true).First(dst).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotFoundError(code, message)
		}
		return InternalError("DATABASE_ERROR", err)
	}
	return nil
}

func invalidProductType() *AppError {
	return ValidationError("INVALID_TYPE", "Invalid product type",
		map[string]string{"type": "must be one of: ladies, gents"})
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func setString(updates map[string]any, column string, value *string) {
	if value != nil {
		updates[column] = *value
	}
}

func setOptional(updates map[string]any, column string, value *string) {
	if value != nil {
		updates[column] = optionalString(*value)
	}
}

func setList(updates map[string]any, column string, value *[]string) {
	if value != nil {
		updates[column] = datatypes.JSONSlice[string](nonNil(*value))
	}
}
