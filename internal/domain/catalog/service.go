// internal/domain/catalog/service.go
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Sentinel errors returned by catalog services
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
)

// Sort keys accepted by the public product listing
const (
	SortNewest    = "newest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortName      = "name"
)

// Service handles catalog business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents public product list query parameters
type ProductListRequest struct {
	CategoryID uint   `form:"category"`
	Search     string `form:"search"`
	Sort       string `form:"sort,default=newest"`
}

// ProductCreateRequest represents product creation data
type ProductCreateRequest struct {
	Name            string `json:"name" binding:"required"`
	Slug            string `json:"slug"`
	Description     string `json:"description"`
	Price           int64  `json:"price" binding:"required"`
	CompareAtPrice  *int64 `json:"compare_at_price"`
	SKU             string `json:"sku"`
	Inventory       int    `json:"inventory"`
	ImageURL        string `json:"image_url"`
	Images          []ProductImage `json:"images"`
	CategoryID      uint   `json:"category_id" binding:"required"`
	IsActive        *bool  `json:"is_active"`
	IsFeatured      bool   `json:"is_featured"`
	ShippingDetails string `json:"shipping_details"`
	SizeChart       string `json:"size_chart"`
	Colorway        string `json:"colorway"`
	ModelDetails    string `json:"model_details"`
	FabricType      string `json:"fabric_type"`
	ProductDetails  string `json:"product_details"`
}

// ProductUpdateRequest represents product update data
type ProductUpdateRequest struct {
	Name            *string         `json:"name"`
	Slug            *string         `json:"slug"`
	Description     *string         `json:"description"`
	Price           *int64          `json:"price"`
	CompareAtPrice  *int64          `json:"compare_at_price"`
	SKU             *string         `json:"sku"`
	Inventory       *int            `json:"inventory"`
	ImageURL        *string         `json:"image_url"`
	Images          []ProductImage  `json:"images"`
	CategoryID      *uint           `json:"category_id"`
	IsActive        *bool           `json:"is_active"`
	IsFeatured      *bool           `json:"is_featured"`
	ShippingDetails *string         `json:"shipping_details"`
	SizeChart       *string         `json:"size_chart"`
	Colorway        *string         `json:"colorway"`
	ModelDetails    *string         `json:"model_details"`
	FabricType      *string         `json:"fabric_type"`
	ProductDetails  *string         `json:"product_details"`
}

// ProductDetailResponse represents a product with its related products
type ProductDetailResponse struct {
	Product Product   `json:"product"`
	Related []Product `json:"related_products"`
}

// HomeResponse represents the home page payload
type HomeResponse struct {
	FeaturedProducts []Product  `json:"featured_products"`
	Categories       []Category `json:"categories"`
}

// GetProducts retrieves active products with filtering and sorting.
// The public listing is not paginated.
func (s *Service) GetProducts(req *ProductListRequest) ([]Product, error) {
	var products []Product

	query := s.db.Model(&Product{}).
		Preload("Category").
		Where("is_active = ?", true)

	if req.CategoryID > 0 {
		query = query.Where("category_id = ?", req.CategoryID)
	}

	if req.Search != "" {
		search := "%" + strings.ToLower(req.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", search, search)
	}

	switch req.Sort {
	case SortPriceLow:
		query = query.Order("price ASC")
	case SortPriceHigh:
		query = query.Order("price DESC")
	case SortName:
		query = query.Order("name ASC")
	default: // newest
		query = query.Order("created_at DESC")
	}

	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, nil
}

// GetHome retrieves featured products and all categories
func (s *Service) GetHome() (*HomeResponse, error) {
	var featured []Product
	err := s.db.Where("is_featured = ? AND is_active = ?", true, true).
		Limit(s.config.Store.FeaturedLimit).
		Find(&featured).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve featured products: %w", err)
	}

	var categories []Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}

	return &HomeResponse{
		FeaturedProducts: featured,
		Categories:       categories,
	}, nil
}

// GetProductBySlug retrieves an active product by slug with its active
// variants and related products from the same category.
func (s *Service) GetProductBySlug(slug string) (*ProductDetailResponse, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Variants").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %q: %w", slug, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	var related []Product
	err := s.db.Where("category_id = ? AND is_active = ? AND id <> ?",
		product.CategoryID, true, product.ID).
		Limit(s.config.Store.RelatedLimit).
		Find(&related).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve related products: %w", err)
	}

	return &ProductDetailResponse{
		Product: product,
		Related: related,
	}, nil
}

// GetProduct retrieves a single product by ID regardless of active flag
func (s *Service) GetProduct(id uint) (*Product, error) {
	var product Product
	result := s.db.
		Preload("Category").
		Preload("Variants").
		Where("id = ?", id).
		First(&product)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// AdminGetProducts retrieves all products newest first for the admin list
func (s *Service) AdminGetProducts() ([]Product, error) {
	var products []Product
	err := s.db.Preload("Category").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}
	return products, nil
}

// CreateProduct creates a new product
func (s *Service) CreateProduct(req *ProductCreateRequest) (*Product, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	var category Category
	if err := s.db.First(&category, req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", req.CategoryID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	product := Product{
		Name:            req.Name,
		Slug:            slug,
		Description:     req.Description,
		Price:           req.Price,
		CompareAtPrice:  req.CompareAtPrice,
		SKU:             normalizeSKU(req.SKU),
		Inventory:       req.Inventory,
		ImageURL:        req.ImageURL,
		CategoryID:      req.CategoryID,
		IsActive:        isActive,
		IsFeatured:      req.IsFeatured,
		ShippingDetails: req.ShippingDetails,
		SizeChart:       req.SizeChart,
		Colorway:        req.Colorway,
		ModelDetails:    req.ModelDetails,
		FabricType:      req.FabricType,
		ProductDetails:  req.ProductDetails,
	}
	if err := product.SetImageList(req.Images); err != nil {
		return nil, fmt.Errorf("failed to encode image list: %w", err)
	}

	if err := s.checkProductUniqueness(slug, product.SKU, 0); err != nil {
		return nil, err
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

// UpdateProduct updates an existing product
func (s *Service) UpdateProduct(id uint, req *ProductUpdateRequest) (*Product, error) {
	var product Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Slug != nil {
		product.Slug = *req.Slug
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		product.CompareAtPrice = req.CompareAtPrice
	}
	if req.SKU != nil {
		product.SKU = normalizeSKU(*req.SKU)
	}
	if req.Inventory != nil {
		product.Inventory = *req.Inventory
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Images != nil {
		if err := product.SetImageList(req.Images); err != nil {
			return nil, fmt.Errorf("failed to encode image list: %w", err)
		}
	}
	if req.CategoryID != nil {
		var category Category
		if err := s.db.First(&category, *req.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("category %d: %w", *req.CategoryID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to load category: %w", err)
		}
		product.CategoryID = *req.CategoryID
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.ShippingDetails != nil {
		product.ShippingDetails = *req.ShippingDetails
	}
	if req.SizeChart != nil {
		product.SizeChart = *req.SizeChart
	}
	if req.Colorway != nil {
		product.Colorway = *req.Colorway
	}
	if req.ModelDetails != nil {
		product.ModelDetails = *req.ModelDetails
	}
	if req.FabricType != nil {
		product.FabricType = *req.FabricType
	}
	if req.ProductDetails != nil {
		product.ProductDetails = *req.ProductDetails
	}

	if err := s.checkProductUniqueness(product.Slug, product.SKU, product.ID); err != nil {
		return nil, err
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

// DeleteProduct deletes a product and its dependent rows
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return nil
}

// checkProductUniqueness pre-checks slug/sku collisions so they surface
// as conflicts instead of raw constraint violations. A nil SKU is never
// a collision.
func (s *Service) checkProductUniqueness(slug string, sku *string, excludeID uint) error {
	var count int64
	query := s.db.Model(&Product{}).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("slug %q: %w", slug, ErrConflict)
	}

	if sku != nil {
		query = s.db.Model(&Product{}).Where("sku = ?", *sku)
		if excludeID > 0 {
			query = query.Where("id <> ?", excludeID)
		}
		if err := query.Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check sku: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("sku %q: %w", *sku, ErrConflict)
		}
	}
	return nil
}

// normalizeSKU maps a blank SKU to NULL
func normalizeSKU(sku string) *string {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil
	}
	return &sku
}

// Slugify derives a URL-safe slug from a name
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "/", "-")
	return slug
}
