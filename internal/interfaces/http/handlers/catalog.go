// internal/interfaces/http/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CatalogHandler handles public catalog endpoints
type CatalogHandler struct {
	catalogService  *catalog.Service
	categoryService *catalog.CategoryService
	config          *config.Config
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(db *gorm.DB, cfg *config.Config) *CatalogHandler {
	return &CatalogHandler{
		catalogService:  catalog.NewService(db, cfg),
		categoryService: catalog.NewCategoryService(db, cfg),
		config:          cfg,
	}
}

// GetHome handles GET /home
func (h *CatalogHandler) GetHome(c *gin.Context) {
	resp, err := h.catalogService.GetHome()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve home page"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Home page retrieved successfully",
		"data":    resp,
	})
}

// GetProducts handles GET /products
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	var req catalog.ProductListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	products, err := h.catalogService.GetProducts(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProductBySlug handles GET /products/:slug
func (h *CatalogHandler) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	resp, err := h.catalogService.GetProductBySlug(slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    resp,
	})
}

// GetCategories handles GET /categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	resp, err := h.categoryService.GetCategoryTree()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    resp,
	})
}

// GetCategory handles GET /categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category retrieved successfully",
		"data":    category,
	})
}

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
