// internal/interfaces/http/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/admin"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/domain/waitlist"
	"gorm.io/gorm"
)

// AdminHandler handles the admin management surface
type AdminHandler struct {
	dashboardService *admin.Service
	catalogService   *catalog.Service
	categoryService  *catalog.CategoryService
	orderService     *order.Service
	userAdminService *user.AdminService
	waitlistService  *waitlist.Service
	config           *config.Config
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AdminHandler {
	cartService := cart.NewService(db, cfg)
	guard := order.NewRedisCheckoutGuard(redisClient, cfg.Store.CheckoutGuardTTL)

	return &AdminHandler{
		dashboardService: admin.NewService(db, cfg),
		catalogService:   catalog.NewService(db, cfg),
		categoryService:  catalog.NewCategoryService(db, cfg),
		orderService:     order.NewService(db, cfg, cartService, guard),
		userAdminService: user.NewAdminService(db, cfg),
		waitlistService:  waitlist.NewService(db, cfg),
		config:           cfg,
	}
}

// GetDashboard handles GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	resp, err := h.dashboardService.GetDashboard()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard retrieved successfully",
		"data":    resp,
	})
}

// GetProducts handles GET /admin/products
func (h *AdminHandler) GetProducts(c *gin.Context) {
	products, err := h.catalogService.AdminGetProducts()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /admin/products/:id
func (h *AdminHandler) GetProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    product,
	})
}

// CreateProduct handles POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req catalog.ProductCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.CreateProduct(&req)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully",
		"data":    product,
	})
}

// UpdateProduct handles PUT /admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req catalog.ProductUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.catalogService.UpdateProduct(id, &req)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	if err := h.catalogService.DeleteProduct(id); err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted successfully",
	})
}

// GetCategories handles GET /admin/categories
func (h *AdminHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}

// CreateCategory handles POST /admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req catalog.CategoryCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Category created successfully",
		"data":    category,
	})
}

// UpdateCategory handles PUT /admin/categories/:id
func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req catalog.CategoryUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	category, err := h.categoryService.UpdateCategory(id, &req)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category updated successfully",
		"data":    category,
	})
}

// DeleteCategory handles DELETE /admin/categories/:id
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Category deleted successfully",
	})
}

// GetOrders handles GET /admin/orders
func (h *AdminHandler) GetOrders(c *gin.Context) {
	status := order.Status(c.Query("status"))
	if status != "" && !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	orders, err := h.orderService.AdminGetOrders(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// UpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req order.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.orderService.UpdateStatus(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, order.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    o,
	})
}

// GetUsers handles GET /admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.userAdminService.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Users retrieved successfully",
		"data":    users,
	})
}

// PromoteUserRequest represents a promote-to-admin request
type PromoteUserRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// PromoteUser handles POST /admin/users/promote
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	var req PromoteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	u, err := h.userAdminService.PromoteToAdmin(req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to promote user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User promoted to admin successfully",
		"data":    u,
	})
}

// UserStatusRequest represents an activate/deactivate request
type UserStatusRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// UpdateUserStatus handles PUT /admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	u, err := h.userAdminService.SetActive(id, *req.IsActive)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User status updated successfully",
		"data":    u,
	})
}

// GetWaitlist handles GET /admin/waitlist
func (h *AdminHandler) GetWaitlist(c *gin.Context) {
	entries, err := h.waitlistService.GetEntries()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve waitlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Waitlist retrieved successfully",
		"data":    entries,
	})
}

// GrantWaitlistAccess handles PUT /admin/waitlist/:id/grant
func (h *AdminHandler) GrantWaitlistAccess(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid waitlist entry ID"})
		return
	}

	entry, err := h.waitlistService.GrantAccess(id)
	if err != nil {
		if errors.Is(err, waitlist.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Waitlist entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to grant access"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Waitlist access granted successfully",
		"data":    entry,
	})
}

func (h *AdminHandler) respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, catalog.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrCategoryCycle):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category parent chain would form a cycle"})
	case errors.Is(err, catalog.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Catalog operation failed"})
	}
}
