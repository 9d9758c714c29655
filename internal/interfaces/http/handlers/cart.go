// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db, cfg),
		config:      cfg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	cartResponse, err := h.cartService.GetCart(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.AddToCart(userID, &req)
	if err != nil {
		if errors.Is(err, cart.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse,
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
		return
	}

	var req cart.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.UpdateCartItem(userID, itemID, &req)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    cartResponse,
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
		return
	}

	cartResponse, err := h.cartService.RemoveFromCart(userID, itemID)
	if err != nil {
		h.respondCartError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	if err := h.cartService.ClearCart(userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

func (h *CartHandler) respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
	case errors.Is(err, cart.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Cart item belongs to another user"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart"})
	}
}
