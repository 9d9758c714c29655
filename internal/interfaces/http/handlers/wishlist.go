// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
	config          *config.Config
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(db *gorm.DB, cfg *config.Config) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlist.NewService(db, cfg),
		config:          cfg,
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	items, err := h.wishlistService.GetWishlist(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve wishlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    items,
	})
}

// AddToWishlist handles POST /wishlist
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req wishlist.AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	item, err := h.wishlistService.AddToWishlist(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, wishlist.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, wishlist.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"error": "Product already in wishlist"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add to wishlist"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product added to wishlist successfully",
		"data":    item,
	})
}

// RemoveFromWishlist handles DELETE /wishlist/:id
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	itemID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid wishlist item ID"})
		return
	}

	if err := h.wishlistService.RemoveFromWishlist(userID, itemID); err != nil {
		switch {
		case errors.Is(err, wishlist.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wishlist item not found"})
		case errors.Is(err, wishlist.ErrUnauthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Wishlist item belongs to another user"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove from wishlist"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product removed from wishlist successfully",
	})
}
