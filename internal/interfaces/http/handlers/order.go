// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-backend/internal/pkg/invoice"
	"gorm.io/gorm"
)

// OrderHandler handles checkout and order endpoints
type OrderHandler struct {
	orderService   *order.Service
	invoiceService *invoice.Service
	config         *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *OrderHandler {
	cartService := cart.NewService(db, cfg)
	guard := order.NewRedisCheckoutGuard(redisClient, cfg.Store.CheckoutGuardTTL)

	return &OrderHandler{
		orderService:   order.NewService(db, cfg, cartService, guard),
		invoiceService: invoice.NewService(cfg),
		config:         cfg,
	}
}

// Checkout handles POST /checkout
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req order.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.orderService.Checkout(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		case errors.Is(err, order.ErrCheckoutInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": "Checkout already in progress"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete checkout"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    o,
	})
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	orders, err := h.orderService.GetUserOrders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	isAdmin := middleware.IsAdminFromContext(c)

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	o, err := h.orderService.GetOrder(orderID, userID, isAdmin)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// GetInvoice handles GET /orders/:id/invoice
func (h *OrderHandler) GetInvoice(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	isAdmin := middleware.IsAdminFromContext(c)

	orderID, err := parseIDParam(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	o, err := h.orderService.GetOrder(orderID, userID, isAdmin)
	if err != nil {
		h.respondOrderError(c, err)
		return
	}

	pdf, err := h.invoiceService.Generate(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate invoice"})
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", o.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", pdf.Bytes())
}

func (h *OrderHandler) respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
	case errors.Is(err, order.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Order belongs to another user"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve order"})
	}
}
