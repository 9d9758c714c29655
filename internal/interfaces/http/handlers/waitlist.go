// internal/interfaces/http/handlers/waitlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/waitlist"
	"gorm.io/gorm"
)

// WaitlistHandler handles public waitlist signup
type WaitlistHandler struct {
	waitlistService *waitlist.Service
	config          *config.Config
}

// NewWaitlistHandler creates a new waitlist handler
func NewWaitlistHandler(db *gorm.DB, cfg *config.Config) *WaitlistHandler {
	return &WaitlistHandler{
		waitlistService: waitlist.NewService(db, cfg),
		config:          cfg,
	}
}

// Join handles POST /waitlist
func (h *WaitlistHandler) Join(c *gin.Context) {
	var req waitlist.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	entry, err := h.waitlistService.Join(&req)
	if err != nil {
		if errors.Is(err, waitlist.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join waitlist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Added to waitlist successfully",
		"data":    entry,
	})
}
