// internal/domain/wishlist/service.go
package wishlist

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Sentinel errors returned by the wishlist service
var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicate    = errors.New("product already in wishlist")
	ErrUnauthorized = errors.New("wishlist item belongs to another user")
)

// Service handles wishlist business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddToWishlistRequest represents add to wishlist request
type AddToWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist retrieves a user's wishlist with product details
func (s *Service) GetWishlist(userID uint) ([]WishlistItem, error) {
	var items []WishlistItem
	err := s.db.Preload("Product").Preload("Product.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}
	return items, nil
}

// AddToWishlist adds a product to the user's wishlist. A duplicate
// (user, product) pair is rejected; the pre-check gives a friendly
// error while the unique index backstops races.
func (s *Service) AddToWishlist(userID uint, req *AddToWishlistRequest) (*WishlistItem, error) {
	var prod catalog.Product
	result := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", req.ProductID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", result.Error)
	}

	var existing WishlistItem
	err := s.db.Where("user_id = ? AND product_id = ?", userID, req.ProductID).
		First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("product %d: %w", req.ProductID, ErrDuplicate)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check wishlist: %w", err)
	}

	item := WishlistItem{
		UserID:    userID,
		ProductID: req.ProductID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		// The unique index catches concurrent duplicate adds
		return nil, fmt.Errorf("product %d: %w", req.ProductID, ErrDuplicate)
	}

	item.Product = prod
	return &item, nil
}

// RemoveFromWishlist deletes a wishlist entry owned by the caller
func (s *Service) RemoveFromWishlist(userID, itemID uint) error {
	var item WishlistItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("wishlist item %d: %w", itemID, ErrNotFound)
		}
		return fmt.Errorf("failed to load wishlist item: %w", err)
	}
	if item.UserID != userID {
		return fmt.Errorf("wishlist item %d: %w", itemID, ErrUnauthorized)
	}
	return s.db.Delete(&item).Error
}
