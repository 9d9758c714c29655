// internal/domain/cart/service.go
package cart

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Sentinel errors returned by the cart service
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("cart item belongs to another user")
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest represents update cart item request. A quantity
// of zero or below deletes the row.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartResponse represents a user's cart with its computed total
type CartResponse struct {
	Items []CartItem `json:"items"`
	Total int64      `json:"total"` // In cents
}

// GetCart retrieves the user's cart rows and total. The total uses the
// live product price; variant price adjustments are not applied.
func (s *Service) GetCart(userID uint) (*CartResponse, error) {
	var items []CartItem
	err := s.db.Preload("Product").Preload("Variant").
		Where("user_id = ?", userID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	return &CartResponse{
		Items: items,
		Total: Total(items),
	}, nil
}

// AddToCart adds an item to the user's cart. An existing row for the
// same (product, variant) combination has its quantity incremented.
func (s *Service) AddToCart(userID uint, req *AddToCartRequest) (*CartResponse, error) {
	var prod catalog.Product
	result := s.db.Where("id = ? AND is_active = ?", req.ProductID, true).First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", req.ProductID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load product: %w", result.Error)
	}

	if req.VariantID != nil {
		var variant catalog.ProductVariant
		result := s.db.Where("id = ? AND product_id = ?", *req.VariantID, req.ProductID).First(&variant)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("product variant %d: %w", *req.VariantID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to load variant: %w", result.Error)
		}
	}

	var existing CartItem
	err := s.itemQuery(userID, req.ProductID, req.VariantID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		item := CartItem{
			UserID:    userID,
			ProductID: req.ProductID,
			VariantID: req.VariantID,
			Quantity:  req.Quantity,
		}
		if err := s.db.Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to check cart: %w", err)
	default:
		existing.Quantity += req.Quantity
		if err := s.db.Save(&existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	}

	return s.GetCart(userID)
}

// UpdateCartItem overwrites a cart row's quantity. Quantity zero or
// below deletes the row. The row must belong to the calling user.
func (s *Service) UpdateCartItem(userID, cartItemID uint, req *UpdateCartItemRequest) (*CartResponse, error) {
	item, err := s.ownedItem(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		if err := s.db.Delete(item).Error; err != nil {
			return nil, fmt.Errorf("failed to delete cart item: %w", err)
		}
	} else {
		item.Quantity = req.Quantity
		if err := s.db.Save(item).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	}

	return s.GetCart(userID)
}

// RemoveFromCart deletes a cart row owned by the calling user
func (s *Service) RemoveFromCart(userID, cartItemID uint) (*CartResponse, error) {
	item, err := s.ownedItem(userID, cartItemID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return nil, fmt.Errorf("failed to delete cart item: %w", err)
	}

	return s.GetCart(userID)
}

// ClearCart removes all cart rows for a user
func (s *Service) ClearCart(userID uint) error {
	return s.db.Where("user_id = ?", userID).Delete(&CartItem{}).Error
}

// Total sums live product price times quantity over cart rows.
// Variant price adjustments are deliberately excluded from totals;
// the variant only identifies the selection.
func Total(items []CartItem) int64 {
	var total int64
	for _, item := range items {
		total += item.Product.Price * int64(item.Quantity)
	}
	return total
}

func (s *Service) ownedItem(userID, cartItemID uint) (*CartItem, error) {
	var item CartItem
	if err := s.db.First(&item, cartItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("cart item %d: %w", cartItemID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load cart item: %w", err)
	}
	if item.UserID != userID {
		return nil, fmt.Errorf("cart item %d: %w", cartItemID, ErrUnauthorized)
	}
	return &item, nil
}

func (s *Service) itemQuery(userID, productID uint, variantID *uint) *gorm.DB {
	query := s.db.Where("user_id = ? AND product_id = ?", userID, productID)
	if variantID == nil {
		return query.Where("variant_id IS NULL")
	}
	return query.Where("variant_id = ?", *variantID)
}
