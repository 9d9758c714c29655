// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// CartItem represents one (product, variant, quantity) row of a user's
// cart. The merge key for adds is (user_id, product_id, variant_id);
// the combination is not enforced by the database.
type CartItem struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	VariantID *uint          `gorm:"index" json:"variant_id"`
	Quantity  int            `gorm:"not null;default:1" json:"quantity"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Product catalog.Product         `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product"`
	Variant *catalog.ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}
