// internal/domain/catalog/entity.go
package catalog

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// Category represents a product category. Categories form a tree through
// ParentID; the service rejects parent chains that would create a cycle.
type Category struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null;size:100" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null;size:100" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"size:500" json:"image_url"`
	ParentID    *uint          `gorm:"index" json:"parent_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Products []Product  `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"products,omitempty"`
}

// Product represents the product entity
type Product struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null;size:200" json:"name"`
	Slug           string         `gorm:"uniqueIndex;not null;size:200" json:"slug"`
	Description    string         `gorm:"type:text" json:"description"`
	Price          int64          `gorm:"not null" json:"price"` // Price in cents
	CompareAtPrice *int64         `json:"compare_at_price"`      // Original price for sale items
	SKU            *string        `gorm:"uniqueIndex;size:100" json:"sku"` // NULL when absent so blank SKUs never collide
	Inventory      int            `gorm:"default:0" json:"inventory"` // Informational only, never decremented by checkout
	ImageURL       string         `gorm:"size:500" json:"image_url"`
	Images         string         `gorm:"type:text" json:"images"` // JSON-encoded list of typed image URLs
	CategoryID     uint           `gorm:"not null;index" json:"category_id"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	IsFeatured     bool           `gorm:"default:false" json:"is_featured"`

	// Free-text detail fields
	ShippingDetails string `gorm:"type:text" json:"shipping_details"`
	SizeChart       string `gorm:"type:text" json:"size_chart"`
	Colorway        string `gorm:"size:200" json:"colorway"`
	ModelDetails    string `gorm:"type:text" json:"model_details"`
	FabricType      string `gorm:"size:200" json:"fabric_type"`
	ProductDetails  string `gorm:"type:text" json:"product_details"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category         `gorm:"foreignKey:CategoryID" json:"category"`
	Variants []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"variants,omitempty"`
}

// ProductVariant represents a product sub-selection such as size or color.
// PriceAdjustment is stored but not folded into cart or order totals.
type ProductVariant struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ProductID       uint           `gorm:"not null;index" json:"product_id"`
	Name            string         `gorm:"not null;size:100" json:"name"`  // e.g. "Size"
	Value           string         `gorm:"not null;size:100" json:"value"` // e.g. "M"
	PriceAdjustment int64          `gorm:"default:0" json:"price_adjustment"`
	Inventory       int            `gorm:"default:0" json:"inventory"`
	SKU             string         `gorm:"size:100" json:"sku"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Category) TableName() string       { return "categories" }
func (Product) TableName() string        { return "products" }
func (ProductVariant) TableName() string { return "product_variants" }

// ProductImage is one entry of the serialized image list on Product
type ProductImage struct {
	Type string `json:"type"` // on_body, on_ground, photoshoot, additional
	URL  string `json:"url"`
}

// ImageList decodes the serialized image list. An empty or malformed
// column yields an empty list, matching how the original data behaves.
func (p *Product) ImageList() []ProductImage {
	if p.Images == "" {
		return nil
	}
	var images []ProductImage
	if err := json.Unmarshal([]byte(p.Images), &images); err != nil {
		return nil
	}
	return images
}

// SetImageList encodes the image list into the serialized column
func (p *Product) SetImageList(images []ProductImage) error {
	if len(images) == 0 {
		p.Images = ""
		return nil
	}
	data, err := json.Marshal(images)
	if err != nil {
		return err
	}
	p.Images = string(data)
	return nil
}

// GetFormattedPrice returns the price as a float in major units
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.Price) / 100
}

// GetDiscountPercentage returns the discount against the compare-at price
func (p *Product) GetDiscountPercentage() int {
	if p.CompareAtPrice != nil && *p.CompareAtPrice > 0 && p.Price < *p.CompareAtPrice {
		return int(((*p.CompareAtPrice - p.Price) * 100) / *p.CompareAtPrice)
	}
	return 0
}
