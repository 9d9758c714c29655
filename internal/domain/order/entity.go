// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus represents the payment status of an order
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// Order is an immutable snapshot of a completed checkout. Only the two
// status fields change after creation; totals and items are frozen.
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	OrderNumber     string         `gorm:"uniqueIndex;not null;size:50" json:"order_number"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	TotalAmount     int64          `gorm:"not null" json:"total_amount"` // In cents, frozen at checkout
	Status          Status         `gorm:"not null;default:'pending';size:50" json:"status"`
	PaymentStatus   PaymentStatus  `gorm:"not null;default:'pending';size:50" json:"payment_status"`
	ShippingAddress string         `gorm:"type:text;not null" json:"shipping_address"`
	BillingAddress  string         `gorm:"type:text;not null" json:"billing_address"`
	PaymentMethod   string         `gorm:"size:50" json:"payment_method"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is one line of an order. Price is a point-in-time copy of
// the product price, decoupled from later price changes.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	VariantID *uint     `gorm:"index" json:"variant_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     int64     `gorm:"not null" json:"price"` // Unit price in cents at purchase time
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Product catalog.Product         `gorm:"foreignKey:ProductID" json:"product"`
	Variant *catalog.ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }

// GetFormattedTotal returns the total amount in major units
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalAmount) / 100
}

// GetFormattedPrice returns the unit price in major units
func (i *OrderItem) GetFormattedPrice() float64 {
	return float64(i.Price) / 100
}

// GetFormattedLineTotal returns quantity times unit price in major units
func (i *OrderItem) GetFormattedLineTotal() float64 {
	return float64(i.Price*int64(i.Quantity)) / 100
}

// statusTransitions is the directed graph of legal fulfillment moves.
// Delivered and cancelled are terminal.
var statusTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
}

// paymentTransitions is the directed graph of legal payment moves.
// Refunded is terminal; failed payments may be retried back to pending.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending: {PaymentStatusPaid, PaymentStatusFailed},
	PaymentStatusFailed:  {PaymentStatusPending},
	PaymentStatusPaid:    {PaymentStatusRefunded},
}

// CanTransitionTo reports whether the fulfillment status may move to next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether the payment status may move to next
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsValid reports whether the value is a known fulfillment status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsValid reports whether the value is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}
