// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"gorm.io/gorm"
)

// Sentinel errors returned by the order service
var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("order belongs to another user")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrInvalidTransition  = errors.New("illegal status transition")
)

// Service handles order business logic
type Service struct {
	db          *gorm.DB
	config      *config.Config
	cartService *cart.Service
	guard       CheckoutGuard
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, cartService *cart.Service, guard CheckoutGuard) *Service {
	return &Service{
		db:          db,
		config:      cfg,
		cartService: cartService,
		guard:       guard,
	}
}

// CheckoutRequest represents checkout form data. The addresses and
// payment method are caller-supplied free text.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	BillingAddress  string `json:"billing_address" binding:"required"`
	PaymentMethod   string `json:"payment_method"`
}

// StatusUpdateRequest represents an admin status transition. Either
// field may be omitted to leave it unchanged.
type StatusUpdateRequest struct {
	Status        Status        `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

// Checkout converts the user's cart into a durable order. The order
// insert, item inserts and cart deletes commit as one transaction; on
// any failure the cart is left untouched and no partial order persists.
//
// Deliberately absent, matching the documented system: inventory
// decrement, stock-out rejection, payment gateway calls, idempotency
// keys. The guard only stops two in-flight checkouts for one user.
func (s *Service) Checkout(ctx context.Context, userID uint, req *CheckoutRequest) (*Order, error) {
	acquired, err := s.guard.Acquire(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("user %d: %w", userID, ErrCheckoutInProgress)
	}
	defer func() {
		_ = s.guard.Release(ctx, userID)
	}()

	cartResponse, err := s.cartService.GetCart(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	if len(cartResponse.Items) == 0 {
		return nil, ErrEmptyCart
	}

	order := Order{
		OrderNumber:     s.generateOrderNumber(),
		UserID:          userID,
		TotalAmount:     cart.Total(cartResponse.Items),
		Status:          StatusPending,
		PaymentStatus:   PaymentStatusPending,
		ShippingAddress: req.ShippingAddress,
		BillingAddress:  req.BillingAddress,
		PaymentMethod:   req.PaymentMethod,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for _, item := range cartResponse.Items {
			orderItem := OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price, // Snapshot of the live price
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&cart.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.db.Preload("Items").Preload("Items.Product").First(&order, order.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load created order: %w", err)
	}

	return &order, nil
}

// GetOrder retrieves a single order by ID. Non-admin callers may only
// read their own orders.
func (s *Service) GetOrder(id, userID uint, isAdmin bool) (*Order, error) {
	var order Order
	result := s.db.
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Variant").
		Where("id = ?", id).
		First(&order)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", result.Error)
	}

	if !isAdmin && order.UserID != userID {
		return nil, fmt.Errorf("order %d: %w", id, ErrUnauthorized)
	}

	return &order, nil
}

// GetUserOrders retrieves a user's orders, newest first
func (s *Service) GetUserOrders(userID uint) ([]Order, error) {
	var orders []Order
	err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// AdminGetOrders retrieves all orders, newest first, optionally
// filtered by fulfillment status.
func (s *Service) AdminGetOrders(status Status) ([]Order, error) {
	query := s.db.Preload("Items").Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus applies an admin status transition. Both graphs are
// validated; an illegal or unknown move fails without writing.
func (s *Service) UpdateStatus(orderID uint, req *StatusUpdateRequest) (*Order, error) {
	var order Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", orderID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	updates := map[string]interface{}{}

	if req.Status != "" && req.Status != order.Status {
		if !req.Status.IsValid() {
			return nil, fmt.Errorf("unknown status %q: %w", req.Status, ErrInvalidTransition)
		}
		if !order.Status.CanTransitionTo(req.Status) {
			return nil, fmt.Errorf("status %s -> %s: %w", order.Status, req.Status, ErrInvalidTransition)
		}
		updates["status"] = req.Status
	}

	if req.PaymentStatus != "" && req.PaymentStatus != order.PaymentStatus {
		if !req.PaymentStatus.IsValid() {
			return nil, fmt.Errorf("unknown payment status %q: %w", req.PaymentStatus, ErrInvalidTransition)
		}
		if !order.PaymentStatus.CanTransitionTo(req.PaymentStatus) {
			return nil, fmt.Errorf("payment status %s -> %s: %w", order.PaymentStatus, req.PaymentStatus, ErrInvalidTransition)
		}
		updates["payment_status"] = req.PaymentStatus
	}

	if len(updates) > 0 {
		if err := s.db.Model(&order).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
	}

	return &order, nil
}

// generateOrderNumber builds a human-readable order number: the
// configured prefix plus 8 uppercase hex characters from a UUID.
// Uniqueness is assumed rather than re-checked against collisions.
func (s *Service) generateOrderNumber() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s-%s", s.config.Store.OrderNumberPrefix, strings.ToUpper(hex[:8]))
}
