// internal/domain/order/service_test.go
package order

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// memoryGuard is an in-process CheckoutGuard for tests
type memoryGuard struct {
	mu     sync.Mutex
	locked map[uint]bool
}

func newMemoryGuard() *memoryGuard {
	return &memoryGuard{locked: map[uint]bool{}}
}

func (g *memoryGuard) Acquire(ctx context.Context, userID uint) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.locked[userID] {
		return false, nil
	}
	g.locked[userID] = true
	return true, nil
}

func (g *memoryGuard) Release(ctx context.Context, userID uint) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locked, userID)
	return nil
}

func setupTestService(t *testing.T) (*Service, *gorm.DB, *memoryGuard) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductVariant{},
		&cart.CartItem{},
		&Order{},
		&OrderItem{},
	)
	require.NoError(t, err)

	cfg := &config.Config{
		Store: config.StoreConfig{
			OrderNumberPrefix: "STAT",
			CheckoutGuardTTL:  30 * time.Second,
		},
	}

	guard := newMemoryGuard()
	cartService := cart.NewService(db, cfg)
	return NewService(db, cfg, cartService, guard), db, guard
}

func seedCart(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()

	category := catalog.Category{Name: "Apparel", Slug: "apparel"}
	require.NoError(t, db.Create(&category).Error)

	productA := catalog.Product{Name: "Item A", Slug: "item-a", Price: 1000, CategoryID: category.ID, IsActive: true}
	productB := catalog.Product{Name: "Item B", Slug: "item-b", Price: 500, CategoryID: category.ID, IsActive: true}
	require.NoError(t, db.Create(&productA).Error)
	require.NoError(t, db.Create(&productB).Error)

	require.NoError(t, db.Create(&cart.CartItem{UserID: userID, ProductID: productA.ID, Quantity: 2}).Error)
	require.NoError(t, db.Create(&cart.CartItem{UserID: userID, ProductID: productB.ID, Quantity: 1}).Error)
}

func TestCheckoutCreatesOrderAndClearsCart(t *testing.T) {
	svc, db, _ := setupTestService(t)
	seedCart(t, db, 1)

	o, err := svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
		PaymentMethod:   "card",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), o.TotalAmount)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentStatusPending, o.PaymentStatus)
	require.Len(t, o.Items, 2)

	// Item prices are snapshots and sum to the order total
	var itemsTotal int64
	for _, item := range o.Items {
		itemsTotal += item.Price * int64(item.Quantity)
	}
	assert.Equal(t, o.TotalAmount, itemsTotal)

	var remaining int64
	require.NoError(t, db.Model(&cart.CartItem{}).Where("user_id = ?", 1).Count(&remaining).Error)
	assert.Zero(t, remaining)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, db, _ := setupTestService(t)

	_, err := svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	assert.ErrorIs(t, err, ErrEmptyCart)

	var count int64
	require.NoError(t, db.Model(&Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutGuardRefusesConcurrentAttempt(t *testing.T) {
	svc, db, guard := setupTestService(t)
	seedCart(t, db, 1)

	acquired, err := guard.Acquire(context.Background(), 1)
	require.NoError(t, err)
	require.True(t, acquired)

	_, err = svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	// After release the same user can check out
	require.NoError(t, guard.Release(context.Background(), 1))
	_, err = svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	assert.NoError(t, err)
}

func TestOrderNumberFormat(t *testing.T) {
	svc, db, _ := setupTestService(t)
	seedCart(t, db, 1)

	o, err := svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^STAT-[0-9A-F]{8}$`), o.OrderNumber)
}

func TestGetOrderOwnership(t *testing.T) {
	svc, db, _ := setupTestService(t)
	seedCart(t, db, 1)

	o, err := svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	require.NoError(t, err)

	_, err = svc.GetOrder(o.ID, 2, false)
	assert.ErrorIs(t, err, ErrUnauthorized)

	got, err := svc.GetOrder(o.ID, 2, true)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.ID)
}

func TestUpdateStatusTransitions(t *testing.T) {
	svc, db, _ := setupTestService(t)
	seedCart(t, db, 1)

	o, err := svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	require.NoError(t, err)

	// Pending cannot jump straight to delivered
	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{Status: StatusDelivered})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{Status: StatusProcessing})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{Status: StatusShipped})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{Status: StatusDelivered})
	require.NoError(t, err)

	// Delivered is terminal
	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{Status: StatusCancelled})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var persisted Order
	require.NoError(t, db.First(&persisted, o.ID).Error)
	assert.Equal(t, StatusDelivered, persisted.Status)
}

func TestUpdatePaymentStatusTransitions(t *testing.T) {
	svc, db, _ := setupTestService(t)
	seedCart(t, db, 1)

	o, err := svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	require.NoError(t, err)

	// Pending cannot go straight to refunded
	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{PaymentStatus: PaymentStatusRefunded})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{PaymentStatus: PaymentStatusFailed})
	require.NoError(t, err)

	// Failed payments may be retried
	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{PaymentStatus: PaymentStatusPending})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{PaymentStatus: PaymentStatusPaid})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{PaymentStatus: PaymentStatusRefunded})
	require.NoError(t, err)

	var persisted Order
	require.NoError(t, db.First(&persisted, o.ID).Error)
	assert.Equal(t, PaymentStatusRefunded, persisted.PaymentStatus)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	svc, db, _ := setupTestService(t)
	seedCart(t, db, 1)

	o, err := svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(o.ID, &StatusUpdateRequest{Status: Status("teleported")})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestOrderTotalFrozenAfterPriceChange(t *testing.T) {
	svc, db, _ := setupTestService(t)
	seedCart(t, db, 1)

	o, err := svc.Checkout(context.Background(), 1, &CheckoutRequest{
		ShippingAddress: "1 Main St",
		BillingAddress:  "1 Main St",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&catalog.Product{}).Where("slug = ?", "item-a").Update("price", 9999).Error)

	got, err := svc.GetOrder(o.ID, 1, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), got.TotalAmount)
	for _, item := range got.Items {
		if item.Product.Slug == "item-a" {
			assert.Equal(t, int64(1000), item.Price)
		}
	}
}
