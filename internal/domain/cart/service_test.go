// internal/domain/cart/service_test.go
package cart

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductVariant{},
		&CartItem{},
	)
	require.NoError(t, err)

	cfg := &config.Config{}
	return NewService(db, cfg), db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64) *catalog.Product {
	t.Helper()

	var category catalog.Category
	err := db.Where("slug = ?", "apparel").First(&category).Error
	if err != nil {
		category = catalog.Category{Name: "Apparel", Slug: "apparel"}
		require.NoError(t, db.Create(&category).Error)
	}

	product := catalog.Product{
		Name:       name,
		Slug:       catalog.Slugify(name),
		Price:      price,
		CategoryID: category.ID,
		IsActive:   true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func TestAddToCartMergesSameProductAndVariant(t *testing.T) {
	svc, db := setupTestService(t)
	product := seedProduct(t, db, "Hoodie", 1000)

	_, err := svc.AddToCart(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	resp, err := svc.AddToCart(1, &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.Equal(t, 5, resp.Items[0].Quantity)
}

func TestAddToCartKeepsVariantsSeparate(t *testing.T) {
	svc, db := setupTestService(t)
	product := seedProduct(t, db, "Tee", 500)

	variant := catalog.ProductVariant{ProductID: product.ID, Name: "Size", Value: "M"}
	require.NoError(t, db.Create(&variant).Error)

	_, err := svc.AddToCart(1, &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	resp, err := svc.AddToCart(1, &AddToCartRequest{ProductID: product.ID, VariantID: &variant.ID, Quantity: 1})
	require.NoError(t, err)

	assert.Len(t, resp.Items, 2)
}

func TestAddToCartRejectsInactiveProduct(t *testing.T) {
	svc, db := setupTestService(t)
	product := seedProduct(t, db, "Retired", 900)
	require.NoError(t, db.Model(product).Update("is_active", false).Error)

	_, err := svc.AddToCart(1, &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCartItemZeroQuantityDeletesRow(t *testing.T) {
	svc, db := setupTestService(t)
	product := seedProduct(t, db, "Cap", 700)

	resp, err := svc.AddToCart(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	resp, err = svc.UpdateCartItem(1, itemID, &UpdateCartItemRequest{Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
}

func TestUpdateCartItemOwnership(t *testing.T) {
	svc, db := setupTestService(t)
	product := seedProduct(t, db, "Jacket", 4500)

	resp, err := svc.AddToCart(1, &AddToCartRequest{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)
	itemID := resp.Items[0].ID

	_, err = svc.UpdateCartItem(2, itemID, &UpdateCartItemRequest{Quantity: 5})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.RemoveFromCart(2, itemID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTotalUsesLiveProductPriceOnly(t *testing.T) {
	svc, db := setupTestService(t)
	productA := seedProduct(t, db, "Item A", 1000)
	productB := seedProduct(t, db, "Item B", 500)

	// Variant carries an adjustment that must not affect the total
	variant := catalog.ProductVariant{ProductID: productA.ID, Name: "Size", Value: "L", PriceAdjustment: 250}
	require.NoError(t, db.Create(&variant).Error)

	_, err := svc.AddToCart(1, &AddToCartRequest{ProductID: productA.ID, VariantID: &variant.ID, Quantity: 2})
	require.NoError(t, err)
	resp, err := svc.AddToCart(1, &AddToCartRequest{ProductID: productB.ID, Quantity: 1})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), resp.Total)
}

func TestTotalReflectsPriceChanges(t *testing.T) {
	svc, db := setupTestService(t)
	product := seedProduct(t, db, "Sneaker", 1000)

	_, err := svc.AddToCart(1, &AddToCartRequest{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	require.NoError(t, db.Model(product).Update("price", 1500).Error)

	resp, err := svc.GetCart(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), resp.Total)
}

func TestClearCart(t *testing.T) {
	svc, db := setupTestService(t)
	product := seedProduct(t, db, "Socks", 300)

	_, err := svc.AddToCart(1, &AddToCartRequest{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCart(1))

	resp, err := svc.GetCart(1)
	require.NoError(t, err)
	assert.Empty(t, resp.Items)
	assert.Equal(t, int64(0), resp.Total)
}
