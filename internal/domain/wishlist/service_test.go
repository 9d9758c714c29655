// internal/domain/wishlist/service_test.go
package wishlist

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*Service, *gorm.DB, *catalog.Product) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&catalog.Category{},
		&catalog.Product{},
		&WishlistItem{},
	)
	require.NoError(t, err)

	category := catalog.Category{Name: "Apparel", Slug: "apparel"}
	require.NoError(t, db.Create(&category).Error)

	product := catalog.Product{Name: "Hoodie", Slug: "hoodie", Price: 4500, CategoryID: category.ID, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	return NewService(db, &config.Config{}), db, &product
}

func TestAddToWishlist(t *testing.T) {
	svc, _, product := setupTestService(t)

	item, err := svc.AddToWishlist(1, &AddToWishlistRequest{ProductID: product.ID})
	require.NoError(t, err)
	assert.Equal(t, product.ID, item.ProductID)

	items, err := svc.GetWishlist(1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddToWishlistRejectsDuplicate(t *testing.T) {
	svc, _, product := setupTestService(t)

	_, err := svc.AddToWishlist(1, &AddToWishlistRequest{ProductID: product.ID})
	require.NoError(t, err)

	_, err = svc.AddToWishlist(1, &AddToWishlistRequest{ProductID: product.ID})
	assert.ErrorIs(t, err, ErrDuplicate)

	// A different user may wishlist the same product
	_, err = svc.AddToWishlist(2, &AddToWishlistRequest{ProductID: product.ID})
	assert.NoError(t, err)
}

func TestAddToWishlistUnknownProduct(t *testing.T) {
	svc, _, _ := setupTestService(t)

	_, err := svc.AddToWishlist(1, &AddToWishlistRequest{ProductID: 999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRemoveFromWishlistOwnership(t *testing.T) {
	svc, _, product := setupTestService(t)

	item, err := svc.AddToWishlist(1, &AddToWishlistRequest{ProductID: product.ID})
	require.NoError(t, err)

	err = svc.RemoveFromWishlist(2, item.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, svc.RemoveFromWishlist(1, item.ID))

	items, err := svc.GetWishlist(1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveAllowsReAdding(t *testing.T) {
	svc, _, product := setupTestService(t)

	item, err := svc.AddToWishlist(1, &AddToWishlistRequest{ProductID: product.ID})
	require.NoError(t, err)
	require.NoError(t, svc.RemoveFromWishlist(1, item.ID))

	_, err = svc.AddToWishlist(1, &AddToWishlistRequest{ProductID: product.ID})
	assert.NoError(t, err)
}
