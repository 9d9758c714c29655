// internal/domain/catalog/service_test.go
package catalog

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&Category{}, &Product{}, &ProductVariant{})
	require.NoError(t, err)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Store: config.StoreConfig{
			FeaturedLimit: 8,
			RelatedLimit:  4,
		},
	}
}

func seedCatalog(t *testing.T, db *gorm.DB) (Category, []Product) {
	t.Helper()

	category := Category{Name: "Apparel", Slug: "apparel"}
	require.NoError(t, db.Create(&category).Error)

	products := []Product{
		{Name: "Alpha Hoodie", Slug: "alpha-hoodie", Price: 4500, CategoryID: category.ID, IsActive: true, IsFeatured: true},
		{Name: "Beta Tee", Slug: "beta-tee", Price: 1500, CategoryID: category.ID, IsActive: true},
		{Name: "Gamma Cap", Slug: "gamma-cap", Price: 2500, CategoryID: category.ID, IsActive: false},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
	return category, products
}

func TestGetProductsExcludesInactive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	seedCatalog(t, db)

	products, err := svc.GetProducts(&ProductListRequest{})
	require.NoError(t, err)

	require.Len(t, products, 2)
	for _, p := range products {
		assert.True(t, p.IsActive)
	}
}

func TestGetProductsSearchAndSort(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	seedCatalog(t, db)

	products, err := svc.GetProducts(&ProductListRequest{Search: "HOODIE"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "alpha-hoodie", products[0].Slug)

	products, err = svc.GetProducts(&ProductListRequest{Sort: SortPriceLow})
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "beta-tee", products[0].Slug)

	products, err = svc.GetProducts(&ProductListRequest{Sort: SortPriceHigh})
	require.NoError(t, err)
	assert.Equal(t, "alpha-hoodie", products[0].Slug)
}

func TestGetProductBySlug(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	seedCatalog(t, db)

	resp, err := svc.GetProductBySlug("alpha-hoodie")
	require.NoError(t, err)
	assert.Equal(t, "Alpha Hoodie", resp.Product.Name)

	// Related products come from the same category, excluding self and
	// inactive entries
	require.Len(t, resp.Related, 1)
	assert.Equal(t, "beta-tee", resp.Related[0].Slug)
}

func TestGetProductBySlugNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	seedCatalog(t, db)

	_, err := svc.GetProductBySlug("no-such-product")
	assert.ErrorIs(t, err, ErrNotFound)

	// Inactive products are invisible on the public surface
	_, err = svc.GetProductBySlug("gamma-cap")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateProductGeneratesSlugAndChecksConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	category, _ := seedCatalog(t, db)

	product, err := svc.CreateProduct(&ProductCreateRequest{
		Name:       "Delta / Omega Jacket",
		Price:      8000,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "delta---omega-jacket", product.Slug)

	_, err = svc.CreateProduct(&ProductCreateRequest{
		Name:       "Other Name",
		Slug:       "alpha-hoodie",
		Price:      100,
		CategoryID: category.ID,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateProductsWithoutSKU(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	category, _ := seedCatalog(t, db)

	first, err := svc.CreateProduct(&ProductCreateRequest{
		Name:       "Plain One",
		Price:      1000,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, first.SKU)

	// A second SKU-less product must not collide under the unique index
	second, err := svc.CreateProduct(&ProductCreateRequest{
		Name:       "Plain Two",
		Price:      500,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Nil(t, second.SKU)
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	category, _ := seedCatalog(t, db)

	_, err := svc.CreateProduct(&ProductCreateRequest{
		Name:       "First",
		Price:      1000,
		CategoryID: category.ID,
		SKU:        "SKU-0001",
	})
	require.NoError(t, err)

	_, err = svc.CreateProduct(&ProductCreateRequest{
		Name:       "Second",
		Price:      500,
		CategoryID: category.ID,
		SKU:        "SKU-0001",
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestUpdateProductClearsSKU(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	category, _ := seedCatalog(t, db)

	product, err := svc.CreateProduct(&ProductCreateRequest{
		Name:       "Tagged",
		Price:      1000,
		CategoryID: category.ID,
		SKU:        "SKU-0001",
	})
	require.NoError(t, err)
	require.NotNil(t, product.SKU)

	blank := ""
	updated, err := svc.UpdateProduct(product.ID, &ProductUpdateRequest{SKU: &blank})
	require.NoError(t, err)
	assert.Nil(t, updated.SKU)
}

func TestUpdateProductPatchesFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())
	_, products := seedCatalog(t, db)

	newPrice := int64(9900)
	updated, err := svc.UpdateProduct(products[0].ID, &ProductUpdateRequest{Price: &newPrice})
	require.NoError(t, err)

	assert.Equal(t, int64(9900), updated.Price)
	assert.Equal(t, "Alpha Hoodie", updated.Name)
}

func TestDeleteProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, testConfig())

	err := svc.DeleteProduct(12345)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetHomeLimitsFeatured(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cfg.Store.FeaturedLimit = 1
	svc := NewService(db, cfg)

	category := Category{Name: "Apparel", Slug: "apparel"}
	require.NoError(t, db.Create(&category).Error)
	for _, p := range []Product{
		{Name: "One", Slug: "one", Price: 100, CategoryID: category.ID, IsActive: true, IsFeatured: true},
		{Name: "Two", Slug: "two", Price: 200, CategoryID: category.ID, IsActive: true, IsFeatured: true},
	} {
		require.NoError(t, db.Create(&p).Error)
	}

	resp, err := svc.GetHome()
	require.NoError(t, err)
	assert.Len(t, resp.FeaturedProducts, 1)
	assert.Len(t, resp.Categories, 1)
}

func TestCategoryCycleRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db, testConfig())

	root, err := svc.CreateCategory(&CategoryCreateRequest{Name: "Root"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(&CategoryCreateRequest{Name: "Child", ParentID: &root.ID})
	require.NoError(t, err)
	grandchild, err := svc.CreateCategory(&CategoryCreateRequest{Name: "Grandchild", ParentID: &child.ID})
	require.NoError(t, err)

	// Root cannot be reparented under its own descendant
	_, err = svc.UpdateCategory(root.ID, &CategoryUpdateRequest{ParentID: &grandchild.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)

	// Self-parenting is rejected
	_, err = svc.UpdateCategory(child.ID, &CategoryUpdateRequest{ParentID: &child.ID})
	assert.ErrorIs(t, err, ErrCategoryCycle)

	// The tree is unchanged
	got, err := svc.GetCategory(root.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestCategoryUniqueness(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db, testConfig())

	_, err := svc.CreateCategory(&CategoryCreateRequest{Name: "Apparel"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(&CategoryCreateRequest{Name: "Apparel"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestDeleteCategoryCascadesProductsAndDetachesChildren(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCategoryService(db, testConfig())

	parent, err := svc.CreateCategory(&CategoryCreateRequest{Name: "Parent"})
	require.NoError(t, err)
	child, err := svc.CreateCategory(&CategoryCreateRequest{Name: "Child", ParentID: &parent.ID})
	require.NoError(t, err)

	product := Product{Name: "Hoodie", Slug: "hoodie", Price: 100, CategoryID: parent.ID, IsActive: true}
	require.NoError(t, db.Create(&product).Error)

	require.NoError(t, svc.DeleteCategory(parent.ID))

	_, err = svc.GetCategory(parent.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var productCount int64
	require.NoError(t, db.Model(&Product{}).Where("category_id = ?", parent.ID).Count(&productCount).Error)
	assert.Zero(t, productCount)

	got, err := svc.GetCategory(child.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "alpha-hoodie", Slugify("Alpha Hoodie"))
	assert.Equal(t, "a-b", Slugify("A/B"))
	assert.Equal(t, "trimmed", Slugify("  Trimmed  "))
}

func TestProductImageListRoundTrip(t *testing.T) {
	var p Product
	require.NoError(t, p.SetImageList([]ProductImage{
		{Type: "on_body", URL: "https://cdn.example.com/1.jpg"},
	}))

	images := p.ImageList()
	require.Len(t, images, 1)
	assert.Equal(t, "on_body", images[0].Type)

	p.Images = "{not json"
	assert.Nil(t, p.ImageList())
}

func TestGetDiscountPercentage(t *testing.T) {
	compare := int64(2000)
	p := Product{Price: 1500, CompareAtPrice: &compare}
	assert.Equal(t, 25, p.GetDiscountPercentage())

	p.CompareAtPrice = nil
	assert.Equal(t, 0, p.GetDiscountPercentage())
}
