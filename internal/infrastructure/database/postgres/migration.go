// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/domain/waitlist"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	config *config.Config
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, cfg *config.Config) *Migration {
	return &Migration{
		db:     db,
		config: cfg,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Dependency order: parents before children
	models := []interface{}{
		&user.User{},

		&catalog.Category{},
		&catalog.Product{},
		&catalog.ProductVariant{},

		&cart.CartItem{},

		&order.Order{},
		&order.OrderItem{},

		&wishlist.WishlistItem{},
		&waitlist.Entry{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_users_created_at ON users(created_at DESC)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_featured ON products(is_featured, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_parent ON categories(parent_id)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user_product ON cart_items(user_id, product_id)",
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user_variant ON cart_items(user_id, variant_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Waitlist indexes
		"CREATE INDEX IF NOT EXISTS idx_waitlist_entries_granted ON waitlist_entries(access_granted)",
	}

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
		}
	}

	log.Println("✅ Database indexes created")
	return nil
}

// EnsureColumns adds columns introduced after the initial schema to
// databases migrated from older versions. Safe to run repeatedly.
func (m *Migration) EnsureColumns() error {
	log.Println("🔄 Ensuring schema columns are present...")

	columns := []struct {
		table  string
		column string
		ddl    string
	}{
		{"products", "shipping_details", "ALTER TABLE products ADD COLUMN IF NOT EXISTS shipping_details TEXT"},
		{"products", "size_chart", "ALTER TABLE products ADD COLUMN IF NOT EXISTS size_chart TEXT"},
		{"products", "colorway", "ALTER TABLE products ADD COLUMN IF NOT EXISTS colorway VARCHAR(150)"},
		{"products", "model_details", "ALTER TABLE products ADD COLUMN IF NOT EXISTS model_details TEXT"},
		{"products", "fabric_type", "ALTER TABLE products ADD COLUMN IF NOT EXISTS fabric_type VARCHAR(150)"},
		{"products", "product_details", "ALTER TABLE products ADD COLUMN IF NOT EXISTS product_details TEXT"},
		{"waitlist_entries", "access_granted", "ALTER TABLE waitlist_entries ADD COLUMN IF NOT EXISTS access_granted BOOLEAN DEFAULT FALSE"},
	}

	for _, c := range columns {
		if err := m.db.Exec(c.ddl).Error; err != nil {
			log.Printf("⚠️ Failed to ensure column %s.%s: %v", c.table, c.column, err)
		}
	}

	log.Println("✅ Schema columns ensured")
	return nil
}

// SeedDefaultAdmin creates the configured admin account if no account
// with that email exists yet
func (m *Migration) SeedDefaultAdmin() error {
	email := m.config.Store.AdminEmail

	var existing user.User
	err := m.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		log.Printf("⏭️ Admin user already exists: %s", email)
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("failed to check admin user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword(
		[]byte(m.config.Store.AdminPassword),
		m.config.Security.BcryptCost,
	)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := user.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: m.config.Store.AdminFirstName,
		LastName:  m.config.Store.AdminLastName,
		IsActive:  true,
		IsAdmin:   true,
	}
	if err := m.db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Printf("✅ Created default admin user: %s", email)
	return nil
}
