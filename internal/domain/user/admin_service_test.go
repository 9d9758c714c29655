// internal/domain/user/admin_service_test.go
package user

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Storefront Test"},
		JWT: config.JWTConfig{
			Secret:             "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 2 * time.Hour,
		},
		Security: config.SecurityConfig{
			BcryptCost: 4, // Minimum cost keeps tests fast
		},
	}
}

func setupAdminService(t *testing.T) (*AdminService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	return NewAdminService(db, testConfig()), db
}

func TestCreateAdmin(t *testing.T) {
	svc, _ := setupAdminService(t)

	u, err := svc.CreateAdmin(&CreateAdminRequest{
		Email:     "Boss@Example.com",
		Password:  "secret123",
		FirstName: "Store",
		LastName:  "Boss",
	})
	require.NoError(t, err)

	assert.Equal(t, "boss@example.com", u.Email)
	assert.True(t, u.IsAdmin)
	assert.True(t, u.IsActive)
	assert.NotEqual(t, "secret123", u.Password)
}

func TestCreateAdminDuplicateEmail(t *testing.T) {
	svc, _ := setupAdminService(t)

	req := &CreateAdminRequest{
		Email:     "boss@example.com",
		Password:  "secret123",
		FirstName: "Store",
		LastName:  "Boss",
	}
	_, err := svc.CreateAdmin(req)
	require.NoError(t, err)

	_, err = svc.CreateAdmin(req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestPromoteToAdmin(t *testing.T) {
	svc, db := setupAdminService(t)

	u := User{Email: "member@example.com", Password: "x", FirstName: "M", LastName: "Ember", IsActive: true}
	require.NoError(t, db.Create(&u).Error)

	promoted, err := svc.PromoteToAdmin("Member@Example.com")
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin)

	var persisted User
	require.NoError(t, db.First(&persisted, u.ID).Error)
	assert.True(t, persisted.IsAdmin)
}

func TestPromoteToAdminUnknownEmailMutatesNothing(t *testing.T) {
	svc, db := setupAdminService(t)

	u := User{Email: "member@example.com", Password: "x", FirstName: "M", LastName: "Ember", IsActive: true}
	require.NoError(t, db.Create(&u).Error)

	_, err := svc.PromoteToAdmin("ghost@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	var admins int64
	require.NoError(t, db.Model(&User{}).Where("is_admin = ?", true).Count(&admins).Error)
	assert.Zero(t, admins)
}

func TestSetActive(t *testing.T) {
	svc, db := setupAdminService(t)

	u := User{Email: "member@example.com", Password: "x", FirstName: "M", LastName: "Ember", IsActive: true}
	require.NoError(t, db.Create(&u).Error)

	updated, err := svc.SetActive(u.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = svc.SetActive(999, true)
	assert.ErrorIs(t, err, ErrNotFound)
}
