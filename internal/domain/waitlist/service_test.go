// internal/domain/waitlist/service_test.go
package waitlist

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

func setupTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Entry{}))

	return NewService(db, &config.Config{})
}

func TestJoinNormalizesEmail(t *testing.T) {
	svc := setupTestService(t)

	entry, err := svc.Join(&JoinRequest{
		Name:          "  Ada Lovelace ",
		Email:         " Ada@Example.COM ",
		PreferredSize: "M",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", entry.Name)
	assert.Equal(t, "ada@example.com", entry.Email)
	assert.False(t, entry.AccessGranted)
}

func TestJoinRequiresNameAndEmail(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.Join(&JoinRequest{Name: "   ", Email: "someone@example.com"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGrantAccess(t *testing.T) {
	svc := setupTestService(t)

	entry, err := svc.Join(&JoinRequest{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)

	granted, err := svc.GrantAccess(entry.ID)
	require.NoError(t, err)
	assert.True(t, granted.AccessGranted)

	// Granting twice is a no-op
	granted, err = svc.GrantAccess(entry.ID)
	require.NoError(t, err)
	assert.True(t, granted.AccessGranted)
}

func TestGrantAccessUnknownEntry(t *testing.T) {
	svc := setupTestService(t)

	_, err := svc.GrantAccess(42)
	assert.ErrorIs(t, err, ErrNotFound)
}
