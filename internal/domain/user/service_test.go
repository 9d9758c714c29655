// internal/domain/user/service_test.go
package user

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&User{}))

	return NewService(db, testConfig()), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:     "Ada@Example.com",
		Password:  "hunter27",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", resp.User.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.False(t, resp.User.IsAdmin)

	login, err := svc.Login(&LoginRequest{Email: "ada@example.com", Password: "hunter27"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)

	req := &RegisterRequest{
		Email:     "ada@example.com",
		Password:  "hunter27",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.Register(&RegisterRequest{
		Email:     "ada@example.com",
		Password:  "hunter27",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "ada@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "hunter27"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, db := setupService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:     "ada@example.com",
		Password:  "hunter27",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&User{}).Where("id = ?", resp.User.ID).Update("is_active", false).Error)

	_, err = svc.Login(&LoginRequest{Email: "ada@example.com", Password: "hunter27"})
	assert.ErrorIs(t, err, ErrInactive)
}

func TestRefreshToken(t *testing.T) {
	svc, _ := setupService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:     "ada@example.com",
		Password:  "hunter27",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(&RefreshTokenRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token is not accepted as a refresh token
	_, err = svc.RefreshToken(&RefreshTokenRequest{RefreshToken: resp.AccessToken})
	assert.Error(t, err)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := setupService(t)

	resp, err := svc.Register(&RegisterRequest{
		Email:     "ada@example.com",
		Password:  "hunter27",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	require.NoError(t, err)

	newName := "Augusta"
	updated, err := svc.UpdateProfile(resp.User.ID, &UpdateProfileRequest{FirstName: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Augusta", updated.FirstName)
	assert.Equal(t, "Lovelace", updated.LastName)
	assert.Equal(t, "Augusta Lovelace", updated.GetFullName())
}
