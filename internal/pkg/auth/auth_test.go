// internal/pkg/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Storefront Test"},
		JWT: config.JWTConfig{
			Secret:             "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 2 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateAccessToken(42, "ada@example.com", true)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
}

func TestTokenTypeEnforced(t *testing.T) {
	m := NewJWTManager(testConfig())

	refresh, err := m.GenerateRefreshToken(42, "ada@example.com")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateAccessToken(1, "ada@example.com", false)
	require.NoError(t, err)

	_, err = m.ValidateToken(token + "x")
	assert.Error(t, err)

	other := NewJWTManager(&config.Config{
		JWT: config.JWTConfig{Secret: "another-secret-another-secret-32"},
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc123", ExtractTokenFromHeader("Bearer abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader("abc123"))
	assert.Equal(t, "", ExtractTokenFromHeader(""))
}

func TestPasswordHashAndVerify(t *testing.T) {
	p := NewPasswordManager(testConfig())

	hash, err := p.HashPassword("hunter27")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter27", hash)

	assert.NoError(t, p.VerifyPassword("hunter27", hash))
	assert.Error(t, p.VerifyPassword("wrong", hash))
}

func TestPasswordLengthValidation(t *testing.T) {
	p := NewPasswordManager(testConfig())

	_, err := p.HashPassword("short")
	assert.Error(t, err)

	assert.NoError(t, p.ValidatePassword("exactly7"))
}
