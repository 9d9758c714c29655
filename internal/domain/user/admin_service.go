// internal/domain/user/admin_service.go
package user

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// AdminService handles administrative user management
type AdminService struct {
	db              *gorm.DB
	config          *config.Config
	passwordManager *auth.PasswordManager
}

// NewAdminService creates a new admin user service
func NewAdminService(db *gorm.DB, cfg *config.Config) *AdminService {
	return &AdminService{
		db:              db,
		config:          cfg,
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// ListUsers retrieves all users, newest first
func (s *AdminService) ListUsers() ([]User, error) {
	var users []User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// CreateAdminRequest represents admin account creation
type CreateAdminRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=7"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// CreateAdmin creates a new administrator account
func (s *AdminService) CreateAdmin(req *CreateAdminRequest) (*User, error) {
	email := normalizeEmail(req.Email)

	var existing User
	err := s.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, fmt.Errorf("email %s: %w", email, ErrEmailTaken)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := User{
		Email:     email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
		IsAdmin:   true,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &u, nil
}

// PromoteToAdmin grants admin rights to an existing account. An unknown
// email returns ErrNotFound and mutates nothing.
func (s *AdminService) PromoteToAdmin(email string) (*User, error) {
	var u User
	err := s.db.Where("email = ?", normalizeEmail(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !u.IsAdmin {
		u.IsAdmin = true
		if err := s.db.Save(&u).Error; err != nil {
			return nil, fmt.Errorf("failed to promote user: %w", err)
		}
	}
	return &u, nil
}

// SetActive toggles an account's active flag
func (s *AdminService) SetActive(userID uint, active bool) (*User, error) {
	var u User
	if err := s.db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	u.IsActive = active
	if err := s.db.Save(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &u, nil
}
