// internal/domain/user/service.go
package user

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Sentinel errors returned by the user service
var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactive           = errors.New("account is deactivated")
)

// Service handles user business logic
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents user registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=7"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// LoginRequest represents user login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register creates a new user account
func (s *Service) Register(req *RegisterRequest) (*AuthResponse, error) {
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
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		IsActive:  true,
	}
	if err := s.db.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(&u)
}

// Login authenticates a user by email and password
func (s *Service) Login(req *LoginRequest) (*AuthResponse, error) {
	var u User
	err := s.db.Where("email = ?", normalizeEmail(req.Email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrInactive
	}

	return s.issueTokens(&u)
}

// RefreshToken exchanges a valid refresh token for a new token pair
func (s *Service) RefreshToken(req *RefreshTokenRequest) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}

	u, err := s.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactive
	}

	return s.issueTokens(u)
}

// GetByID retrieves a user by ID
func (s *Service) GetByID(id uint) (*User, error) {
	var u User
	if err := s.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &u, nil
}

// UpdateProfileRequest represents profile update request
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// UpdateProfile updates the caller's profile fields
func (s *Service) UpdateProfile(userID uint, req *UpdateProfileRequest) (*User, error) {
	u, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		u.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		u.LastName = strings.TrimSpace(*req.LastName)
	}

	if err := s.db.Save(u).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

func (s *Service) issueTokens(u *User) (*AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &AuthResponse{
		User:         u,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
