// internal/domain/waitlist/service.go
package waitlist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Sentinel errors returned by the waitlist service
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// Service handles waitlist business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new waitlist service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// JoinRequest represents a public waitlist signup
type JoinRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	PreferredSize string `json:"preferred_size"`
}

// Join records a waitlist signup
func (s *Service) Join(req *JoinRequest) (*Entry, error) {
	entry := Entry{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		PreferredSize: req.PreferredSize,
	}
	if entry.Name == "" || entry.Email == "" {
		return nil, fmt.Errorf("name and email are required: %w", ErrValidation)
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create waitlist entry: %w", err)
	}
	return &entry, nil
}

// GetEntries retrieves all waitlist entries, newest first
func (s *Service) GetEntries() ([]Entry, error) {
	var entries []Entry
	if err := s.db.Order("created_at DESC").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve waitlist: %w", err)
	}
	return entries, nil
}

// GrantAccess marks a waitlist entry as granted
func (s *Service) GrantAccess(id uint) (*Entry, error) {
	var entry Entry
	if err := s.db.First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("waitlist entry %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load waitlist entry: %w", err)
	}

	if !entry.AccessGranted {
		entry.AccessGranted = true
		if err := s.db.Save(&entry).Error; err != nil {
			return nil, fmt.Errorf("failed to grant access: %w", err)
		}
	}
	return &entry, nil
}
