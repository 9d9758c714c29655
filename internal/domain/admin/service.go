// internal/domain/admin/service.go
package admin

import (
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/catalog"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"gorm.io/gorm"
)

// Service aggregates dashboard statistics for the admin surface
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new admin dashboard service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DashboardResponse represents the admin dashboard summary
type DashboardResponse struct {
	TotalProducts int64         `json:"total_products"`
	TotalOrders   int64         `json:"total_orders"`
	TotalUsers    int64         `json:"total_users"`
	PendingOrders int64         `json:"pending_orders"`
	RecentOrders  []order.Order `json:"recent_orders"`
}

// GetDashboard returns entity counts and the ten most recent orders
func (s *Service) GetDashboard() (*DashboardResponse, error) {
	resp := &DashboardResponse{}

	if err := s.db.Model(&catalog.Product{}).Count(&resp.TotalProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if err := s.db.Model(&order.Order{}).Count(&resp.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := s.db.Model(&user.User{}).Count(&resp.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if err := s.db.Model(&order.Order{}).
		Where("status = ?", order.StatusPending).
		Count(&resp.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	if err := s.db.Preload("Items").
		Order("created_at DESC").
		Limit(10).
		Find(&resp.RecentOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	return resp, nil
}
