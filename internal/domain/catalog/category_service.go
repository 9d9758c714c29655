// internal/domain/catalog/category_service.go
package catalog

import (
	"errors"
	"fmt"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// ErrCategoryCycle is returned when a parent assignment would make the
// category tree cyclic.
var ErrCategoryCycle = errors.New("category parent chain forms a cycle")

// CategoryService handles category business logic
type CategoryService struct {
	db     *gorm.DB
	config *config.Config
}

// NewCategoryService creates a new category service
func NewCategoryService(db *gorm.DB, cfg *config.Config) *CategoryService {
	return &CategoryService{
		db:     db,
		config: cfg,
	}
}

// CategoryCreateRequest represents category creation data
type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ParentID    *uint  `json:"parent_id"`
}

// CategoryUpdateRequest represents category update data
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	ParentID    *uint   `json:"parent_id"`
	ClearParent bool    `json:"clear_parent"`
}

// CategoryTreeResponse separates parent and child categories for listings
type CategoryTreeResponse struct {
	Categories       []Category `json:"categories"`
	ParentCategories []Category `json:"parent_categories"`
	ChildCategories  []Category `json:"child_categories"`
}

// GetCategories retrieves all categories
func (s *CategoryService) GetCategories() ([]Category, error) {
	var categories []Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}
	return categories, nil
}

// GetCategoryTree retrieves all categories split into parents and children
func (s *CategoryService) GetCategoryTree() (*CategoryTreeResponse, error) {
	categories, err := s.GetCategories()
	if err != nil {
		return nil, err
	}

	resp := &CategoryTreeResponse{Categories: categories}
	for _, c := range categories {
		if c.ParentID == nil {
			resp.ParentCategories = append(resp.ParentCategories, c)
		} else {
			resp.ChildCategories = append(resp.ChildCategories, c)
		}
	}
	return resp, nil
}

// GetCategory retrieves a single category by ID
func (s *CategoryService) GetCategory(id uint) (*Category, error) {
	var category Category
	result := s.db.Preload("Children").Where("id = ?", id).First(&category)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to retrieve category: %w", result.Error)
	}
	return &category, nil
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(req *CategoryCreateRequest) (*Category, error) {
	slug := req.Slug
	if slug == "" {
		slug = Slugify(req.Name)
	}

	if err := s.checkCategoryUniqueness(req.Name, slug, 0); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if err := s.validateParentChain(*req.ParentID, 0); err != nil {
			return nil, err
		}
	}

	category := Category{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ParentID:    req.ParentID,
	}

	if err := s.db.Create(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &category, nil
}

// UpdateCategory updates an existing category
func (s *CategoryService) UpdateCategory(id uint, req *CategoryUpdateRequest) (*Category, error) {
	var category Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load category: %w", err)
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = *req.Slug
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.ImageURL != nil {
		category.ImageURL = *req.ImageURL
	}
	if req.ClearParent {
		category.ParentID = nil
	} else if req.ParentID != nil {
		if *req.ParentID == category.ID {
			return nil, fmt.Errorf("category %d cannot be its own parent: %w", id, ErrCategoryCycle)
		}
		if err := s.validateParentChain(*req.ParentID, category.ID); err != nil {
			return nil, err
		}
		category.ParentID = req.ParentID
	}

	if err := s.checkCategoryUniqueness(category.Name, category.Slug, category.ID); err != nil {
		return nil, err
	}

	if err := s.db.Save(&category).Error; err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	return &category, nil
}

// DeleteCategory deletes a category; its products cascade away with it
func (s *CategoryService) DeleteCategory(id uint) error {
	var category Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to load category: %w", err)
	}

	// Products in the category cascade; child categories are detached
	// so they don't dangle on a deleted parent.
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Category{}).Where("parent_id = ?", id).
			Update("parent_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach child categories: %w", err)
		}
		if err := tx.Where("category_id = ?", id).Delete(&Product{}).Error; err != nil {
			return fmt.Errorf("failed to delete category products: %w", err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		return nil
	})
}

// validateParentChain walks up from parentID and fails when the chain
// revisits a node or passes through selfID.
func (s *CategoryService) validateParentChain(parentID, selfID uint) error {
	visited := map[uint]bool{}
	current := parentID
	for {
		if current == selfID && selfID != 0 {
			return fmt.Errorf("category %d: %w", selfID, ErrCategoryCycle)
		}
		if visited[current] {
			return fmt.Errorf("category %d: %w", current, ErrCategoryCycle)
		}
		visited[current] = true

		var parent Category
		if err := s.db.Select("id", "parent_id").First(&parent, current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("parent category %d: %w", current, ErrNotFound)
			}
			return fmt.Errorf("failed to walk category chain: %w", err)
		}
		if parent.ParentID == nil {
			return nil
		}
		current = *parent.ParentID
	}
}

func (s *CategoryService) checkCategoryUniqueness(name, slug string, excludeID uint) error {
	var count int64
	query := s.db.Model(&Category{}).Where("name = ? OR slug = ?", name, slug)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check category uniqueness: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("category %q: %w", name, ErrConflict)
	}
	return nil
}
