package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

// categoryService reads the seeded category catalog.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// Exists reports whether categoryID is in the catalog.
func (s *categoryService) Exists(ctx context.Context, categoryID uint) (bool, error) {
	if categoryID == 0 {
		return false, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ?", categoryID).
		Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count > 0, nil
}

// GetCategoryByID retrieves a single catalog entry.
func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidReference
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// GetCategories returns the whole catalog sorted by name.
func (s *categoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return categories, nil
}
