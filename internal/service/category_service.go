package service

import (
	"strings"

	"github.com/tijara-next/internal/logger"
	"github.com/tijara-next/internal/models"
	"github.com/tijara-next/internal/repository"
)

// CategoryInput carries a category create/update payload.
type CategoryInput struct {
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// CategoryService manages catalog categories.
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService builds a category service.
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListCategories returns all categories in display order.
func (s *CategoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List()
}

// GetCategory fetches one category by id.
func (s *CategoryService) GetCategory(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// CreateCategory inserts a new category with a unique slug.
func (s *CategoryService) CreateCategory(input CategoryInput) (*models.Category, error) {
	slug := strings.TrimSpace(input.Slug)
	existing, err := s.categoryRepo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategorySlugExists
	}

	category := &models.Category{
		Slug:      slug,
		Name:      strings.TrimSpace(input.Name),
		SortOrder: input.SortOrder,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		logger.Errorw("category_create_failed", "slug", slug, "error", err)
		return nil, err
	}
	return category, nil
}

// UpdateCategory updates slug, name and ordering.
func (s *CategoryService) UpdateCategory(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != category.Slug {
		existing, err := s.categoryRepo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, ErrCategorySlugExists
		}
	}

	if err := s.categoryRepo.Update(id, map[string]interface{}{
		"slug":       slug,
		"name":       strings.TrimSpace(input.Name),
		"sort_order": input.SortOrder,
	}); err != nil {
		logger.Errorw("category_update_failed", "category_id", id, "error", err)
		return nil, err
	}
	return s.GetCategory(id)
}

// DeleteCategory removes a category. Products keep their category_id;
// the storefront simply stops listing the bucket.
func (s *CategoryService) DeleteCategory(id uint) error {
	if _, err := s.GetCategory(id); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		logger.Errorw("category_delete_failed", "category_id", id, "error", err)
		return err
	}
	return nil
}
