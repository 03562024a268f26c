package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AdamZoda/voiture/internal/model"
	"github.com/AdamZoda/voiture/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const maxCategoryNameLength = 100

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// GetAll retrieves all categories ordered by name.
func (s *categoryService) GetAll(ctx context.Context) ([]model.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all categories")
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

// Create inserts a category with the given name. A duplicate name is a
// distinct conflict, not a generic failure, so the caller can tell the
// user the category already exists.
func (s *categoryService) Create(ctx context.Context, name string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.Validation("Category name is required")
	}
	if len(name) > maxCategoryNameLength {
		return nil, model.Validation(fmt.Sprintf("Category name must be at most %d characters", maxCategoryNameLength))
	}

	category := &model.Category{
		ID:   uuid.NewString(),
		Name: name,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, model.ErrCategoryExists) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("category", name).Msg("failed to create category")
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Str("category_id", category.ID).Str("category", name).Msg("category created")

	return category, nil
}

// Delete removes a category by name. A category still referenced by
// products is never deleted.
func (s *categoryService) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.ErrCategoryNotFound
	}

	if err := s.categoryRepo.DeleteByName(ctx, name); err != nil {
		if errors.Is(err, model.ErrCategoryInUse) {
			return s.inUseError(ctx, name)
		}
		if errors.Is(err, model.ErrCategoryNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("category", name).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info().Str("category", name).Msg("category deleted")

	return nil
}

// inUseError reports CATEGORY_IN_USE with the number of products still
// referencing the name. When the count cannot be fetched the plain
// sentinel stands in.
func (s *categoryService) inUseError(ctx context.Context, name string) error {
	count, err := s.productRepo.CountByCategory(ctx, name)
	if err != nil {
		s.logger.Error().Err(err).Str("category", name).Msg("failed to count category references")
		return model.ErrCategoryInUse
	}

	return model.NewDomainError(
		model.ErrCodeCategoryInUse,
		fmt.Sprintf("Cannot delete category: %d product(s) still use it", count),
	)
}
