package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/AdamZoda/voiture/internal/model"
	"github.com/AdamZoda/voiture/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxNameLength        = 200
	maxDescriptionLength = 1000
)

// productService implements ProductService.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// GetAll retrieves all products, newest first.
func (s *productService) GetAll(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get all products")
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	s.logger.Debug().Int("count", len(products)).Msg("retrieved products")

	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Create validates and persists a new product built from form input.
func (s *productService) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	product, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	product.ID = uuid.NewString()
	product.CreatedAt = time.Now().UTC()

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Str("product_id", product.ID).Str("name", product.Name).Msg("product created")

	return product, nil
}

// Update validates the input and replaces the product with the given ID.
func (s *productService) Update(ctx context.Context, id string, input model.ProductInput) (*model.Product, error) {
	if id == "" {
		return nil, model.ErrProductNotFound
	}

	product, err := s.buildProduct(ctx, input)
	if err != nil {
		return nil, err
	}

	product.ID = id

	if err := s.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Str("name", product.Name).Msg("product updated")

	return product, nil
}

// Delete removes a product by ID.
func (s *productService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return model.ErrProductNotFound
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrProductNotFound) {
			return err
		}
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.logger.Info().Str("product_id", id).Msg("product deleted")

	return nil
}

// buildProduct validates the raw form input and returns the normalised
// product. Validation stops at the first violated rule, mirroring the
// single-notification form behaviour. Text fields are trimmed and empty
// optionals become nil so "" never round-trips through the database.
func (s *productService) buildProduct(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, model.Validation("Name is required")
	}
	if len(name) > maxNameLength {
		return nil, model.Validation(fmt.Sprintf("Name must be at most %d characters", maxNameLength))
	}

	description := strings.TrimSpace(input.Description)
	if len(description) > maxDescriptionLength {
		return nil, model.Validation(fmt.Sprintf("Description must be at most %d characters", maxDescriptionLength))
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(input.Price), 64)
	if err != nil || price <= 0 {
		return nil, model.Validation("Price must be a positive number")
	}

	imageURL := strings.TrimSpace(input.ImageURL)
	if imageURL != "" && !isValidURL(imageURL) {
		return nil, model.Validation("Image URL must be a valid URL")
	}

	videoURL := strings.TrimSpace(input.VideoURL)
	if videoURL != "" && !isValidURL(videoURL) {
		return nil, model.Validation("Video URL must be a valid URL")
	}

	category := strings.TrimSpace(input.Category)
	if category != "" {
		exists, err := s.categoryExists(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("failed to validate category: %w", err)
		}
		if !exists {
			return nil, model.Validation("Category does not exist")
		}
	}

	return &model.Product{
		Name:        name,
		ModelName:   optional(input.ModelName),
		Description: optional(description),
		Price:       price,
		ImageURL:    optional(imageURL),
		VideoURL:    optional(videoURL),
		Category:    optional(category),
		Featured:    input.Featured,
	}, nil
}

func (s *productService) categoryExists(ctx context.Context, name string) (bool, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return false, err
	}
	for _, c := range categories {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// isValidURL reports whether s is a syntactically valid absolute URL.
func isValidURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// optional trims s and converts an empty result to an absent value.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
