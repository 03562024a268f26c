package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdamZoda/voiture/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `id, name, model_name, description, price, image_url, video_url, category, featured, created_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.ModelName,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.VideoURL,
		&p.Category,
		&p.Featured,
		&p.CreatedAt,
	)
}

// GetAll retrieves all products ordered by creation time, newest first.
func (r *productRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE id = $1
	`

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (id, name, model_name, description, price, image_url, video_url, category, featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.ModelName,
		product.Description,
		product.Price,
		product.ImageURL,
		product.VideoURL,
		product.Category,
		product.Featured,
		product.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to insert product")
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

// Update replaces the stored fields of the product with the given ID.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2,
		    model_name = $3,
		    description = $4,
		    price = $5,
		    image_url = $6,
		    video_url = $7,
		    category = $8,
		    featured = $9
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.ModelName,
		product.Description,
		product.Price,
		product.ImageURL,
		product.VideoURL,
		product.Category,
		product.Featured,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("product_id", product.ID).Msg("product not found for update")
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product by ID.
func (r *productRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("product_id", id).Msg("product not found for delete")
		return model.ErrProductNotFound
	}

	return nil
}

// CountByCategory returns how many products reference a category name.
func (r *productRepository) CountByCategory(ctx context.Context, name string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category = $1`, name).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Str("category", name).Msg("failed to count products by category")
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}

	return count, nil
}
