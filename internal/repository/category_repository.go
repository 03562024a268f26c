package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdamZoda/voiture/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint breach.
const uniqueViolation = "23505"

// categoryRepository implements the CategoryRepository interface using PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

// GetAll retrieves all categories ordered by name.
func (r *categoryRepository) GetAll(ctx context.Context) ([]model.Category, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Create inserts a new category. A duplicate name surfaces as
// model.ErrCategoryExists so callers can report it distinctly from a
// generic failure.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO categories (id, name) VALUES ($1, $2)`,
		category.ID, category.Name,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().Str("category", category.Name).Msg("category already exists")
			return model.ErrCategoryExists
		}
		r.logger.Error().Err(err).Str("category", category.Name).Msg("failed to insert category")
		return fmt.Errorf("failed to insert category: %w", err)
	}

	return nil
}

// DeleteByName removes a category unless a product still references it.
// The reference check is part of the delete statement itself, so a
// concurrent product insert cannot slip between check and delete.
func (r *categoryRepository) DeleteByName(ctx context.Context, name string) error {
	query := `
		DELETE FROM categories
		WHERE name = $1
		  AND NOT EXISTS (SELECT 1 FROM products WHERE category = $1)
	`

	tag, err := r.pool.Exec(ctx, query, name)
	if err != nil {
		r.logger.Error().Err(err).Str("category", name).Msg("failed to delete category")
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	// Nothing was deleted: either the category is gone or it is still
	// referenced. Resolve which, for the caller's error message only.
	var exists bool
	err = r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE name = $1)`, name).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrCategoryNotFound
		}
		r.logger.Error().Err(err).Str("category", name).Msg("failed to resolve category delete outcome")
		return fmt.Errorf("failed to resolve category delete outcome: %w", err)
	}

	if !exists {
		r.logger.Debug().Str("category", name).Msg("category not found for delete")
		return model.ErrCategoryNotFound
	}

	r.logger.Debug().Str("category", name).Msg("category still referenced by products")
	return model.ErrCategoryInUse
}
