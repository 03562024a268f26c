package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is the full storefront schema. Statements are idempotent so
// EnsureSchema can run on every startup.
//
// products.category stores the category NAME, not the id: the catalogue
// was designed with the name as the de facto foreign key, and category
// deletion is guarded by a conditional delete instead of a cascade.
const schema = `
	CREATE TABLE IF NOT EXISTS products (
		id UUID PRIMARY KEY,
		name VARCHAR(200) NOT NULL,
		model_name VARCHAR(200),
		description VARCHAR(1000),
		price DECIMAL(12, 2) NOT NULL CHECK (price > 0),
		image_url TEXT,
		video_url TEXT,
		category VARCHAR(100),
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_products_created_at ON products (created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_products_category ON products (category);

	CREATE TABLE IF NOT EXISTS categories (
		id UUID PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE
	);

	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(100) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

// EnsureSchema creates the storefront tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
