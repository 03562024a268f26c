// Package repository provides the data-access capability consumed by
// the service layer. The interfaces here are the full backend surface
// the storefront needs; tests swap in mocks, production uses the
// PostgreSQL implementations.
package repository

import (
	"context"

	"github.com/AdamZoda/voiture/internal/model"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// GetAll retrieves all products ordered by creation time, newest first.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by its ID.
	// Returns (nil, nil) when no product exists with that ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update replaces the stored fields of the product with the given ID.
	// Returns model.ErrProductNotFound when the ID does not exist.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product by ID.
	// Returns model.ErrProductNotFound when the ID does not exist.
	Delete(ctx context.Context, id string) error

	// CountByCategory returns how many products reference a category name.
	CountByCategory(ctx context.Context, name string) (int, error)
}

// CategoryRepository defines the interface for category data access operations.
type CategoryRepository interface {
	// GetAll retrieves all categories ordered by name.
	GetAll(ctx context.Context) ([]model.Category, error)

	// Create inserts a new category.
	// Returns model.ErrCategoryExists when the name is already taken.
	Create(ctx context.Context, category *model.Category) error

	// DeleteByName removes a category, refusing while any product still
	// references the name. The reference check and the delete run as a
	// single conditional statement, so there is no window in which a
	// concurrent product insert can orphan its category.
	// Returns model.ErrCategoryInUse or model.ErrCategoryNotFound.
	DeleteByName(ctx context.Context, name string) error
}

// UserRepository defines the interface for admin user data access operations.
type UserRepository interface {
	// GetAll retrieves all users ordered by creation time, newest first.
	GetAll(ctx context.Context) ([]model.User, error)

	// GetByEmail retrieves a user by email.
	// Returns (nil, nil) when no user exists with that email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID.
	// Returns (nil, nil) when no user exists with that ID.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// Create inserts a new user.
	// Returns model.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *model.User) error

	// Delete removes a user by ID. This deletes the identity itself,
	// not a shadow record: a deleted user can no longer sign in.
	// Returns model.ErrUserNotFound when the ID does not exist.
	Delete(ctx context.Context, id string) error
}
