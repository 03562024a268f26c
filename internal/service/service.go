package service

import (
	"context"

	"github.com/AdamZoda/voiture/internal/model"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// GetAll retrieves all products, newest first.
	GetAll(ctx context.Context) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Create validates and persists a new product built from form input.
	Create(ctx context.Context, input model.ProductInput) (*model.Product, error)

	// Update validates the input and replaces the product with the given ID.
	Update(ctx context.Context, id string, input model.ProductInput) (*model.Product, error)

	// Delete removes a product by ID.
	Delete(ctx context.Context, id string) error
}

// CategoryService defines operations for category management.
type CategoryService interface {
	// GetAll retrieves all categories ordered by name.
	GetAll(ctx context.Context) ([]model.Category, error)

	// Create inserts a category with the given name.
	Create(ctx context.Context, name string) (*model.Category, error)

	// Delete removes a category by name, refusing while products reference it.
	Delete(ctx context.Context, name string) error
}

// AuthService defines sign-in and admin account management.
type AuthService interface {
	// SignIn verifies credentials and returns the user plus a session token.
	SignIn(ctx context.Context, email, password string) (*model.User, string, error)

	// SignUp creates a new admin account.
	SignUp(ctx context.Context, email, password string) (*model.User, error)

	// CurrentUser resolves a session token to a user. Any failure
	// (missing token, bad signature, deleted account) yields nil rather
	// than an error; callers treat nil as "unauthenticated".
	CurrentUser(ctx context.Context, token string) *model.User

	// ListUsers retrieves all admin accounts, newest first.
	ListUsers(ctx context.Context) ([]model.User, error)

	// DeleteUser removes an admin account. The signed-in actor cannot
	// delete itself.
	DeleteUser(ctx context.Context, actorID, id string) error
}
