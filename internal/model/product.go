package model

import "time"

// Product represents a vehicle listed in the storefront catalogue.
// Optional attributes are pointers so that "not provided" survives a
// round trip through the database instead of degrading to "".
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ModelName   *string   `json:"model_name,omitempty" db:"model_name"`
	Description *string   `json:"description,omitempty" db:"description"`
	Price       float64   `json:"price" db:"price"`
	ImageURL    *string   `json:"image_url,omitempty" db:"image_url"`
	VideoURL    *string   `json:"video_url,omitempty" db:"video_url"`
	Category    *string   `json:"category,omitempty" db:"category"`
	Featured    bool      `json:"featured" db:"featured"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// ProductInput carries the raw form fields for a create or update.
// All fields arrive as strings exactly as typed; the service layer
// trims, validates and normalises them before persistence.
type ProductInput struct {
	Name        string `json:"name"`
	ModelName   string `json:"model_name"`
	Description string `json:"description"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url"`
	VideoURL    string `json:"video_url"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured"`
}
