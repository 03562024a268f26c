package model

// Category is a product grouping. Products reference a category by its
// name, not its id, so the name doubles as the de facto foreign key.
type Category struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
