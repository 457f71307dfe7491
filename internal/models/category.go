package models

import "time"

type Category struct {
	ID           string    `json:"id" yaml:"id"`
	CategoryName string    `json:"categoryName" yaml:"categoryName" validate:"required"`
	Description  string    `json:"description" yaml:"description" validate:"required"`
	Image        string    `json:"image" yaml:"image" validate:"required"`
	CreatedAt    time.Time `json:"createdAt,omitempty" yaml:"-"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty" yaml:"-"`
}

func (c *Category) Normalize() {
	c.CategoryName = trim(c.CategoryName)
	c.Description = trim(c.Description)
	c.Image = trim(c.Image)
}

// CategoryName resolves a category id against a fetched list.
func CategoryName(categories []Category, id string) string {
	for _, c := range categories {
		if c.ID == id {
			return c.CategoryName
		}
	}
	return "Unknown"
}
