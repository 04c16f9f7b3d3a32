// Package category provides the product category catalog entity.
package category

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
)

// Category groups products commercially.
type Category struct {
	entity.BaseCatalog

	Description string `db:"description" json:"description"`
}

// New creates a category with a generated ID.
func New(description string) *Category {
	return &Category{
		BaseCatalog: entity.NewBaseCatalog(),
		Description: description,
	}
}

// Validate implements entity.Validatable.
func (c *Category) Validate(ctx context.Context) error {
	if c.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	return nil
}

var _ entity.Validatable = (*Category)(nil)
