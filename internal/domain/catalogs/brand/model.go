// Package brand provides the brand catalog entity.
package brand

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
)

// Brand groups products by manufacturer mark.
type Brand struct {
	entity.BaseCatalog

	Description string `db:"description" json:"description"`
}

// New creates a brand with a generated ID.
func New(description string) *Brand {
	return &Brand{
		BaseCatalog: entity.NewBaseCatalog(),
		Description: description,
	}
}

// Validate implements entity.Validatable.
func (b *Brand) Validate(ctx context.Context) error {
	if b.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	return nil
}

var _ entity.Validatable = (*Brand)(nil)
