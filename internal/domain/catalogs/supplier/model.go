// Package supplier provides the supplier catalog entity.
package supplier

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
)

// Supplier is a party that purchases are recorded against.
type Supplier struct {
	entity.BaseCatalog

	Name    string `db:"name" json:"name"`
	RUC     string `db:"ruc" json:"ruc"`
	Address string `db:"address" json:"address,omitempty"`
	Phone   string `db:"phone" json:"phone,omitempty"`
}

// New creates a supplier with a generated ID.
func New(name, ruc string) *Supplier {
	return &Supplier{
		BaseCatalog: entity.NewBaseCatalog(),
		Name:        name,
		RUC:         ruc,
	}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(s.RUC) != 13 {
		return apperror.NewValidation("ruc must have 13 digits").
			WithDetail("field", "ruc")
	}
	return nil
}

var _ entity.Validatable = (*Supplier)(nil)
