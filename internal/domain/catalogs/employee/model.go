// Package employee provides the payroll employee catalog entity.
package employee

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/types"
)

// Employee is a payroll subject that advances (loans) are granted to.
type Employee struct {
	entity.BaseCatalog

	Names  string      `db:"names" json:"names"`
	Salary types.Money `db:"salary" json:"salary"`
}

// New creates an employee with a generated ID.
func New(names string, salary types.Money) *Employee {
	return &Employee{
		BaseCatalog: entity.NewBaseCatalog(),
		Names:       names,
		Salary:      salary,
	}
}

// Validate implements entity.Validatable.
func (e *Employee) Validate(ctx context.Context) error {
	if e.Names == "" {
		return apperror.NewValidation("names are required").
			WithDetail("field", "names")
	}
	if e.Salary.IsNegative() {
		return apperror.NewValidation("salary must not be negative").
			WithDetail("field", "salary")
	}
	return nil
}

var _ entity.Validatable = (*Employee)(nil)
