// Package customer provides the customer catalog entity.
package customer

import (
	"context"
	"strings"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
)

// Customer is a party that invoices are issued to.
type Customer struct {
	entity.BaseCatalog

	DNI       string `db:"dni" json:"dni,omitempty"`
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name" json:"lastName"`
	Address   string `db:"address" json:"address,omitempty"`
	Gender    string `db:"gender" json:"gender,omitempty"`
	Phone     string `db:"phone" json:"phone,omitempty"`
	Email     string `db:"email" json:"email,omitempty"`

	DateOfBirth *time.Time `db:"date_of_birth" json:"dateOfBirth,omitempty"`
}

// New creates a customer with a generated ID. Names are stored upper-cased,
// matching how the rest of the catalog is keyed.
func New(firstName, lastName string) *Customer {
	return &Customer{
		BaseCatalog: entity.NewBaseCatalog(),
		FirstName:   strings.ToUpper(firstName),
		LastName:    strings.ToUpper(lastName),
	}
}

// FullName returns "LASTNAME FIRSTNAME".
func (c *Customer) FullName() string {
	return c.LastName + " " + c.FirstName
}

// Normalize upper-cases the name fields before persistence.
func (c *Customer) Normalize() {
	c.FirstName = strings.ToUpper(c.FirstName)
	c.LastName = strings.ToUpper(c.LastName)
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if c.FirstName == "" {
		return apperror.NewValidation("first name is required").
			WithDetail("field", "firstName")
	}
	if c.LastName == "" {
		return apperror.NewValidation("last name is required").
			WithDetail("field", "lastName")
	}
	if c.Phone != "" && len(c.Phone) > 10 {
		return apperror.NewValidation("phone must have at most 10 digits").
			WithDetail("field", "phone")
	}
	return nil
}

var _ entity.Validatable = (*Customer)(nil)
