package dto

import (
	"time"

	"backoffice/internal/domain/catalogs/customer"
)

// CreateCustomerRequest is the request body for creating a customer.
type CreateCustomerRequest struct {
	DNI         string     `json:"dni"`
	FirstName   string     `json:"firstName" binding:"required"`
	LastName    string     `json:"lastName" binding:"required"`
	Address     string     `json:"address"`
	Gender      string     `json:"gender"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.New(r.FirstName, r.LastName)
	c.DNI = r.DNI
	c.Address = r.Address
	c.Gender = r.Gender
	c.Phone = r.Phone
	c.Email = r.Email
	c.DateOfBirth = r.DateOfBirth
	return c
}

// UpdateCustomerRequest is the request body for updating a customer.
type UpdateCustomerRequest struct {
	DNI         string     `json:"dni"`
	FirstName   string     `json:"firstName" binding:"required"`
	LastName    string     `json:"lastName" binding:"required"`
	Address     string     `json:"address"`
	Gender      string     `json:"gender"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	Version     int        `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	c.DNI = r.DNI
	c.FirstName = r.FirstName
	c.LastName = r.LastName
	c.Address = r.Address
	c.Gender = r.Gender
	c.Phone = r.Phone
	c.Email = r.Email
	c.DateOfBirth = r.DateOfBirth
	c.Version = r.Version
	c.Normalize()
}

// CustomerResponse is the response body for a customer.
type CustomerResponse struct {
	BaseResponse
	DNI         string     `json:"dni,omitempty"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	FullName    string     `json:"fullName"`
	Address     string     `json:"address,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
}

// FromCustomer creates a response DTO from a domain entity.
func FromCustomer(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		BaseResponse: FromBaseEntity(c.BaseEntity),
		DNI:          c.DNI,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		FullName:     c.FullName(),
		Address:      c.Address,
		Gender:       c.Gender,
		Phone:        c.Phone,
		Email:        c.Email,
		DateOfBirth:  c.DateOfBirth,
	}
}
