package dto

import (
	"backoffice/internal/core/types"
	"backoffice/internal/domain/catalogs/employee"
)

// CreateEmployeeRequest is the request body for creating an employee.
type CreateEmployeeRequest struct {
	Names  string      `json:"names" binding:"required"`
	Salary types.Money `json:"salary"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateEmployeeRequest) ToEntity() *employee.Employee {
	return employee.New(r.Names, r.Salary)
}

// UpdateEmployeeRequest is the request body for updating an employee.
type UpdateEmployeeRequest struct {
	Names   string      `json:"names" binding:"required"`
	Salary  types.Money `json:"salary"`
	Version int         `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateEmployeeRequest) ApplyTo(e *employee.Employee) {
	e.Names = r.Names
	e.Salary = r.Salary
	e.Version = r.Version
}

// EmployeeResponse is the response body for an employee.
type EmployeeResponse struct {
	BaseResponse
	Names  string `json:"names"`
	Salary string `json:"salary"`
}

// FromEmployee creates a response DTO from a domain entity.
func FromEmployee(e *employee.Employee) *EmployeeResponse {
	return &EmployeeResponse{
		BaseResponse: FromBaseEntity(e.BaseEntity),
		Names:        e.Names,
		Salary:       e.Salary.StringFixed(2),
	}
}
