package dto

import "backoffice/internal/domain/catalogs/supplier"

// CreateSupplierRequest is the request body for creating a supplier.
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	RUC     string `json:"ruc" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.New(r.Name, r.RUC)
	s.Address = r.Address
	s.Phone = r.Phone
	return s
}

// UpdateSupplierRequest is the request body for updating a supplier.
type UpdateSupplierRequest struct {
	Name    string `json:"name" binding:"required"`
	RUC     string `json:"ruc" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Version int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	s.Name = r.Name
	s.RUC = r.RUC
	s.Address = r.Address
	s.Phone = r.Phone
	s.Version = r.Version
}

// SupplierResponse is the response body for a supplier.
type SupplierResponse struct {
	BaseResponse
	Name    string `json:"name"`
	RUC     string `json:"ruc"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// FromSupplier creates a response DTO from a domain entity.
func FromSupplier(s *supplier.Supplier) *SupplierResponse {
	return &SupplierResponse{
		BaseResponse: FromBaseEntity(s.BaseEntity),
		Name:         s.Name,
		RUC:          s.RUC,
		Address:      s.Address,
		Phone:        s.Phone,
	}
}
