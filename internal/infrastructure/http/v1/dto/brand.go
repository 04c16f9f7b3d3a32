package dto

import "backoffice/internal/domain/catalogs/brand"

// CreateBrandRequest is the request body for creating a brand.
type CreateBrandRequest struct {
	Description string `json:"description" binding:"required"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateBrandRequest) ToEntity() *brand.Brand {
	return brand.New(r.Description)
}

// UpdateBrandRequest is the request body for updating a brand.
type UpdateBrandRequest struct {
	Description string `json:"description" binding:"required"`
	Version     int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateBrandRequest) ApplyTo(b *brand.Brand) {
	b.Description = r.Description
	b.Version = r.Version
}

// BrandResponse is the response body for a brand.
type BrandResponse struct {
	BaseResponse
	Description string `json:"description"`
}

// FromBrand creates a response DTO from a domain entity.
func FromBrand(b *brand.Brand) *BrandResponse {
	return &BrandResponse{
		BaseResponse: FromBaseEntity(b.BaseEntity),
		Description:  b.Description,
	}
}
