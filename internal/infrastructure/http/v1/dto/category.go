package dto

import "backoffice/internal/domain/catalogs/category"

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Description string `json:"description" binding:"required"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateCategoryRequest) ToEntity() *category.Category {
	return category.New(r.Description)
}

// UpdateCategoryRequest is the request body for updating a category.
type UpdateCategoryRequest struct {
	Description string `json:"description" binding:"required"`
	Version     int    `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateCategoryRequest) ApplyTo(c *category.Category) {
	c.Description = r.Description
	c.Version = r.Version
}

// CategoryResponse is the response body for a category.
type CategoryResponse struct {
	BaseResponse
	Description string `json:"description"`
}

// FromCategory creates a response DTO from a domain entity.
func FromCategory(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		BaseResponse: FromBaseEntity(c.BaseEntity),
		Description:  c.Description,
	}
}
