package dto

import (
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Description string      `json:"description" binding:"required"`
	Cost        types.Money `json:"cost"`
	Price       types.Money `json:"price"`
	Stock       types.Money `json:"stock"`
	TaxRate     int         `json:"taxRate"`
	BrandID     string      `json:"brandId" binding:"required"`
	SupplierID  string      `json:"supplierId" binding:"required"`
	CategoryID  string      `json:"categoryId"`
	Line        string      `json:"line"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateProductRequest) ToEntity() (*product.Product, error) {
	p := product.New(r.Description)
	p.Cost = r.Cost
	p.Price = r.Price
	p.Stock = r.Stock
	p.TaxRate = r.TaxRate
	p.Line = r.Line

	var err error
	if p.BrandID, err = id.Parse(r.BrandID); err != nil {
		return nil, err
	}
	if p.SupplierID, err = id.Parse(r.SupplierID); err != nil {
		return nil, err
	}
	if r.CategoryID != "" {
		if p.CategoryID, err = id.Parse(r.CategoryID); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// UpdateProductRequest is the request body for updating a product.
// Stock is deliberately absent: it only moves through documents.
type UpdateProductRequest struct {
	Description string      `json:"description" binding:"required"`
	Cost        types.Money `json:"cost"`
	Price       types.Money `json:"price"`
	TaxRate     int         `json:"taxRate"`
	BrandID     string      `json:"brandId" binding:"required"`
	SupplierID  string      `json:"supplierId" binding:"required"`
	CategoryID  string      `json:"categoryId"`
	Line        string      `json:"line"`
	Version     int         `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateProductRequest) ApplyTo(p *product.Product) error {
	p.Description = r.Description
	p.Cost = r.Cost
	p.Price = r.Price
	p.TaxRate = r.TaxRate
	p.Line = r.Line
	p.Version = r.Version

	var err error
	if p.BrandID, err = id.Parse(r.BrandID); err != nil {
		return err
	}
	if p.SupplierID, err = id.Parse(r.SupplierID); err != nil {
		return err
	}
	p.CategoryID = id.Nil()
	if r.CategoryID != "" {
		if p.CategoryID, err = id.Parse(r.CategoryID); err != nil {
			return err
		}
	}
	return nil
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	BaseResponse
	Description string `json:"description"`
	Cost        string `json:"cost"`
	Price       string `json:"price"`
	Stock       string `json:"stock"`
	TaxRate     int    `json:"taxRate"`
	BrandID     string `json:"brandId"`
	SupplierID  string `json:"supplierId"`
	CategoryID  string `json:"categoryId,omitempty"`
	Line        string `json:"line,omitempty"`
}

// FromProduct creates a response DTO from a domain entity.
func FromProduct(p *product.Product) *ProductResponse {
	resp := &ProductResponse{
		BaseResponse: FromBaseEntity(p.BaseEntity),
		Description:  p.Description,
		Cost:         p.Cost.StringFixed(2),
		Price:        p.Price.StringFixed(2),
		Stock:        p.Stock.String(),
		TaxRate:      p.TaxRate,
		BrandID:      p.BrandID.String(),
		SupplierID:   p.SupplierID.String(),
		Line:         p.Line,
	}
	if !id.IsNil(p.CategoryID) {
		resp.CategoryID = p.CategoryID.String()
	}
	return resp
}
