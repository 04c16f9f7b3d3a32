// Package product provides the product catalog entity. The stock quantity
// it carries is the inventory authority that invoices and purchases
// reconcile against.
package product

import (
	"context"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

// Product is a sellable/purchasable catalog item.
type Product struct {
	entity.BaseCatalog

	Description string `db:"description" json:"description"`

	// Cost is the last purchase cost, updated when purchases are recorded
	Cost  types.Money `db:"cost" json:"cost"`
	Price types.Money `db:"price" json:"price"`

	// Stock is the on-hand quantity. Sales decrement it, purchases
	// increment it, always inside the document transaction. It must never
	// go negative.
	Stock types.Quantity `db:"stock" json:"stock"`

	// TaxRate is the IVA percentage applied to sale lines (0, 5, 15)
	TaxRate int `db:"tax_rate" json:"taxRate"`

	BrandID    id.ID `db:"brand_id" json:"brandId"`
	SupplierID id.ID `db:"supplier_id" json:"supplierId"`
	CategoryID id.ID `db:"category_id" json:"categoryId"`

	// Line is the commercial line code the product belongs to
	Line string `db:"line" json:"line,omitempty"`
}

// New creates a product with a generated ID.
func New(description string) *Product {
	return &Product{
		BaseCatalog: entity.NewBaseCatalog(),
		Description: description,
		Cost:        decimal.Zero,
		Price:       decimal.Zero,
		Stock:       decimal.Zero,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}
	if p.Stock.IsNegative() {
		return apperror.NewValidation("stock must not be negative").
			WithDetail("field", "stock")
	}
	if p.TaxRate < 0 || p.TaxRate > 100 {
		return apperror.NewValidation("tax rate must be a percentage").
			WithDetail("field", "taxRate")
	}
	if id.IsNil(p.BrandID) {
		return apperror.NewValidation("brand is required").
			WithDetail("field", "brandId")
	}
	if id.IsNil(p.SupplierID) {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplierId")
	}
	return nil
}

var _ entity.Validatable = (*Product)(nil)
