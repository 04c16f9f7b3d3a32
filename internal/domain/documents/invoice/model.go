// Package invoice provides the sales invoice document. Creating an invoice
// decrements product stock; deleting or voiding it restores the stock.
package invoice

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/documents"
)

// Payment methods accepted on invoices.
const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
)

// Invoice is a sale document issued to a customer.
type Invoice struct {
	entity.Document

	CustomerID id.ID `db:"customer_id" json:"customerId"`

	PaymentMethod string `db:"payment_method" json:"paymentMethod"`

	// Payment is the amount tendered, Change what was returned
	Payment types.Money `db:"payment" json:"payment"`
	Change  types.Money `db:"change" json:"change"`

	// Table part: sold items
	Lines []Line `db:"-" json:"lines"`
}

// Line is one sold item. Subtotal and tax are computed server-side from
// quantity, unit price and the product's tax rate.
type Line struct {
	LineID id.ID `db:"line_id" json:"lineId"`
	LineNo int   `db:"line_no" json:"lineNo"`

	ProductID id.ID          `db:"product_id" json:"productId"`
	Quantity  types.Quantity `db:"quantity" json:"quantity"`
	UnitPrice types.Money    `db:"unit_price" json:"unitPrice"`

	// Cost is the product cost at sale time, kept for margin reports
	Cost types.Money `db:"cost" json:"cost"`

	Subtotal types.Money `db:"subtotal" json:"subtotal"`
	Tax      types.Money `db:"tax" json:"tax"`
}

// New creates an invoice dated now.
func New(customerID id.ID) *Invoice {
	return &Invoice{
		Document:   entity.NewDocument(),
		CustomerID: customerID,
		Lines:      make([]Line, 0),
	}
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(inv.CustomerID) {
		return apperror.NewValidation("customer is required").
			WithDetail("field", "customerId")
	}

	if len(inv.Lines) == 0 {
		return apperror.NewValidation("invoice must have at least one line").
			WithDetail("field", "lines")
	}

	for i, line := range inv.Lines {
		if id.IsNil(line.ProductID) {
			return apperror.NewValidation("product is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if !line.Quantity.IsPositive() {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.UnitPrice.IsNegative() {
			return apperror.NewValidation("unit price must not be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// Deltas returns the stock-relevant view of the lines.
func (inv *Invoice) Deltas() []documents.LineDelta {
	deltas := make([]documents.LineDelta, len(inv.Lines))
	for i, line := range inv.Lines {
		deltas[i] = documents.LineDelta{ProductID: line.ProductID, Quantity: line.Quantity}
	}
	return deltas
}

var _ entity.Validatable = (*Invoice)(nil)
