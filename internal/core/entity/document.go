package entity

import (
	"context"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/types"
)

// Document is the base for header+lines business records (invoices,
// purchases). The Active flag doubles as the void marker: voiding a
// document clears it while keeping header and lines for history.
type Document struct {
	BaseEntity

	// Number is the document number, generated when empty
	Number string `db:"number" json:"number"`

	// IssueDate is the business date of the document
	IssueDate time.Time `db:"issue_date" json:"issueDate"`

	// Totals, always recomputed server-side from lines
	Subtotal types.Money `db:"subtotal" json:"subtotal"`
	Tax      types.Money `db:"tax" json:"tax"`
	Total    types.Money `db:"total" json:"total"`
}

// NewDocument creates a Document dated now.
func NewDocument() Document {
	return Document{
		BaseEntity: NewBaseEntity(),
		IssueDate:  time.Now().UTC(),
	}
}

// Validate implements Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if d.IssueDate.IsZero() {
		return apperror.NewValidation("issue date is required").
			WithDetail("field", "issueDate")
	}
	return nil
}

// SetTotals stores recomputed totals. Total is always subtotal + tax.
func (d *Document) SetTotals(subtotal, tax types.Money) {
	d.Subtotal = types.Round2(subtotal)
	d.Tax = types.Round2(tax)
	d.Total = d.Subtotal.Add(d.Tax)
}

// IsVoided reports whether the document was annulled.
func (d *Document) IsVoided() bool {
	return !d.Active
}

// CanVoid checks the void precondition.
func (d *Document) CanVoid() error {
	if d.IsVoided() {
		return apperror.NewConflict("document is already voided").
			WithDetail("document_id", d.ID.String())
	}
	return nil
}

// MarkVoided flips the active flag off.
func (d *Document) MarkVoided() {
	d.Active = false
	d.Touch()
}
