package invoice

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/domain"
)

// Repository defines persistence for invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error

	// Update persists header changes with optimistic locking
	Update(ctx context.Context, inv *Invoice) error

	// Delete removes the header physically; lines go with it
	Delete(ctx context.Context, invoiceID id.ID) error

	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)

	// SaveLines replaces the line set of an invoice
	SaveLines(ctx context.Context, invoiceID id.ID, lines []Line) error

	GetLines(ctx context.Context, invoiceID id.ID) ([]Line, error)

	DeleteLines(ctx context.Context, invoiceID id.ID) error

	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error)
}
