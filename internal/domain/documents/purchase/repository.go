package purchase

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/domain"
)

// Repository defines persistence for purchases.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error

	// Update persists header changes with optimistic locking
	Update(ctx context.Context, p *Purchase) error

	// Delete removes the header physically; lines go with it
	Delete(ctx context.Context, purchaseID id.ID) error

	GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error)

	// SaveLines replaces the line set of a purchase
	SaveLines(ctx context.Context, purchaseID id.ID, lines []Line) error

	GetLines(ctx context.Context, purchaseID id.ID) ([]Line, error)

	DeleteLines(ctx context.Context, purchaseID id.ID) error

	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Purchase], error)
}
