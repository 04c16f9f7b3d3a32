package documents

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/catalogs/product"
)

// StockPort is the reconciler's write access to product stock. All three
// methods must be called inside a transaction; GetStockForUpdate takes a
// row lock held until commit so two documents cannot race on the same
// product.
type StockPort interface {
	// GetStockForUpdate reads current stock with a row-level lock
	GetStockForUpdate(ctx context.Context, productID id.ID) (types.Quantity, error)

	// AdjustStock applies a signed delta to the locked row
	AdjustStock(ctx context.Context, productID id.ID, delta types.Quantity) error
}

// CostUpdater records the latest purchase cost on a product.
type CostUpdater interface {
	UpdateCost(ctx context.Context, productID id.ID, cost types.Money) error
}

// ProductLookup is read access to the product catalog for line pricing.
type ProductLookup interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// LineInput is a line item as submitted by the caller. Unit amounts are
// taken from the payload; subtotal and tax are always recomputed
// server-side, never trusted from the client.
type LineInput struct {
	ProductID id.ID          `json:"productId"`
	Quantity  types.Quantity `json:"quantity"`
	UnitPrice types.Money    `json:"unitPrice"`
}
