package documents

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

// LineDelta is one line's stock-relevant content.
type LineDelta struct {
	ProductID id.ID
	Quantity  types.Quantity
}

// Reconciler applies document stock effects to the product catalog. Every
// method must run inside the caller's transaction: deltas are netted per
// product, each product row is locked, the whole set is rejected before any
// write if a product would go negative.
type Reconciler struct {
	stock StockPort
}

// NewReconciler creates a reconciler over the given stock port.
func NewReconciler(stock StockPort) *Reconciler {
	return &Reconciler{stock: stock}
}

// ApplyCreate applies the stock effect of creating a document.
func (r *Reconciler) ApplyCreate(ctx context.Context, p Polarity, lines []LineDelta) error {
	return r.apply(ctx, net(lines, p.CreateFactor(), nil, decimal.Zero))
}

// ApplyReverse undoes the stock effect of an existing document (delete,
// void).
func (r *Reconciler) ApplyReverse(ctx context.Context, p Polarity, lines []LineDelta) error {
	return r.apply(ctx, net(lines, p.CreateFactor().Neg(), nil, decimal.Zero))
}

// ApplyReplace reverses the old line set and applies the new one as a
// single netted mutation, so an update never observes (or persists) the
// intermediate reversed state and stock ends up reflecting only the new
// lines.
func (r *Reconciler) ApplyReplace(ctx context.Context, p Polarity, oldLines, newLines []LineDelta) error {
	factor := p.CreateFactor()
	return r.apply(ctx, net(newLines, factor, oldLines, factor.Neg()))
}

// net merges two weighted line sets into one delta per product, ordered by
// product ID so concurrent transactions take row locks in the same order.
func net(a []LineDelta, fa decimal.Decimal, b []LineDelta, fb decimal.Decimal) []LineDelta {
	sums := make(map[id.ID]decimal.Decimal)
	for _, l := range a {
		sums[l.ProductID] = sums[l.ProductID].Add(l.Quantity.Mul(fa))
	}
	for _, l := range b {
		sums[l.ProductID] = sums[l.ProductID].Add(l.Quantity.Mul(fb))
	}

	deltas := make([]LineDelta, 0, len(sums))
	for pid, qty := range sums {
		deltas = append(deltas, LineDelta{ProductID: pid, Quantity: qty})
	}
	sort.Slice(deltas, func(i, j int) bool {
		return deltas[i].ProductID.String() < deltas[j].ProductID.String()
	})
	return deltas
}

func (r *Reconciler) apply(ctx context.Context, deltas []LineDelta) error {
	// Lock and validate every product before mutating any of them. The
	// locks are held until the surrounding transaction ends, so the
	// balances cannot change between check and adjust.
	for _, d := range deltas {
		balance, err := r.stock.GetStockForUpdate(ctx, d.ProductID)
		if err != nil {
			return err
		}
		if balance.Add(d.Quantity).IsNegative() {
			return apperror.NewInsufficientStock(
				d.ProductID.String(),
				d.Quantity.Neg().String(),
				balance.String(),
			)
		}
	}

	for _, d := range deltas {
		if d.Quantity.IsZero() {
			continue
		}
		if err := r.stock.AdjustStock(ctx, d.ProductID, d.Quantity); err != nil {
			return err
		}
	}

	return nil
}
