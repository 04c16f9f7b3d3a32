package documents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

// fakeStock tracks balances and every adjustment made.
type fakeStock struct {
	balances    map[id.ID]types.Quantity
	adjustments []LineDelta
}

func newFakeStock() *fakeStock {
	return &fakeStock{balances: make(map[id.ID]types.Quantity)}
}

func (f *fakeStock) set(productID id.ID, qty string) {
	f.balances[productID] = types.MustMoney(qty)
}

func (f *fakeStock) GetStockForUpdate(ctx context.Context, productID id.ID) (types.Quantity, error) {
	balance, ok := f.balances[productID]
	if !ok {
		return types.Quantity{}, apperror.NewNotFound("product", productID.String())
	}
	return balance, nil
}

func (f *fakeStock) AdjustStock(ctx context.Context, productID id.ID, delta types.Quantity) error {
	f.balances[productID] = f.balances[productID].Add(delta)
	f.adjustments = append(f.adjustments, LineDelta{ProductID: productID, Quantity: delta})
	return nil
}

func lines(pairs ...any) []LineDelta {
	out := make([]LineDelta, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, LineDelta{
			ProductID: pairs[i].(id.ID),
			Quantity:  types.MustMoney(pairs[i+1].(string)),
		})
	}
	return out
}

func TestReconciler_SaleDecrementsStock(t *testing.T) {
	ctx := context.Background()
	stock := newFakeStock()
	p1 := id.New()
	stock.set(p1, "10")

	r := NewReconciler(stock)
	require.NoError(t, r.ApplyCreate(ctx, Sale, lines(p1, "3")))

	assert.Equal(t, "7", stock.balances[p1].String())
}

func TestReconciler_PurchaseIncrementsStock(t *testing.T) {
	ctx := context.Background()
	stock := newFakeStock()
	p1 := id.New()
	stock.set(p1, "2")

	r := NewReconciler(stock)
	require.NoError(t, r.ApplyCreate(ctx, Purchase, lines(p1, "5")))

	assert.Equal(t, "7", stock.balances[p1].String())
}

func TestReconciler_OverdrawRejectedBeforeAnyWrite(t *testing.T) {
	ctx := context.Background()
	stock := newFakeStock()
	p1, p2 := id.New(), id.New()
	stock.set(p1, "10")
	stock.set(p2, "1")

	r := NewReconciler(stock)
	err := r.ApplyCreate(ctx, Sale, lines(p1, "5", p2, "2"))

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Empty(t, stock.adjustments, "no product may be mutated when any line overdraws")
	assert.Equal(t, "10", stock.balances[p1].String())
	assert.Equal(t, "1", stock.balances[p2].String())
}

func TestReconciler_ReverseRestoresBalance(t *testing.T) {
	ctx := context.Background()
	stock := newFakeStock()
	p1 := id.New()
	stock.set(p1, "10")

	r := NewReconciler(stock)
	sold := lines(p1, "4")
	require.NoError(t, r.ApplyCreate(ctx, Sale, sold))
	require.NoError(t, r.ApplyReverse(ctx, Sale, sold))

	assert.Equal(t, "10", stock.balances[p1].String())
}

func TestReconciler_ReplaceNetsPerProduct(t *testing.T) {
	ctx := context.Background()
	stock := newFakeStock()
	p1, p2, p3 := id.New(), id.New(), id.New()
	stock.set(p1, "10")
	stock.set(p2, "10")
	stock.set(p3, "10")

	r := NewReconciler(stock)
	oldLines := lines(p1, "2", p2, "3")
	require.NoError(t, r.ApplyCreate(ctx, Sale, oldLines))

	// p1 grows to 5, p2 drops out, p3 comes in
	newLines := lines(p1, "5", p3, "1")
	require.NoError(t, r.ApplyReplace(ctx, Sale, oldLines, newLines))

	assert.Equal(t, "5", stock.balances[p1].String())
	assert.Equal(t, "10", stock.balances[p2].String())
	assert.Equal(t, "9", stock.balances[p3].String())
}

func TestReconciler_ReplaceAllowsTemporarilyImpossibleSwap(t *testing.T) {
	// With only 1 on hand, reversing 1 and selling 1 again nets to zero.
	// A naive reverse-then-apply would work too, but netting must not
	// reject the no-op.
	ctx := context.Background()
	stock := newFakeStock()
	p1 := id.New()
	stock.set(p1, "0")

	r := NewReconciler(stock)
	same := lines(p1, "1")
	require.NoError(t, r.ApplyReplace(ctx, Sale, same, same))

	assert.Equal(t, "0", stock.balances[p1].String())
	assert.Empty(t, stock.adjustments, "zero deltas must not touch the row")
}

func TestReconciler_DuplicateLinesAreMerged(t *testing.T) {
	ctx := context.Background()
	stock := newFakeStock()
	p1 := id.New()
	stock.set(p1, "10")

	r := NewReconciler(stock)
	require.NoError(t, r.ApplyCreate(ctx, Sale, lines(p1, "2", p1, "3")))

	assert.Equal(t, "5", stock.balances[p1].String())
	assert.Len(t, stock.adjustments, 1, "one netted adjustment per product")
}

func TestReconciler_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	stock := newFakeStock()

	r := NewReconciler(stock)
	err := r.ApplyCreate(ctx, Sale, lines(id.New(), "1"))

	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
