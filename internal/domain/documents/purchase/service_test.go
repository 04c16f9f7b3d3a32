package purchase

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/domain/documents"
	"backoffice/pkg/numerator"
)

// --- Fakes ---

type fakeRepo struct {
	purchases map[id.ID]*Purchase
	lines     map[id.ID][]Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		purchases: make(map[id.ID]*Purchase),
		lines:     make(map[id.ID][]Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, p *Purchase) error {
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, p *Purchase) error {
	if _, ok := r.purchases[p.ID]; !ok {
		return apperror.NewNotFound("purchase", p.ID.String())
	}
	cp := *p
	r.purchases[p.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, purchaseID id.ID) error {
	if _, ok := r.purchases[purchaseID]; !ok {
		return apperror.NewNotFound("purchase", purchaseID.String())
	}
	delete(r.purchases, purchaseID)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	p, ok := r.purchases[purchaseID]
	if !ok {
		return nil, apperror.NewNotFound("purchase", purchaseID.String())
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, purchaseID id.ID, lines []Line) error {
	r.lines[purchaseID] = append([]Line(nil), lines...)
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, purchaseID id.ID) ([]Line, error) {
	return r.lines[purchaseID], nil
}

func (r *fakeRepo) DeleteLines(ctx context.Context, purchaseID id.ID) error {
	delete(r.lines, purchaseID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Purchase], error) {
	result := domain.ListResult[*Purchase]{Limit: filter.Limit, Offset: filter.Offset}
	for _, p := range r.purchases {
		if !filter.IncludeInactive && !p.Active {
			continue
		}
		cp := *p
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

type fakeProducts struct {
	products map[id.ID]*product.Product
}

func (f *fakeProducts) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, apperror.NewNotFound("product", productID.String())
	}
	return p, nil
}

type fakeCosts struct {
	costs map[id.ID]types.Money
}

func (f *fakeCosts) UpdateCost(ctx context.Context, productID id.ID, cost types.Money) error {
	f.costs[productID] = cost
	return nil
}

type fakeStock struct {
	balances map[id.ID]types.Quantity
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
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type seqRow struct {
	val int64
}

func (r seqRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.val
	return nil
}

type seqQuerier struct {
	current int64
}

func (q *seqQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	q.current++
	return seqRow{val: q.current}
}

// --- Fixture ---

type purchaseFixture struct {
	service    *Service
	repo       *fakeRepo
	stock      *fakeStock
	costs      *fakeCosts
	supplierID id.ID
	productID  id.ID
}

// newPurchaseFixture wires a service over one product: cost 6.00, tax
// rate 15%, stock 20.
func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()

	p := product.New("WIDGET")
	p.Price = types.MustMoney("10.00")
	p.Cost = types.MustMoney("6.00")
	p.TaxRate = 15
	p.Stock = types.MustMoney("20")

	stock := &fakeStock{balances: map[id.ID]types.Quantity{p.ID: p.Stock}}
	costs := &fakeCosts{costs: make(map[id.ID]types.Money)}
	repo := newFakeRepo()

	service := NewService(
		repo,
		&fakeProducts{products: map[id.ID]*product.Product{p.ID: p}},
		costs,
		documents.NewReconciler(stock),
		numerator.New(&seqQuerier{}),
		fakeTxManager{},
		nil,
	)

	return &purchaseFixture{
		service:    service,
		repo:       repo,
		stock:      stock,
		costs:      costs,
		supplierID: id.New(),
		productID:  p.ID,
	}
}

func (f *purchaseFixture) balance() string {
	return f.stock.balances[f.productID].String()
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	p := New(f.supplierID)
	err := f.service.Create(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("10"), UnitPrice: types.MustMoney("7.50")},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, p.Number)
	assert.Equal(t, "75.00", p.Subtotal.StringFixed(2))
	assert.Equal(t, "11.25", p.Tax.StringFixed(2))
	assert.Equal(t, "86.25", p.Total.StringFixed(2))
	assert.Equal(t, "30", f.balance(), "received quantity adds to stock")

	require.Len(t, p.Lines, 1)
	assert.Equal(t, "7.50", p.Lines[0].UnitCost.StringFixed(2))
}

func TestService_Create_PropagatesCost(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	p := New(f.supplierID)
	err := f.service.Create(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("5"), UnitPrice: types.MustMoney("6.40")},
		{ProductID: f.productID, Quantity: types.MustMoney("5"), UnitPrice: types.MustMoney("6.80")},
	})
	require.NoError(t, err)

	// when a product repeats, the last line's cost sticks
	assert.Equal(t, "6.80", f.costs.costs[f.productID].StringFixed(2))
	assert.Equal(t, "30", f.balance())
}

func TestService_Create_RequiresLines(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	err := f.service.Create(ctx, New(f.supplierID), nil)
	require.Error(t, err)
	assert.True(t, apperror.IsAppError(err))
}

func TestService_Create_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	err := f.service.Create(ctx, New(f.supplierID), []documents.LineInput{
		{ProductID: id.New(), Quantity: types.MustMoney("1"), UnitPrice: types.MustMoney("1.00")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Equal(t, "20", f.balance())
}

func TestService_Update_ReplacesLinesAndNetsStock(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	p := New(f.supplierID)
	require.NoError(t, f.service.Create(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("10"), UnitPrice: types.MustMoney("7.50")},
	}))
	require.Equal(t, "30", f.balance())

	require.NoError(t, f.service.Update(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("4"), UnitPrice: types.MustMoney("7.00")},
	}))

	assert.Equal(t, "24", f.balance(), "stock reflects only the new lines")
	assert.Equal(t, "28.00", p.Subtotal.StringFixed(2))
	assert.Equal(t, "7.00", f.costs.costs[f.productID].StringFixed(2))
}

func TestService_Update_VoidedRejected(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	p := New(f.supplierID)
	require.NoError(t, f.service.Create(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("10"), UnitPrice: types.MustMoney("7.50")},
	}))
	require.NoError(t, f.service.Void(ctx, p.ID))

	err := f.service.Update(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("1"), UnitPrice: types.MustMoney("7.50")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestService_Void_TakesStockBackOut(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	p := New(f.supplierID)
	require.NoError(t, f.service.Create(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("10"), UnitPrice: types.MustMoney("7.50")},
	}))
	require.Equal(t, "30", f.balance())

	require.NoError(t, f.service.Void(ctx, p.ID))

	assert.Equal(t, "20", f.balance())

	stored, err := f.service.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVoided())
	assert.Len(t, stored.Lines, 1, "lines are kept for history")

	err = f.service.Void(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestService_Delete_BlockedWhenStockAlreadySold(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	p := New(f.supplierID)
	require.NoError(t, f.service.Create(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("10"), UnitPrice: types.MustMoney("7.50")},
	}))

	// simulate the received goods being sold on
	f.stock.balances[f.productID] = types.MustMoney("3")

	err := f.service.Delete(ctx, p.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, "3", f.balance(), "balance untouched on failure")
	_, getErr := f.service.GetByID(ctx, p.ID)
	assert.NoError(t, getErr, "purchase still present")
}

func TestService_Delete_TakesStockBackOut(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	p := New(f.supplierID)
	require.NoError(t, f.service.Create(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("10"), UnitPrice: types.MustMoney("7.50")},
	}))

	require.NoError(t, f.service.Delete(ctx, p.ID))

	assert.Equal(t, "20", f.balance())
	_, err := f.service.GetByID(ctx, p.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Delete_AfterVoidSkipsStockReversal(t *testing.T) {
	ctx := context.Background()
	f := newPurchaseFixture(t)

	p := New(f.supplierID)
	require.NoError(t, f.service.Create(ctx, p, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("10"), UnitPrice: types.MustMoney("7.50")},
	}))
	require.NoError(t, f.service.Void(ctx, p.ID))
	require.Equal(t, "20", f.balance())

	require.NoError(t, f.service.Delete(ctx, p.ID))

	assert.Equal(t, "20", f.balance(), "void already reversed the receipt")
}
