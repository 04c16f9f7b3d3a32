package invoice

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
	invoices map[id.ID]*Invoice
	lines    map[id.ID][]Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		invoices: make(map[id.ID]*Invoice),
		lines:    make(map[id.ID][]Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, inv *Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, inv *Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return apperror.NewNotFound("invoice", inv.ID.String())
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, invoiceID id.ID) error {
	if _, ok := r.invoices[invoiceID]; !ok {
		return apperror.NewNotFound("invoice", invoiceID.String())
	}
	delete(r.invoices, invoiceID)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error) {
	inv, ok := r.invoices[invoiceID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invoiceID.String())
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, invoiceID id.ID, lines []Line) error {
	r.lines[invoiceID] = append([]Line(nil), lines...)
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, invoiceID id.ID) ([]Line, error) {
	return r.lines[invoiceID], nil
}

func (r *fakeRepo) DeleteLines(ctx context.Context, invoiceID id.ID) error {
	delete(r.lines, invoiceID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error) {
	result := domain.ListResult[*Invoice]{Limit: filter.Limit, Offset: filter.Offset}
	for _, inv := range r.invoices {
		if !filter.IncludeInactive && !inv.Active {
			continue
		}
		cp := *inv
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

// seqRow satisfies pgx.Row for the numerator's sequence query.
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

type invoiceFixture struct {
	service    *Service
	repo       *fakeRepo
	stock      *fakeStock
	customerID id.ID
	productID  id.ID
}

// newInvoiceFixture wires a service over one product: price 10.00, tax
// rate 15%, stock 100.
func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	p := product.New("WIDGET")
	p.Price = types.MustMoney("10.00")
	p.Cost = types.MustMoney("6.00")
	p.TaxRate = 15
	p.Stock = types.MustMoney("100")

	stock := &fakeStock{balances: map[id.ID]types.Quantity{p.ID: p.Stock}}
	repo := newFakeRepo()

	service := NewService(
		repo,
		&fakeProducts{products: map[id.ID]*product.Product{p.ID: p}},
		documents.NewReconciler(stock),
		numerator.New(&seqQuerier{}),
		fakeTxManager{},
		nil,
	)

	return &invoiceFixture{
		service:    service,
		repo:       repo,
		stock:      stock,
		customerID: id.New(),
		productID:  p.ID,
	}
}

func (f *invoiceFixture) balance() string {
	return f.stock.balances[f.productID].String()
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	inv := New(f.customerID)
	inv.Payment = types.MustMoney("50.00")
	err := f.service.Create(ctx, inv, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("3"), UnitPrice: types.MustMoney("10.00")},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, inv.Number)
	assert.Equal(t, "30.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "4.50", inv.Tax.StringFixed(2))
	assert.Equal(t, "34.50", inv.Total.StringFixed(2))
	assert.Equal(t, "15.50", inv.Change.StringFixed(2))
	assert.Equal(t, "97", f.balance())

	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "10.00", inv.Lines[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "6.00", inv.Lines[0].Cost.StringFixed(2), "cost is captured at sale time")
}

func TestService_Create_RequiresLines(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	err := f.service.Create(ctx, New(f.customerID), nil)
	require.Error(t, err)
	assert.True(t, apperror.IsAppError(err))
}

func TestService_Create_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	inv := New(f.customerID)
	err := f.service.Create(ctx, inv, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("101"), UnitPrice: types.MustMoney("10.00")},
	})

	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))
	assert.Equal(t, "100", f.balance(), "stock untouched on failure")
}

func TestService_Update_ReplacesLinesAndNetsStock(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	inv := New(f.customerID)
	require.NoError(t, f.service.Create(ctx, inv, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("3"), UnitPrice: types.MustMoney("10.00")},
	}))
	require.Equal(t, "97", f.balance())

	require.NoError(t, f.service.Update(ctx, inv, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("5"), UnitPrice: types.MustMoney("10.00")},
	}))

	assert.Equal(t, "95", f.balance(), "stock reflects only the new lines")
	assert.Equal(t, "50.00", inv.Subtotal.StringFixed(2))
}

func TestService_Update_VoidedRejected(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	inv := New(f.customerID)
	require.NoError(t, f.service.Create(ctx, inv, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("3"), UnitPrice: types.MustMoney("10.00")},
	}))
	require.NoError(t, f.service.Void(ctx, inv.ID))

	err := f.service.Update(ctx, inv, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("1"), UnitPrice: types.MustMoney("10.00")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestService_Void_RestoresStockKeepsRows(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	inv := New(f.customerID)
	require.NoError(t, f.service.Create(ctx, inv, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("4"), UnitPrice: types.MustMoney("10.00")},
	}))
	require.Equal(t, "96", f.balance())

	require.NoError(t, f.service.Void(ctx, inv.ID))

	assert.Equal(t, "100", f.balance())

	stored, err := f.service.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsVoided())
	assert.Len(t, stored.Lines, 1, "lines are kept for history")

	// a second void must be rejected
	err = f.service.Void(ctx, inv.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestService_Delete_RestoresStock(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	inv := New(f.customerID)
	require.NoError(t, f.service.Create(ctx, inv, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("4"), UnitPrice: types.MustMoney("10.00")},
	}))

	require.NoError(t, f.service.Delete(ctx, inv.ID))

	assert.Equal(t, "100", f.balance())
	_, err := f.service.GetByID(ctx, inv.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Delete_AfterVoidSkipsStockReversal(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	inv := New(f.customerID)
	require.NoError(t, f.service.Create(ctx, inv, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("4"), UnitPrice: types.MustMoney("10.00")},
	}))
	require.NoError(t, f.service.Void(ctx, inv.ID))
	require.Equal(t, "100", f.balance())

	require.NoError(t, f.service.Delete(ctx, inv.ID))

	assert.Equal(t, "100", f.balance(), "void already returned the stock")
}

func TestService_List_HidesVoidedByDefault(t *testing.T) {
	ctx := context.Background()
	f := newInvoiceFixture(t)

	kept := New(f.customerID)
	require.NoError(t, f.service.Create(ctx, kept, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("1"), UnitPrice: types.MustMoney("10.00")},
	}))

	voided := New(f.customerID)
	require.NoError(t, f.service.Create(ctx, voided, []documents.LineInput{
		{ProductID: f.productID, Quantity: types.MustMoney("1"), UnitPrice: types.MustMoney("10.00")},
	}))
	require.NoError(t, f.service.Void(ctx, voided.ID))

	result, err := f.service.List(ctx, domain.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)

	all, err := f.service.List(ctx, domain.ListFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
}
