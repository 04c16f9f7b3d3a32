package loan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
	"backoffice/internal/domain/catalogs/employee"
	"backoffice/internal/domain/catalogs/loantype"
)

// --- Fakes ---

type fakeRepo struct {
	loans     map[id.ID]*Loan
	schedules map[id.ID][]Installment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		loans:     make(map[id.ID]*Loan),
		schedules: make(map[id.ID][]Installment),
	}
}

func (r *fakeRepo) Create(ctx context.Context, l *Loan) error {
	cp := *l
	r.loans[l.ID] = &cp
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, l *Loan) error {
	if _, ok := r.loans[l.ID]; !ok {
		return apperror.NewNotFound("loan", l.ID.String())
	}
	cp := *l
	cp.Version++
	r.loans[l.ID] = &cp
	l.Version = cp.Version
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, loanID id.ID) error {
	if _, ok := r.loans[loanID]; !ok {
		return apperror.NewNotFound("loan", loanID.String())
	}
	delete(r.loans, loanID)
	delete(r.schedules, loanID)
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, loanID id.ID) (*Loan, error) {
	l, ok := r.loans[loanID]
	if !ok {
		return nil, apperror.NewNotFound("loan", loanID.String())
	}
	cp := *l
	return &cp, nil
}

func (r *fakeRepo) SaveSchedule(ctx context.Context, loanID id.ID, schedule []Installment) error {
	r.schedules[loanID] = append([]Installment(nil), schedule...)
	return nil
}

func (r *fakeRepo) GetSchedule(ctx context.Context, loanID id.ID) ([]Installment, error) {
	return r.schedules[loanID], nil
}

func (r *fakeRepo) HasSchedule(ctx context.Context, loanID id.ID) (bool, error) {
	return len(r.schedules[loanID]) > 0, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) (domain.ListResult[*Loan], error) {
	result := domain.ListResult[*Loan]{Limit: filter.Limit, Offset: filter.Offset}
	for _, l := range r.loans {
		cp := *l
		result.Items = append(result.Items, &cp)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

type fakeEmployees struct {
	employees map[id.ID]*employee.Employee
}

func (f *fakeEmployees) GetByID(ctx context.Context, employeeID id.ID) (*employee.Employee, error) {
	e, ok := f.employees[employeeID]
	if !ok {
		return nil, apperror.NewNotFound("employee", employeeID.String())
	}
	return e, nil
}

type fakeLoanTypes struct {
	types map[id.ID]*loantype.LoanType
}

func (f *fakeLoanTypes) GetByID(ctx context.Context, loanTypeID id.ID) (*loantype.LoanType, error) {
	t, ok := f.types[loanTypeID]
	if !ok {
		return nil, apperror.NewNotFound("loan type", loanTypeID.String())
	}
	return t, nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- Fixtures ---

type loanFixture struct {
	service    *Service
	repo       *fakeRepo
	employeeID id.ID
	loanTypeID id.ID
}

func newLoanFixture(t *testing.T, ratePercent string) *loanFixture {
	t.Helper()

	emp := employee.New("GARCIA MARIA", types.MustMoney("800.00"))
	lt := loantype.New("personal", types.MustMoney(ratePercent))

	repo := newFakeRepo()
	service := NewService(
		repo,
		&fakeEmployees{employees: map[id.ID]*employee.Employee{emp.ID: emp}},
		&fakeLoanTypes{types: map[id.ID]*loantype.LoanType{lt.ID: lt}},
		fakeTxManager{},
		nil,
	)

	return &loanFixture{
		service:    service,
		repo:       repo,
		employeeID: emp.ID,
		loanTypeID: lt.ID,
	}
}

func (f *loanFixture) newLoan(principal string, installments int) *Loan {
	l := New(f.employeeID, f.loanTypeID)
	l.Principal = types.MustMoney(principal)
	l.InstallmentCount = installments
	return l
}

// --- Tests ---

func TestService_Create_DerivesTermsAndSchedule(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture(t, "10")

	l := f.newLoan("1000.00", 5)
	require.NoError(t, f.service.Create(ctx, l))

	assert.Equal(t, "100.00", l.Interest.StringFixed(2))
	assert.Equal(t, "1100.00", l.TotalPayable.StringFixed(2))
	assert.Equal(t, "1100.00", l.Balance.StringFixed(2))
	assert.Equal(t, StatusPending, l.Status)

	schedule, err := f.repo.GetSchedule(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, schedule, 5)
	assert.Equal(t, "220.00", schedule[0].Amount.StringFixed(2))
}

func TestService_Create_UnknownLoanType(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture(t, "10")

	l := New(f.employeeID, id.New())
	l.Principal = types.MustMoney("500.00")
	l.InstallmentCount = 3

	err := f.service.Create(ctx, l)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Create_SkipsScheduleWhenPresent(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture(t, "10")

	l := f.newLoan("1000.00", 5)
	// simulate a previously generated schedule surviving a retry
	existing := []Installment{{ID: id.New(), LoanID: l.ID, Sequence: 1, Amount: types.MustMoney("1100.00")}}
	require.NoError(t, f.repo.SaveSchedule(ctx, l.ID, existing))

	require.NoError(t, f.service.Create(ctx, l))

	schedule, err := f.repo.GetSchedule(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, schedule, 1, "existing schedule must not be regenerated")
}

func TestService_Update_PendingRecomputesSchedule(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture(t, "10")

	l := f.newLoan("1000.00", 5)
	require.NoError(t, f.service.Create(ctx, l))

	updated, err := f.service.GetByID(ctx, l.ID)
	require.NoError(t, err)
	updated.Principal = types.MustMoney("2000.00")
	updated.InstallmentCount = 4

	require.NoError(t, f.service.Update(ctx, updated))

	assert.Equal(t, "200.00", updated.Interest.StringFixed(2))
	assert.Equal(t, "2200.00", updated.TotalPayable.StringFixed(2))

	schedule, err := f.repo.GetSchedule(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, schedule, 4)
	assert.Equal(t, "550.00", schedule[0].Amount.StringFixed(2))
}

func TestService_Update_FrozenRejectsFinancialChange(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture(t, "10")

	l := f.newLoan("1000.00", 5)
	require.NoError(t, f.service.Create(ctx, l))
	require.NoError(t, f.service.Annul(ctx, l.ID))

	updated, err := f.service.GetByID(ctx, l.ID)
	require.NoError(t, err)
	updated.Principal = types.MustMoney("9999.00")

	err = f.service.Update(ctx, updated)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestService_Update_FrozenNotesForAdmin(t *testing.T) {
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:   id.New().String(),
		Username: "admin",
		IsAdmin:  true,
	})
	f := newLoanFixture(t, "10")

	l := f.newLoan("1000.00", 5)
	require.NoError(t, f.service.Create(ctx, l))
	require.NoError(t, f.service.Annul(ctx, l.ID))

	updated, err := f.service.GetByID(ctx, l.ID)
	require.NoError(t, err)
	updated.Notes = "written off"

	require.NoError(t, f.service.Update(ctx, updated))

	stored, err := f.service.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, "written off", stored.Notes)
	assert.Equal(t, "1000.00", stored.Principal.StringFixed(2), "financials must be untouched")
}

func TestService_Annul_PendingOnly(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture(t, "10")

	l := f.newLoan("1000.00", 5)
	require.NoError(t, f.service.Create(ctx, l))

	require.NoError(t, f.service.Annul(ctx, l.ID))

	stored, err := f.service.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAnnulled, stored.Status)

	// a second annul hits a non-pending loan
	err = f.service.Annul(ctx, l.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestService_Delete_PaidLoansAreKept(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture(t, "10")

	l := f.newLoan("1000.00", 5)
	require.NoError(t, f.service.Create(ctx, l))

	stored := f.repo.loans[l.ID]
	stored.Status = StatusPaid

	err := f.service.Delete(ctx, l.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	stored.Status = StatusPending
	require.NoError(t, f.service.Delete(ctx, l.ID))

	_, err = f.service.GetByID(ctx, l.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_Create_DefaultsRequestDate(t *testing.T) {
	ctx := context.Background()
	f := newLoanFixture(t, "0")

	l := f.newLoan("100.00", 1)
	l.RequestDate = time.Time{}

	require.NoError(t, f.service.Create(ctx, l))
	assert.False(t, l.RequestDate.IsZero())
}
