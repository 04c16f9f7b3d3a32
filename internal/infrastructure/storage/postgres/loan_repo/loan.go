// Package loan_repo provides the PostgreSQL repository for the loan
// ledger.
package loan_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/internal/domain/payroll/loan"
	"backoffice/internal/infrastructure/storage/postgres"
)

const (
	loansTable        = "loans"
	installmentsTable = "loan_installments"
)

// LoanRepo stores loans and their amortization schedules.
type LoanRepo struct {
	txManager  *postgres.TxManager
	selectCols []string
}

var _ loan.Repository = (*LoanRepo)(nil)

// NewLoanRepo creates a loan repository.
func NewLoanRepo(txManager *postgres.TxManager) *LoanRepo {
	return &LoanRepo{
		txManager:  txManager,
		selectCols: postgres.ExtractDBColumns[loan.Loan](),
	}
}

func (r *LoanRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a new loan header.
func (r *LoanRepo) Create(ctx context.Context, l *loan.Loan) error {
	data := postgres.StructToMap(l)

	q := r.builder().
		Insert(loansTable).
		SetMap(data)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert loan: %w", err)
	}

	return nil
}

// Update updates a loan header with optimistic locking.
func (r *LoanRepo) Update(ctx context.Context, l *loan.Loan) error {
	data := postgres.StructToMap(l)

	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("loan has no 'version' field or it is not an int")
	}

	delete(data, "id")
	delete(data, "created_at")
	delete(data, "created_by")
	delete(data, "version")
	delete(data, "updated_at")

	q := r.builder().
		Update(loansTable).
		SetMap(data).
		Set("version", squirrel.Expr("version + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": l.ID}).
		Where(squirrel.Eq{"version": version})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	result, err := querier.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(loansTable, l.ID)
	}

	return nil
}

// Delete removes the loan and its schedule physically.
func (r *LoanRepo) Delete(ctx context.Context, loanID id.ID) error {
	querier := r.txManager.GetQuerier(ctx)

	if _, err := querier.Exec(ctx, "DELETE FROM "+installmentsTable+" WHERE loan_id = $1", loanID); err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}

	tag, err := querier.Exec(ctx, "DELETE FROM "+loansTable+" WHERE id = $1", loanID)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("loan", loanID.String())
	}

	return nil
}

// GetByID retrieves a loan header.
func (r *LoanRepo) GetByID(ctx context.Context, loanID id.ID) (*loan.Loan, error) {
	q := r.builder().
		Select(r.selectCols...).
		From(loansTable).
		Where(squirrel.Eq{"id": loanID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	l := &loan.Loan{}
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, l, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("loan", loanID.String())
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}

	return l, nil
}

// SaveSchedule replaces the loan's installment set.
func (r *LoanRepo) SaveSchedule(ctx context.Context, loanID id.ID, schedule []loan.Installment) error {
	querier := r.txManager.GetQuerier(ctx)

	if _, err := querier.Exec(ctx, "DELETE FROM "+installmentsTable+" WHERE loan_id = $1", loanID); err != nil {
		return fmt.Errorf("delete existing schedule: %w", err)
	}

	if len(schedule) == 0 {
		return nil
	}

	q := r.builder().
		Insert(installmentsTable).
		Columns("id", "loan_id", "sequence", "due_date", "amount", "remaining", "paid", "paid_at")
	for _, inst := range schedule {
		q = q.Values(inst.ID, loanID, inst.Sequence, inst.DueDate, inst.Amount, inst.Remaining, inst.Paid, inst.PaidAt)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert schedule: %w", err)
	}
	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}

	return nil
}

// GetSchedule retrieves the loan's installments in order.
func (r *LoanRepo) GetSchedule(ctx context.Context, loanID id.ID) ([]loan.Installment, error) {
	q := r.builder().
		Select("id", "loan_id", "sequence", "due_date", "amount", "remaining", "paid", "paid_at").
		From(installmentsTable).
		Where(squirrel.Eq{"loan_id": loanID}).
		OrderBy("sequence")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	schedule := make([]loan.Installment, 0)
	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, querier, &schedule, sql, args...); err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}

	return schedule, nil
}

// HasSchedule reports whether any installments exist for the loan.
func (r *LoanRepo) HasSchedule(ctx context.Context, loanID id.ID) (bool, error) {
	var count int64
	querier := r.txManager.GetQuerier(ctx)
	err := querier.QueryRow(ctx,
		"SELECT COUNT(*) FROM "+installmentsTable+" WHERE loan_id = $1", loanID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count schedule: %w", err)
	}
	return count > 0, nil
}

// List retrieves loans with filtering and pagination. Search matches the
// loan's notes as a substring.
func (r *LoanRepo) List(ctx context.Context, filter loan.Filter) (domain.ListResult[*loan.Loan], error) {
	result := domain.ListResult[*loan.Loan]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.builder().
		Select(r.selectCols...).
		From(loansTable)

	if !filter.IncludeInactive {
		q = q.Where(squirrel.NotEq{"status": loan.StatusAnnulled})
	}
	if !id.IsNil(filter.EmployeeID) {
		q = q.Where(squirrel.Eq{"employee_id": filter.EmployeeID})
	}
	if filter.Status != "" {
		q = q.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"notes": "%" + filter.Search + "%"})
	}
	if len(filter.IDs) > 0 {
		q = q.Where(squirrel.Eq{"id": filter.IDs})
	}

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count loans: %w", err)
	}

	q = q.OrderBy("request_date DESC")
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	items := make([]*loan.Loan, 0, filter.Limit)
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return result, fmt.Errorf("list loans: %w", err)
	}
	result.Items = items

	return result, nil
}
