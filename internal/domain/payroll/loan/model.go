// Package loan provides the employee loan ledger: loans granted against
// payroll, their interest terms and the amortization schedule that pays
// them down.
package loan

import (
	"context"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
)

// Status is the lifecycle state of a loan.
type Status string

const (
	// StatusPending means the loan is open and still being paid down.
	StatusPending Status = "PEND"
	// StatusPaid means the balance reached zero.
	StatusPaid Status = "PAG"
	// StatusAnnulled means the loan was cancelled before completion.
	StatusAnnulled Status = "ANU"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusAnnulled:
		return true
	}
	return false
}

// Loan is money advanced to an employee, repaid in equal monthly
// installments. Interest is flat: computed once on the principal at the
// loan type's rate, never compounded.
type Loan struct {
	entity.BaseEntity

	EmployeeID id.ID `db:"employee_id" json:"employeeId"`
	LoanTypeID id.ID `db:"loan_type_id" json:"loanTypeId"`

	RequestDate time.Time `db:"request_date" json:"requestDate"`

	Principal    types.Money `db:"principal" json:"principal"`
	Interest     types.Money `db:"interest" json:"interest"`
	TotalPayable types.Money `db:"total_payable" json:"totalPayable"`

	// Balance is the outstanding amount; starts at TotalPayable
	Balance types.Money `db:"balance" json:"balance"`

	InstallmentCount int    `db:"installment_count" json:"installmentCount"`
	Status           Status `db:"status" json:"status"`

	Notes string `db:"notes" json:"notes,omitempty"`

	// Table part: the amortization schedule
	Schedule []Installment `db:"-" json:"schedule,omitempty"`
}

// Installment is one scheduled repayment. Remaining is the installment's
// own unpaid balance: it starts at the full amount and is drawn down as
// payments against this row are recorded.
type Installment struct {
	ID       id.ID `db:"id" json:"id"`
	LoanID   id.ID `db:"loan_id" json:"loanId"`
	Sequence int   `db:"sequence" json:"sequence"`

	DueDate   time.Time   `db:"due_date" json:"dueDate"`
	Amount    types.Money `db:"amount" json:"amount"`
	Remaining types.Money `db:"remaining" json:"remaining"`

	Paid   bool       `db:"paid" json:"paid"`
	PaidAt *time.Time `db:"paid_at" json:"paidAt,omitempty"`
}

// New creates a pending loan requested today.
func New(employeeID, loanTypeID id.ID) *Loan {
	return &Loan{
		BaseEntity:  entity.NewBaseEntity(),
		EmployeeID:  employeeID,
		LoanTypeID:  loanTypeID,
		RequestDate: time.Now().UTC(),
		Status:      StatusPending,
	}
}

// Validate implements entity.Validatable.
func (l *Loan) Validate(ctx context.Context) error {
	if id.IsNil(l.EmployeeID) {
		return apperror.NewValidation("employee is required").
			WithDetail("field", "employeeId")
	}
	if id.IsNil(l.LoanTypeID) {
		return apperror.NewValidation("loan type is required").
			WithDetail("field", "loanTypeId")
	}
	if !l.Principal.IsPositive() {
		return apperror.NewValidation("principal must be positive").
			WithDetail("field", "principal")
	}
	if l.InstallmentCount < 1 {
		return apperror.NewValidation("installment count must be at least 1").
			WithDetail("field", "installmentCount")
	}
	if !l.Status.Valid() {
		return apperror.NewValidation("unknown loan status").
			WithDetail("field", "status").
			WithDetail("status", string(l.Status))
	}
	return nil
}

// IsPending reports whether the loan is still open.
func (l *Loan) IsPending() bool { return l.Status == StatusPending }

var _ entity.Validatable = (*Loan)(nil)
