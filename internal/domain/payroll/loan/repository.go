package loan

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/internal/domain/catalogs/employee"
	"backoffice/internal/domain/catalogs/loantype"
)

// Repository defines persistence for loans and their schedules.
type Repository interface {
	Create(ctx context.Context, l *Loan) error

	// Update persists header changes with optimistic locking
	Update(ctx context.Context, l *Loan) error

	// Delete removes the loan and its schedule physically
	Delete(ctx context.Context, loanID id.ID) error

	GetByID(ctx context.Context, loanID id.ID) (*Loan, error)

	// SaveSchedule replaces the installment set of a loan
	SaveSchedule(ctx context.Context, loanID id.ID, schedule []Installment) error

	GetSchedule(ctx context.Context, loanID id.ID) ([]Installment, error)

	// HasSchedule reports whether any installments exist for the loan
	HasSchedule(ctx context.Context, loanID id.ID) (bool, error)

	List(ctx context.Context, filter Filter) (domain.ListResult[*Loan], error)
}

// Filter narrows loan listings. EmployeeID and Status are exact matches;
// the embedded filter contributes pagination, ordering and the inactive
// (annulled) toggle.
type Filter struct {
	domain.ListFilter

	EmployeeID id.ID
	Status     Status
}

// EmployeeLookup resolves employees referenced by loans.
type EmployeeLookup interface {
	GetByID(ctx context.Context, employeeID id.ID) (*employee.Employee, error)
}

// LoanTypeLookup resolves loan types and the rates they carry.
type LoanTypeLookup interface {
	GetByID(ctx context.Context, loanTypeID id.ID) (*loantype.LoanType, error)
}
