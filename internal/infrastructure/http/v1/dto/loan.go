package dto

import (
	"time"

	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/payroll/loan"
)

// CreateLoanRequest is the request body for granting a loan. Interest,
// total and the amortization schedule are derived server-side.
type CreateLoanRequest struct {
	EmployeeID       string      `json:"employeeId" binding:"required"`
	LoanTypeID       string      `json:"loanTypeId" binding:"required"`
	RequestDate      *time.Time  `json:"requestDate"`
	Principal        types.Money `json:"principal" binding:"required"`
	InstallmentCount int         `json:"installmentCount" binding:"required,min=1"`
	Notes            string      `json:"notes"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateLoanRequest) ToEntity() (*loan.Loan, error) {
	employeeID, err := id.Parse(r.EmployeeID)
	if err != nil {
		return nil, err
	}
	loanTypeID, err := id.Parse(r.LoanTypeID)
	if err != nil {
		return nil, err
	}

	l := loan.New(employeeID, loanTypeID)
	if r.RequestDate != nil {
		l.RequestDate = *r.RequestDate
	}
	l.Principal = r.Principal
	l.InstallmentCount = r.InstallmentCount
	l.Notes = r.Notes
	return l, nil
}

// UpdateLoanRequest is the request body for updating a loan. Which fields
// may actually change depends on the loan's status; out-of-policy changes
// are rejected.
type UpdateLoanRequest struct {
	LoanTypeID       string      `json:"loanTypeId" binding:"required"`
	RequestDate      *time.Time  `json:"requestDate"`
	Principal        types.Money `json:"principal" binding:"required"`
	InstallmentCount int         `json:"installmentCount" binding:"required,min=1"`
	Notes            string      `json:"notes"`
	Version          int         `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing loan.
func (r *UpdateLoanRequest) ApplyTo(l *loan.Loan) error {
	loanTypeID, err := id.Parse(r.LoanTypeID)
	if err != nil {
		return err
	}

	l.LoanTypeID = loanTypeID
	if r.RequestDate != nil {
		l.RequestDate = *r.RequestDate
	}
	l.Principal = r.Principal
	l.InstallmentCount = r.InstallmentCount
	l.Notes = r.Notes
	l.Version = r.Version
	return nil
}

// InstallmentResponse is one schedule row in responses.
type InstallmentResponse struct {
	ID        string     `json:"id"`
	Sequence  int        `json:"sequence"`
	DueDate   time.Time  `json:"dueDate"`
	Amount    string     `json:"amount"`
	Remaining string     `json:"remaining"`
	Paid      bool       `json:"paid"`
	PaidAt    *time.Time `json:"paidAt,omitempty"`
}

// LoanResponse is the response body for a loan.
type LoanResponse struct {
	BaseResponse
	EmployeeID       string                `json:"employeeId"`
	LoanTypeID       string                `json:"loanTypeId"`
	RequestDate      time.Time             `json:"requestDate"`
	Principal        string                `json:"principal"`
	Interest         string                `json:"interest"`
	TotalPayable     string                `json:"totalPayable"`
	Balance          string                `json:"balance"`
	InstallmentCount int                   `json:"installmentCount"`
	Status           loan.Status           `json:"status"`
	Notes            string                `json:"notes,omitempty"`
	Schedule         []InstallmentResponse `json:"schedule,omitempty"`
}

// FromLoan creates a response DTO from a domain entity.
func FromLoan(l *loan.Loan) *LoanResponse {
	schedule := make([]InstallmentResponse, 0, len(l.Schedule))
	for _, inst := range l.Schedule {
		schedule = append(schedule, InstallmentResponse{
			ID:        inst.ID.String(),
			Sequence:  inst.Sequence,
			DueDate:   inst.DueDate,
			Amount:    inst.Amount.StringFixed(2),
			Remaining: inst.Remaining.StringFixed(2),
			Paid:      inst.Paid,
			PaidAt:    inst.PaidAt,
		})
	}
	return &LoanResponse{
		BaseResponse:     FromBaseEntity(l.BaseEntity),
		EmployeeID:       l.EmployeeID.String(),
		LoanTypeID:       l.LoanTypeID.String(),
		RequestDate:      l.RequestDate,
		Principal:        l.Principal.StringFixed(2),
		Interest:         l.Interest.StringFixed(2),
		TotalPayable:     l.TotalPayable.StringFixed(2),
		Balance:          l.Balance.StringFixed(2),
		InstallmentCount: l.InstallmentCount,
		Status:           l.Status,
		Notes:            l.Notes,
		Schedule:         schedule,
	}
}
