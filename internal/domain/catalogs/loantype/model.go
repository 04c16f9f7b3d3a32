// Package loantype provides the loan type catalog entity. The rate it
// carries drives the interest computation of the loan ledger.
package loantype

import (
	"context"

	"github.com/shopspring/decimal"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/types"
)

// LoanType classifies employee advances and fixes their interest rate.
type LoanType struct {
	entity.BaseCatalog

	Description string `db:"description" json:"description"`

	// RatePercent is the flat interest rate applied to the principal
	RatePercent types.Money `db:"rate_percent" json:"ratePercent"`
}

// New creates a loan type with a generated ID.
func New(description string, ratePercent types.Money) *LoanType {
	return &LoanType{
		BaseCatalog: entity.NewBaseCatalog(),
		Description: description,
		RatePercent: ratePercent,
	}
}

// Validate implements entity.Validatable.
func (t *LoanType) Validate(ctx context.Context) error {
	if t.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	if t.RatePercent.LessThan(decimal.Zero) {
		return apperror.NewValidation("rate must not be negative").
			WithDetail("field", "ratePercent")
	}
	return nil
}

var _ entity.Validatable = (*LoanType)(nil)
