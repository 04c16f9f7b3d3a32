package dto

import (
	"backoffice/internal/core/types"
	"backoffice/internal/domain/catalogs/loantype"
)

// CreateLoanTypeRequest is the request body for creating a loan type.
type CreateLoanTypeRequest struct {
	Description string      `json:"description" binding:"required"`
	RatePercent types.Money `json:"ratePercent"`
}

// ToEntity converts the request to a domain entity.
func (r *CreateLoanTypeRequest) ToEntity() *loantype.LoanType {
	return loantype.New(r.Description, r.RatePercent)
}

// UpdateLoanTypeRequest is the request body for updating a loan type.
type UpdateLoanTypeRequest struct {
	Description string      `json:"description" binding:"required"`
	RatePercent types.Money `json:"ratePercent"`
	Version     int         `json:"version" binding:"required,min=1"`
}

// ApplyTo applies the update to an existing entity.
func (r *UpdateLoanTypeRequest) ApplyTo(t *loantype.LoanType) {
	t.Description = r.Description
	t.RatePercent = r.RatePercent
	t.Version = r.Version
}

// LoanTypeResponse is the response body for a loan type.
type LoanTypeResponse struct {
	BaseResponse
	Description string `json:"description"`
	RatePercent string `json:"ratePercent"`
}

// FromLoanType creates a response DTO from a domain entity.
func FromLoanType(t *loantype.LoanType) *LoanTypeResponse {
	return &LoanTypeResponse{
		BaseResponse: FromBaseEntity(t.BaseEntity),
		Description:  t.Description,
		RatePercent:  t.RatePercent.String(),
	}
}
