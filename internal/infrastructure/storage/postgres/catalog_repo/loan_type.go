package catalog_repo

import (
	"backoffice/internal/domain/catalogs/loantype"
	"backoffice/internal/infrastructure/storage/postgres"
)

// LoanTypeRepo is the PostgreSQL repository for loan types.
type LoanTypeRepo struct {
	*BaseCatalogRepo[*loantype.LoanType]
}

// NewLoanTypeRepo creates a loan type repository.
func NewLoanTypeRepo(txManager *postgres.TxManager) *LoanTypeRepo {
	return &LoanTypeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"loan_types",
			SearchFields{"description"},
			func() *loantype.LoanType { return &loantype.LoanType{} },
		),
	}
}
