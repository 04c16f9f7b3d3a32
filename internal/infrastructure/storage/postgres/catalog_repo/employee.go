package catalog_repo

import (
	"backoffice/internal/domain/catalogs/employee"
	"backoffice/internal/infrastructure/storage/postgres"
)

// EmployeeRepo is the PostgreSQL repository for employees.
type EmployeeRepo struct {
	*BaseCatalogRepo[*employee.Employee]
}

// NewEmployeeRepo creates an employee repository.
func NewEmployeeRepo(txManager *postgres.TxManager) *EmployeeRepo {
	return &EmployeeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"employees",
			SearchFields{"names"},
			func() *employee.Employee { return &employee.Employee{} },
		),
	}
}
