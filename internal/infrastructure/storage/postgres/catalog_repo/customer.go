package catalog_repo

import (
	"backoffice/internal/domain/catalogs/customer"
	"backoffice/internal/infrastructure/storage/postgres"
)

// CustomerRepo is the PostgreSQL repository for customers.
type CustomerRepo struct {
	*BaseCatalogRepo[*customer.Customer]
}

// NewCustomerRepo creates a customer repository.
func NewCustomerRepo(txManager *postgres.TxManager) *CustomerRepo {
	return &CustomerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"customers",
			SearchFields{"dni", "first_name", "last_name"},
			func() *customer.Customer { return &customer.Customer{} },
		),
	}
}
