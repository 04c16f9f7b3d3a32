package catalog_repo

import (
	"backoffice/internal/domain/catalogs/supplier"
	"backoffice/internal/infrastructure/storage/postgres"
)

// SupplierRepo is the PostgreSQL repository for suppliers.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

// NewSupplierRepo creates a supplier repository.
func NewSupplierRepo(txManager *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"suppliers",
			SearchFields{"name", "ruc"},
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}
