package catalog_repo

import (
	"backoffice/internal/domain/catalogs/product"
	"backoffice/internal/infrastructure/storage/postgres"
)

// ProductRepo is the PostgreSQL repository for products.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"products",
			SearchFields{"description", "line"},
			func() *product.Product { return &product.Product{} },
		),
	}
}
