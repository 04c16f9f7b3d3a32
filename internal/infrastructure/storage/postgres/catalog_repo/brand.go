package catalog_repo

import (
	"backoffice/internal/domain/catalogs/brand"
	"backoffice/internal/infrastructure/storage/postgres"
)

// BrandRepo is the PostgreSQL repository for brands.
type BrandRepo struct {
	*BaseCatalogRepo[*brand.Brand]
}

// NewBrandRepo creates a brand repository.
func NewBrandRepo(txManager *postgres.TxManager) *BrandRepo {
	return &BrandRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"brands",
			SearchFields{"description"},
			func() *brand.Brand { return &brand.Brand{} },
		),
	}
}
