package catalog_repo

import (
	"backoffice/internal/domain/catalogs/category"
	"backoffice/internal/infrastructure/storage/postgres"
)

// CategoryRepo is the PostgreSQL repository for categories.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates a category repository.
func NewCategoryRepo(txManager *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			"categories",
			SearchFields{"description"},
			func() *category.Category { return &category.Category{} },
		),
	}
}
