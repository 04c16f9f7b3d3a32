package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"backoffice/internal/core/entity"
)

type mockCatalog struct {
	entity.BaseCatalog
	Description string `db:"description" json:"description"`
	Ignored     string `db:"-" json:"-"`
	Untagged    string
}

func TestExtractDBColumns_EmbeddedBase(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{
		"id", "active", "version", "created_at", "updated_at",
		"created_by", "updated_by", "description",
	}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_FlattensEmbedded(t *testing.T) {
	cat := mockCatalog{
		BaseCatalog: entity.NewBaseCatalog(),
		Description: "Widgets",
		Ignored:     "skip me",
		Untagged:    "skip me too",
	}
	cat.Version = 5

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["active"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "Widgets", m["description"])
	assert.NotContains(t, m, "-")

	// pointer receivers get the same result
	m2 := StructToMap(&cat)
	assert.Equal(t, m, m2)
}
