package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFields_Predicate(t *testing.T) {
	fields := SearchFields{"description", "line"}

	pred := fields.Predicate("wid")
	require.NotNil(t, pred)

	sql, args, err := squirrel.StatementBuilder.
		PlaceholderFormat(squirrel.Dollar).
		Select("id").From("products").Where(pred).ToSql()
	require.NoError(t, err)

	assert.Contains(t, sql, "description ILIKE $1")
	assert.Contains(t, sql, "line ILIKE $2")
	assert.Contains(t, sql, " OR ")
	assert.Equal(t, []interface{}{"%wid%", "%wid%"}, args)
}

func TestSearchFields_Predicate_Empty(t *testing.T) {
	assert.Nil(t, SearchFields{"description"}.Predicate(""))
	assert.Nil(t, SearchFields{}.Predicate("term"))
}
