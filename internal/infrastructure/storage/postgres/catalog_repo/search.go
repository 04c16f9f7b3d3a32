package catalog_repo

import "github.com/Masterminds/squirrel"

// SearchFields is the explicit, typed declaration of which columns a
// catalog's free-text search covers. Each repository states its own set;
// there is no implicit "search everything" fallback.
type SearchFields []string

// Predicate builds the case-insensitive substring match across the
// declared fields. Returns nil when there is nothing to search on.
func (f SearchFields) Predicate(term string) squirrel.Sqlizer {
	if term == "" || len(f) == 0 {
		return nil
	}
	pattern := "%" + term + "%"
	or := make(squirrel.Or, 0, len(f))
	for _, col := range f {
		or = append(or, squirrel.ILike{col: pattern})
	}
	return or
}
