package iocollect

import (
	"strings"

	"github.com/rbhughes/purr-petra/pkg/recipe"
)

// makeWhereClause builds the UWI part of an identifier query's WHERE
// clause. The clause starts "WHERE 1=1" so appending is uniform:
// "WHERE 1=1 AND u.uwi LIKE '0123%' OR u.uwi LIKE '4567'". The well
// table is always aliased u in identifier queries, so the filter
// column is fixed.
func makeWhereClause(uwis []string) string {
	const col = "u.uwi"
	clause := "WHERE 1=1"
	if len(uwis) > 0 {
		likes := make([]string, len(uwis))
		for i, uwi := range uwis {
			likes[i] = col + " LIKE '" + uwi + "'"
		}
		clause += " AND " + strings.Join(likes, " OR ")
	}
	return clause
}

// makeIDInClause builds the identifier membership clause for one
// batch. A single key over all-numeric identifiers compares directly;
// anything else concatenates the key columns with '-' separators as
// text and compares against the quoted identifiers.
func makeIDInClause(keys []string, batch []ident) string {
	clause := "WHERE 1=1 "

	numeric := len(keys) == 1
	for _, id := range batch {
		if !id.numeric {
			numeric = false
			break
		}
	}

	if numeric {
		vals := make([]string, len(batch))
		for i, id := range batch {
			vals[i] = id.raw
		}
		return clause + "AND " + keys[0] + " IN (" + strings.Join(vals, ",") + ")"
	}

	casts := make([]string, len(keys))
	for i, k := range keys {
		casts[i] = "CAST(" + k + " AS VARCHAR)"
	}
	vals := make([]string, len(batch))
	for i, id := range batch {
		vals[i] = id.literal()
	}
	return clause + "AND " + strings.Join(casts, " || '-' || ") +
		" IN (" + strings.Join(vals, ",") + ")"
}

// buildSelectors renders one selector query per batch.
func buildSelectors(r *recipe.Recipe, batches [][]ident) []string {
	selectors := make([]string, len(batches))
	for i, batch := range batches {
		in := makeIDInClause(r.IdentifierKeys, batch)
		selectors[i] = strings.Replace(r.Selector, recipe.WherePlaceholder, in, 1)
	}
	return selectors
}
