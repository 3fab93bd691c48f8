package iocollect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rbhughes/purr-petra/pkg/petra"
	"github.com/rbhughes/purr-petra/pkg/recipe"
)

// stringify renders a raw column value for identifier handling.
// Integral floats lose their fraction dot so wsn 621.0 becomes "621".
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// decodeRows applies per-column decoders to a raw result, returning
// one column-name-to-value map per row. Decoders run column-wise: the
// decoder is resolved once per column and applied down the rows.
func decodeRows(res *petra.Result, r *recipe.Recipe) ([]map[string]any, error) {
	rows := make([]map[string]any, len(res.Rows))
	for i := range rows {
		rows[i] = make(map[string]any, len(res.Columns))
	}

	for c, col := range res.Columns {
		kind := r.KindFor(col.Name, col.TypeName)
		for i, raw := range res.Rows {
			val, err := kind.Apply(raw[c])
			if err != nil {
				return nil, fmt.Errorf("column %s: %w", col.Name, err)
			}
			rows[i][col.Name] = val
		}
	}
	return rows, nil
}

// aggregate merges rows by the aggregator's group key. Columns under
// the child prefix become arrays of per-row values, except the
// flatten column whose per-row lists are concatenated into one list
// (a row with no child values still contributes an empty list, it is
// not collapsed to null). All other columns keep the first-seen value
// per group. Group order follows first appearance.
func aggregate(rows []map[string]any, cols []string, agg recipe.Aggregator) []map[string]any {
	var order []any
	grouped := make(map[any][]map[string]any)
	for _, row := range rows {
		key := row[agg.GroupBy]
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], row)
	}

	out := make([]map[string]any, 0, len(order))
	for _, key := range order {
		members := grouped[key]
		doc := make(map[string]any, len(cols))
		for _, col := range cols {
			switch {
			case col == agg.Flatten:
				flat := []any{}
				for _, m := range members {
					if vals, ok := m[col].([]any); ok {
						flat = append(flat, vals...)
					}
				}
				doc[col] = flat
			case strings.HasPrefix(col, agg.ChildPrefix):
				vals := make([]any, len(members))
				for i, m := range members {
					vals[i] = m[col]
				}
				doc[col] = vals
			default:
				doc[col] = members[0][col]
			}
		}
		out = append(out, doc)
	}
	return out
}

// assemble turns one decoded row into a nested document: each column
// lands under the entity of its longest matching prefix with the
// prefix stripped from the key. A column matching no prefix is
// dropped.
func assemble(row map[string]any, cols []string, r *recipe.Recipe) map[string]any {
	doc := make(map[string]any)
	for _, col := range cols {
		entity, field, ok := r.EntityFor(col)
		if !ok {
			continue
		}
		sub, ok := doc[entity].(map[string]any)
		if !ok {
			sub = make(map[string]any)
			doc[entity] = sub
		}
		sub[field] = row[col]
	}
	return doc
}
