// Package recipe holds the per-asset declarative configuration that
// drives the collection pipeline: identifier and selector query
// templates, the identifier key shape, column transforms, the
// prefix-to-entity map and optional post-aggregation. Recipes are
// loaded from an embedded YAML document into a static registry at
// first use; there is no runtime code loading.
package recipe

import (
	"sort"
	"strings"

	"github.com/rbhughes/purr-petra/pkg/decode"
)

// WherePlaceholder is the literal token in query templates replaced by
// an injected WHERE clause (UWI filter for identifier queries, the
// identifier IN clause for selector queries).
const WherePlaceholder = "_purrWHERE_"

// DefaultBatchSize bounds one selector query's identifier count when a
// recipe does not set its own.
const DefaultBatchSize = 500

// Recipe is the immutable per-asset configuration.
type Recipe struct {
	// Asset is the registry key, e.g. "core" or "dst".
	Asset string `yaml:"-"`

	// Identifier yields the identifier set for the asset: either one
	// row with a comma-delimited "keylist" column or one "key" column
	// value per row.
	Identifier string `yaml:"identifier"`

	// Selector yields the raw rows to assemble, once per batch.
	Selector string `yaml:"selector"`

	// IdentifierKeys is the ordered key shape. One key means plain
	// numeric identifiers; several form a compound key rendered as
	// key1-key2-...
	IdentifierKeys []string `yaml:"identifier_keys"`

	// Transforms maps output column names to decoder names. Columns
	// absent here get a decoder derived from their native type.
	Transforms map[string]decode.Kind `yaml:"xforms"`

	// Prefixes maps column-name prefixes to output entity names. A
	// column matching no prefix is dropped from the document.
	Prefixes map[string]string `yaml:"prefixes"`

	// BatchSize overrides DefaultBatchSize when positive.
	BatchSize int `yaml:"chunk_size"`

	// PostAggregate names an aggregator from Aggregators, empty for
	// none.
	PostAggregate string `yaml:"post_process"`
}

// EffectiveBatchSize returns the recipe's batch size or the default.
func (r *Recipe) EffectiveBatchSize() int {
	if r.BatchSize > 0 {
		return r.BatchSize
	}
	return DefaultBatchSize
}

// KindFor resolves the decoder for a column: the declared transform
// when present, otherwise a default derived from the native type.
func (r *Recipe) KindFor(column, typeName string) decode.Kind {
	if k, ok := r.Transforms[column]; ok {
		return k
	}
	return decode.KindForType(typeName)
}

// EntityFor assigns a column to an output entity by the longest
// matching prefix, returning the entity name and the column name with
// the prefix stripped. ok is false when no prefix matches; such
// columns are dropped.
func (r *Recipe) EntityFor(column string) (entity, field string, ok bool) {
	best := ""
	for prefix := range r.Prefixes {
		if strings.HasPrefix(column, prefix) && len(prefix) > len(best) {
			best = prefix
		}
	}
	if best == "" {
		return "", "", false
	}
	return r.Prefixes[best], strings.TrimPrefix(column, best), true
}

// Aggregator declares a document-grouping post-process: rows are
// grouped by GroupBy; columns under ChildPrefix become array-valued,
// except Flatten whose per-row lists are concatenated into one list
// (empty lists preserved); all other columns keep their first-seen
// value per group.
type Aggregator struct {
	GroupBy     string
	ChildPrefix string
	Flatten     string
}

// Aggregators is the static post-process registry. Recipe names must
// resolve here; an unknown name is a configuration error at load time.
var Aggregators = map[string]Aggregator{
	"dst_agg": {GroupBy: "w_wsn", ChildPrefix: "f_", Flatten: "f_recov"},
	"ip_agg":  {GroupBy: "w_wsn", ChildPrefix: "p_", Flatten: "p_treat"},
}

// AggregatorNames lists the registered post-process names, sorted.
func AggregatorNames() []string {
	names := make([]string, 0, len(Aggregators))
	for name := range Aggregators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
