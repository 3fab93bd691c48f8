package iocollect

import (
	"context"
	"log/slog"
	"strings"

	"github.com/rbhughes/purr-petra/pkg/petra"
	"github.com/rbhughes/purr-petra/pkg/recipe"
)

// collector implements petra.Collector: one pass per invocation, no
// retries, batches processed strictly in order so the streaming
// writer stays correct.
type collector struct {
	exec petra.Executor

	// batchOverride replaces every recipe's batch size when positive.
	batchOverride int
}

// Option configures a collector.
type Option func(*collector)

// OptBatchSize overrides recipe batch sizes.
func OptBatchSize(n int) Option {
	return func(c *collector) {
		if n > 0 {
			c.batchOverride = n
		}
	}
}

// NewCollector creates the asset collection pipeline over the given
// query executor.
func NewCollector(exec petra.Executor, opts ...Option) petra.Collector {
	c := &collector{exec: exec}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs the full pipeline for one asset against one repo:
// resolve identifiers, batch, select, decode, assemble, stream. The
// output file is created before any query runs so an unwritable path
// fails fast; a no-hits run removes it again and reports NoHits.
func (c *collector) Collect(
	ctx context.Context,
	conn petra.ConnParams,
	asset string,
	uwis []string,
	outPath string,
) (*petra.Summary, error) {
	r, err := recipe.Load(asset)
	if err != nil {
		return nil, err
	}

	w, err := newDocWriter(outPath)
	if err != nil {
		return nil, err
	}

	idQuery := strings.Replace(
		r.Identifier, recipe.WherePlaceholder, makeWhereClause(uwis), 1)
	idRes, err := c.exec.Execute(ctx, conn, idQuery)
	if err != nil {
		w.discard()
		return nil, err
	}

	ids := resolveIdentifiers(idRes)
	if len(ids) == 0 {
		w.discard()
		slog.Info("no matching identifiers", "asset", asset)
		return &petra.Summary{NoHits: true}, nil
	}

	size := r.EffectiveBatchSize()
	if c.batchOverride > 0 {
		size = c.batchOverride
	}
	batches := batchIdents(ids, size)
	selectors := buildSelectors(r, batches)
	slog.Info("collecting asset",
		"asset", asset, "identifiers", len(ids), "batches", len(batches))

	for i, sel := range selectors {
		if err := c.runBatch(ctx, conn, r, sel, w); err != nil {
			w.close()
			return nil, &BatchError{Asset: asset, Batch: i, Err: err}
		}
	}

	if err := w.finalize(); err != nil {
		return nil, err
	}
	return &petra.Summary{DocsWritten: w.count, OutputPath: outPath}, nil
}

func (c *collector) runBatch(
	ctx context.Context,
	conn petra.ConnParams,
	r *recipe.Recipe,
	sel string,
	w *docWriter,
) error {
	res, err := c.exec.Execute(ctx, conn, sel)
	if err != nil {
		return err
	}

	rows, err := decodeRows(res, r)
	if err != nil {
		return err
	}

	cols := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		cols[i] = col.Name
	}

	if r.PostAggregate != "" {
		rows = aggregate(rows, cols, recipe.Aggregators[r.PostAggregate])
	}

	for _, row := range rows {
		if err := w.write(assemble(row, cols, r)); err != nil {
			return err
		}
	}
	return nil
}
