// Package iodbisam implements query execution against Petra's DBISAM
// tables through the DBISAM ODBC driver. This is an impure I/O package
// that implements contracts defined in pkg/.
package iodbisam

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/alexbrainman/odbc"
	"github.com/rbhughes/purr-petra/pkg/petra"
)

// sqlExecutor implements petra.Executor using database/sql over the
// odbc driver. DBISAM catalogs are plain directories of table files,
// so a connection is opened per query and closed right after: there
// is no server to keep a pool against, and short-lived handles avoid
// DBISAM's file-lock pile-ups when several repos are read in a row.
type sqlExecutor struct{}

// NewExecutor creates a DBISAM query executor.
func NewExecutor() petra.Executor {
	return &sqlExecutor{}
}

// dsn renders ODBC connection attributes for a local read-only DBISAM
// catalog.
func dsn(conn petra.ConnParams) string {
	return fmt.Sprintf(
		"Driver={%s};ConnectionType=Local;CatalogName=%s;ReadOnly=True;EnableMacros=False",
		conn.Driver, conn.CatalogName,
	)
}

// Execute runs one query and drains the whole cursor into memory.
// Result sets are bounded by identifier batching upstream, so a full
// drain stays small.
func (e *sqlExecutor) Execute(
	ctx context.Context,
	conn petra.ConnParams,
	query string,
) (*petra.Result, error) {
	db, err := sql.Open("odbc", dsn(conn))
	if err != nil {
		return nil, &ConnectionError{Catalog: conn.CatalogName, Err: err}
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify(conn.CatalogName, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Catalog: conn.CatalogName, Err: err}
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, &QueryError{Catalog: conn.CatalogName, Err: err}
	}

	res := &petra.Result{
		Columns: make([]petra.Column, len(names)),
	}
	for i, name := range names {
		res.Columns[i] = petra.Column{
			Name:     name,
			TypeName: types[i].DatabaseTypeName(),
		}
	}

	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &QueryError{Catalog: conn.CatalogName, Err: err}
		}
		res.Rows = append(res.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(conn.CatalogName, err)
	}

	return res, nil
}

// classify maps driver errors onto the package error taxonomy. DBISAM
// reports a missing table as 'Table ... not found', which here means
// the repo's Petra version predates the table: schema drift, not a
// hard failure.
func classify(catalog string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "not found") &&
		strings.Contains(strings.ToLower(msg), "table") {
		return &SchemaDriftError{Catalog: catalog, Err: err}
	}
	if strings.Contains(msg, "Data source name not found") ||
		strings.Contains(msg, "IM002") {
		return &ConnectionError{Catalog: catalog, Err: err}
	}
	return &QueryError{Catalog: catalog, Err: err}
}
