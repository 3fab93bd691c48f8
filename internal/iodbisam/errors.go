package iodbisam

import (
	"fmt"
)

// ConnectionError reports a catalog that could not be opened through
// the ODBC driver.
type ConnectionError struct {
	Catalog string
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cannot connect to DBISAM catalog %s: %v", e.Catalog, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// SchemaDriftError reports a query against a table this repo's Petra
// version does not have. Recon skips the affected asset count and
// moves on; a collection run aborts on it like any other query
// failure.
type SchemaDriftError struct {
	Catalog string
	Err     error
}

func (e *SchemaDriftError) Error() string {
	return fmt.Sprintf("schema drift in catalog %s: %v", e.Catalog, e.Err)
}

func (e *SchemaDriftError) Unwrap() error {
	return e.Err
}

// QueryError reports any other query failure.
type QueryError struct {
	Catalog string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed in catalog %s: %v", e.Catalog, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
