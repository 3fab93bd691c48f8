// Package petra defines the contracts between the asset-collection
// pipeline and its collaborators. Implementations live in internal/io*
// packages; this package has no I/O dependencies.
package petra

import (
	"context"
	"time"
)

// ConnParams describe how to reach one repo's DBISAM database through
// the vendor ODBC driver.
type ConnParams struct {
	// Driver is the ODBC driver name, normally "DBISAM 4 ODBC Driver".
	Driver string `json:"driver"`

	// CatalogName is the directory holding the DBISAM table files,
	// normally <repo>/DB.
	CatalogName string `json:"catalogname"`
}

// Column pairs a result column name with the native type name reported
// by the driver. The type name drives default decoder selection when a
// recipe does not declare an explicit transform for the column.
type Column struct {
	Name     string
	TypeName string
}

// Result is one query's raw result set: ordered columns and rows.
// NULL values arrive as nil.
type Result struct {
	Columns []Column
	Rows    [][]any
}

// Executor runs a single SQL statement against a repo database.
// Each call owns its connection for the duration of that statement
// only, so concurrent collections against the same repo do not starve
// each other by holding locks.
//
// A missing table (ancient schema) is reported as a SchemaDrift error
// distinguishable with errors.As; connection-level failures are
// reported as ConnectionError.
type Executor interface {
	Execute(ctx context.Context, conn ConnParams, query string) (*Result, error)
}

// Summary reports the outcome of one asset collection.
type Summary struct {
	DocsWritten int    `json:"docs_written"`
	OutputPath  string `json:"output_path,omitempty"`

	// NoHits is set when identifier resolution matched nothing. No
	// output file exists in that case.
	NoHits bool `json:"no_hits,omitempty"`
}

// Collector is the asset-collection entry point. It resolves
// identifiers for the recipe's asset, batches them, executes the
// selector queries and streams assembled documents to outPath as a
// single JSON array. Any failure aborts the run; a partially written
// file is left in place and is not valid JSON.
type Collector interface {
	Collect(
		ctx context.Context,
		conn ConnParams,
		asset string,
		uwis []string,
		outPath string,
	) (*Summary, error)
}

// Repo is one registered Petra project directory.
type Repo struct {
	ID          string     `json:"id"`
	Active      bool       `json:"active"`
	Name        string     `json:"name"`
	FSPath      string     `json:"fs_path"`
	Conn        ConnParams `json:"conn"`
	Suite       string     `json:"suite"`
	WellCount   int        `json:"well_count"`
	AssetCounts map[string]int `json:"asset_counts,omitempty"`
	Files       int64      `json:"files"`
	Directories int64      `json:"directories"`
	Bytes       int64      `json:"bytes"`
	RepoMod     time.Time  `json:"repo_mod"`
}

// RepoStore persists repo registrations and settings locally.
type RepoStore interface {
	Init(ctx context.Context) error
	UpsertRepo(ctx context.Context, repo *Repo) error
	GetRepo(ctx context.Context, id string) (*Repo, error)
	ListRepos(ctx context.Context) ([]*Repo, error)
	FileDepot(ctx context.Context) (string, error)
	SetFileDepot(ctx context.Context, dir string) error
	Close() error
}

// TaskStatus tracks a background collection job in the HTTP layer.
// The collector itself is synchronous and knows nothing about tasks.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskFailed     TaskStatus = "failed"
)

// Task is the status record for one asynchronous collection.
type Task struct {
	ID      string     `json:"id"`
	RepoID  string     `json:"repo_id"`
	Asset   string     `json:"asset"`
	UWIs    []string   `json:"uwi_list,omitempty"`
	Status  TaskStatus `json:"task_status"`
	Message string     `json:"task_message,omitempty"`
}

// TaskStore tracks task status for the HTTP layer. Implementations
// must be safe for concurrent use.
type TaskStore interface {
	Put(task *Task)
	Get(id string) (*Task, bool)
	SetStatus(id string, status TaskStatus, message string)
}
