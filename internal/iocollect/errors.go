package iocollect

import (
	"fmt"
)

// FilesystemError reports an output file that could not be created or
// written. It fires before any query runs when the path is bad.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("cannot write export %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// BatchError reports a selector query that failed mid-run. The output
// file is left in place but is not valid JSON; callers should check
// for the closing bracket before trusting it.
type BatchError struct {
	Asset string
	Batch int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("asset %s batch %d failed: %v", e.Asset, e.Batch, e.Err)
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
