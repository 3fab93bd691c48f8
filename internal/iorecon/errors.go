package iorecon

import (
	"fmt"
)

// ScanError reports a recon root that could not be walked.
type ScanError struct {
	Root string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("cannot scan %s for repos: %v", e.Root, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}
