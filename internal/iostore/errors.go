package iostore

import (
	"fmt"
)

// StoreError reports a failed registry operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("repo store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// RepoNotFoundError reports an unknown repo id.
type RepoNotFoundError struct {
	ID string
}

func (e *RepoNotFoundError) Error() string {
	return fmt.Sprintf("repo %q is not registered, run recon first", e.ID)
}
