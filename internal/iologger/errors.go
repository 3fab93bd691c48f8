package iologger

import (
	"fmt"
)

// CreateLogFileError reports a log file that could not be opened or
// created.
type CreateLogFileError struct {
	Path string
	Err  error
}

func (e *CreateLogFileError) Error() string {
	return fmt.Sprintf("cannot create log file %s: %v", e.Path, e.Err)
}

func (e *CreateLogFileError) Unwrap() error {
	return e.Err
}
