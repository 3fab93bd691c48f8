package iofs

import (
	"fmt"
)

// CreateDirError reports a directory that could not be created.
type CreateDirError struct {
	Dir string
	Err error
}

func (e *CreateDirError) Error() string {
	return fmt.Sprintf("cannot create directory %s: %v", e.Dir, e.Err)
}

func (e *CreateDirError) Unwrap() error {
	return e.Err
}

// ReadFileError reports a config file that could not be read or parsed.
type ReadFileError struct {
	File string
	Err  error
}

func (e *ReadFileError) Error() string {
	return fmt.Sprintf("cannot read file %s: %v", e.File, e.Err)
}

func (e *ReadFileError) Unwrap() error {
	return e.Err
}

// CopyFileError reports a starter file that could not be written.
type CopyFileError struct {
	File string
	Err  error
}

func (e *CopyFileError) Error() string {
	return fmt.Sprintf("cannot copy config file to %s: %v", e.File, e.Err)
}

func (e *CopyFileError) Unwrap() error {
	return e.Err
}
