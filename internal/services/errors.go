package services

import (
	"errors"
	"fmt"
)

var (
	ErrDeleteCanceled = errors.New("deletion was not confirmed")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrNotFound       = errors.New("container not found")
)

// StoreError wraps a failed record store call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("record store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// BlobError wraps a failed attachment upload.
type BlobError struct {
	Name string
	Err  error
}

func (e *BlobError) Error() string {
	return fmt.Sprintf("upload of %s failed: %v", e.Name, e.Err)
}

func (e *BlobError) Unwrap() error {
	return e.Err
}
