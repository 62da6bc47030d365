package repositories

import "fmt"

// StoreError is the RepositoryError implementation shared by the non-Firestore
// cart store backends.
type StoreError struct {
	op          string
	err         error
	notFound    bool
	conflict    bool
	unavailable bool
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e == nil {
		return ""
	}
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.op, e.err)
	}
	return e.op
}

// Unwrap returns the underlying error.
func (e *StoreError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// IsNotFound reports whether the error represents a missing record.
func (e *StoreError) IsNotFound() bool { return e != nil && e.notFound }

// IsConflict reports whether the error represents a conflicting update.
func (e *StoreError) IsConflict() bool { return e != nil && e.conflict }

// IsUnavailable reports whether the error represents a transient backend outage.
func (e *StoreError) IsUnavailable() bool { return e != nil && e.unavailable }

// NewNotFoundError builds a StoreError classified as not found.
func NewNotFoundError(op string) *StoreError {
	return &StoreError{op: op, notFound: true}
}

// NewUnavailableError builds a StoreError classified as a backend outage.
func NewUnavailableError(op string, err error) *StoreError {
	return &StoreError{op: op, err: err, unavailable: true}
}
