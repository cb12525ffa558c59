package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested operation conflicts with the
// current state of the resource.
var ErrConflict = errors.New("conflicting resource state")

// ErrConcurrentModification indicates that another caller changed the resource
// between read and write. Callers must re-read before retrying.
var ErrConcurrentModification = errors.New("resource was modified concurrently")

// ErrIntegrity indicates a bookkeeping integrity violation that should never
// occur in a correctly functioning engine (stored totals disagreeing with
// lines, a sequence number collision). The surrounding transaction is aborted.
var ErrIntegrity = errors.New("ledger integrity violation")

// ErrInternal is a generic internal error returned where details must not leak.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
