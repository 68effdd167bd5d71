package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUpstreamUnavailable indicates the Pega client is not configured.
	ErrUpstreamUnavailable = errors.New("pega client is not configured")
)

// ValidationError rejects a request before anything is persisted.
type ValidationError struct {
	Message string                 `json:"message"`
	Fields  map[string]interface{} `json:"fields,omitempty"`
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		Message: message,
	}
}

func NewValidationFieldsError(message string, fields map[string]interface{}) *ValidationError {
	return &ValidationError{
		Message: message,
		Fields:  fields,
	}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// InvalidTransitionError rejects a reprocess request for an event whose
// current status is not eligible for another run.
type InvalidTransitionError struct {
	Current string
}

func NewInvalidTransition(current string) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot reprocess event in status '%s'", e.Current)
}

// UpstreamError wraps a failed call to the Pega REST API.
type UpstreamError struct {
	Err error
}

func NewUpstreamError(err error) *UpstreamError {
	return &UpstreamError{Err: err}
}

func (e *UpstreamError) Error() string {
	return "pega request failed: " + e.Err.Error()
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// StorageError wraps an underlying database failure.
type StorageError struct {
	Err error
}

func NewStorageError(err error) *StorageError {
	return &StorageError{Err: err}
}

func (e *StorageError) Error() string {
	return "storage failure: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
