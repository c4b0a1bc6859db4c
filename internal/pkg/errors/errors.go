package errors

import (
	"errors"
	"fmt"
)

// Kind classifies a request-scoped failure
type Kind int

// Error kinds
const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindNotFound
	KindStoreFailure
)

// String returns the wire name of the kind
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindStoreFailure:
		return "STORE_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// AppError represents an application error with context
type AppError struct {
	Kind    Kind              `json:"kind"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithError wraps an underlying error
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates a new AppError
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *AppError {
	return New(KindInvalidArgument, message)
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(KindNotFound, fmt.Sprintf("%s not found", resource))
}

// StoreFailure wraps an error reported by the query store
func StoreFailure(operation string, err error) *AppError {
	return New(KindStoreFailure, operation+" failed").WithError(err)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As attempts to convert an error to a specific type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// GetAppError extracts AppError from error if present
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// KindOf returns the kind of err. Errors that are not AppErrors are
// reported as store failures, since only the store produces them.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind
	}
	return KindStoreFailure
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return err != nil && KindOf(err) == KindInvalidArgument
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return err != nil && KindOf(err) == KindNotFound
}

// IsStoreFailure checks if the error is a store failure
func IsStoreFailure(err error) bool {
	return err != nil && KindOf(err) == KindStoreFailure
}
