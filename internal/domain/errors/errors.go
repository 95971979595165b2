// Package errors provides domain-specific error types.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for domain errors.
const (
	ErrCodeConnection         = "CONNECTION_ERROR"
	ErrCodeConnectionClosed   = "CONNECTION_CLOSED"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeWrite              = "WRITE_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// DomainError represents a domain-specific error.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// WriteError is a DomainError raised when the store rejects a write. For bulk
// inserts InsertedIDs holds the identifiers of the documents that were
// written before the rejection; they are not rolled back.
type WriteError struct {
	*DomainError
	InsertedIDs []interface{}
}

// Unwrap returns the embedded domain error so errors.As finds it.
func (e *WriteError) Unwrap() error {
	return e.DomainError
}

// NewConnectionError creates an error for a connection that cannot be
// established or used.
func NewConnectionError(message string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeConnection,
		Message:    message,
		Details:    errDetails(err),
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

// NewConnectionClosedError creates an error for an operation attempted after close.
func NewConnectionClosedError(operation string) *DomainError {
	return &DomainError{
		Code:       ErrCodeConnectionClosed,
		Message:    "connection is closed",
		Details:    operation,
		HTTPStatus: http.StatusServiceUnavailable,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeValidation,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewWriteError creates a new write error.
func NewWriteError(message string, err error, insertedIDs []interface{}) *WriteError {
	return &WriteError{
		DomainError: &DomainError{
			Code:       ErrCodeWrite,
			Message:    message,
			Details:    errDetails(err),
			HTTPStatus: http.StatusUnprocessableEntity,
			Err:        err,
		},
		InsertedIDs: insertedIDs,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(resource, identifier string) *DomainError {
	return &DomainError{
		Code:       ErrCodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		Details:    identifier,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeInternal,
		Message:    message,
		Details:    errDetails(err),
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewBadRequestError creates a new bad request error.
func NewBadRequestError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeBadRequest,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewConflictError creates a new conflict error.
func NewConflictError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeConflict,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusConflict,
	}
}

// NewServiceUnavailableError creates a new service unavailable error.
func NewServiceUnavailableError(service string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeServiceUnavailable,
		Message:    fmt.Sprintf("%s is unavailable", service),
		HTTPStatus: http.StatusServiceUnavailable,
		Err:        err,
	}
}

func errDetails(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// IsDomainError checks if the error is a domain error.
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// GetWriteError extracts the write error from an error.
func GetWriteError(err error) (*WriteError, bool) {
	var writeErr *WriteError
	if errors.As(err, &writeErr) {
		return writeErr, true
	}
	return nil, false
}

func hasCode(err error, code string) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == code
}

// IsConnectionError checks if the error is a connection error.
func IsConnectionError(err error) bool {
	return hasCode(err, ErrCodeConnection)
}

// IsConnectionClosed checks if the error reports a closed connection.
func IsConnectionClosed(err error) bool {
	return hasCode(err, ErrCodeConnectionClosed)
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsWriteError checks if the error is a write error.
func IsWriteError(err error) bool {
	return hasCode(err, ErrCodeWrite)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}
