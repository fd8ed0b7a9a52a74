package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrInternal
	ErrMissingClinic
	ErrMissingSearchCriteria
	ErrTransientService
	ErrVerificationMismatch
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// StatusCode maps the error code to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest, ErrMissingClinic, ErrMissingSearchCriteria, ErrVerificationMismatch:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// IsCode reports whether err is an AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Error constructors
func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func Internal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func MissingClinic() *AppError {
	return &AppError{
		Code:    ErrMissingClinic,
		Message: "clinic_id is required",
	}
}

func MissingSearchCriteria() *AppError {
	return &AppError{
		Code:    ErrMissingSearchCriteria,
		Message: "missing required search parameters",
	}
}

func TransientService() *AppError {
	return &AppError{
		Code:    ErrTransientService,
		Message: "booking service temporarily unavailable",
	}
}

func VerificationMismatch() *AppError {
	return &AppError{
		Code:    ErrVerificationMismatch,
		Message: "verification did not match our records",
	}
}
