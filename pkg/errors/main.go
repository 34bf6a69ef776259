// Package errors defines the typed errors services return and their mapping
// to HTTP responses.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ErrorTypeInvalidRequest      = "INVALID_REQUEST"
	ErrorTypeNotFound            = "NOT_FOUND"
	ErrorTypeConflict            = "CONFLICT"
	ErrorTypeDatabaseError       = "DATABASE_ERROR"
	ErrorTypeUpstream            = "UPSTREAM_ERROR"
	ErrorTypeUnavailable         = "SERVICE_UNAVAILABLE"
	ErrorTypeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorTypeUnknown             = "UNKNOWN_ERROR"
)

// AppError carries a public Message; Err holds the internal cause and is
// never shown to callers.
type AppError struct {
	Type    string
	Message string
	// Field names the offending request field for validation failures.
	Field string
	Err   error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(errType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewInvalidRequestError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, err)
}

// NewFieldValidationError is an invalid request error bound to a single field.
func NewFieldValidationError(field, message string) *AppError {
	return &AppError{Type: ErrorTypeInvalidRequest, Message: message, Field: field}
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConflict, message, err)
}

func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(ErrorTypeDatabaseError, message, err)
}

// NewUpstreamError reports a failure of the spreadsheet endpoint or another
// external collaborator.
func NewUpstreamError(message string, err error) *AppError {
	return NewAppError(ErrorTypeUpstream, message, err)
}

func NewUnavailableError(message string, err error) *AppError {
	return NewAppError(ErrorTypeUnavailable, message, err)
}

func NewInternalServerError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInternalServerError, message, err)
}

// ValidationDetails returns the field-level breakdown of err, or nil when err
// is not tied to a request field.
func ValidationDetails(err error) []ValidationErrorResponse {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Field == "" {
		return nil
	}
	return []ValidationErrorResponse{{Field: appErr.Field, Message: appErr.Message}}
}

func GetErrorType(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// IsDuplicateKeyError recognizes unique violations from postgres and sqlite
// when the driver error was not translated by gorm.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
