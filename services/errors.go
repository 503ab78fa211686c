package services

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures at the request boundary
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindConflict     ErrorKind = "conflict"
	KindNotFound     ErrorKind = "not_found"
	KindUnauthorized ErrorKind = "unauthorized"
	KindForbidden    ErrorKind = "forbidden"
	KindInternal     ErrorKind = "internal"
)

const internalMessage = "An unexpected error occurred"

// AppError is the error type returned by every service operation.
// Message is safe to show to callers; Err carries the underlying cause.
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// ValidationError reports a user-correctable input problem
func ValidationError(code, message string, fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message, Fields: fields}
}

func ConflictError(code, message string) *AppError {
	return &AppError{Kind: KindConflict, Code: code, Message: message}
}

func NotFoundError(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

func UnauthorizedError(code, message string) *AppError {
	return &AppError{Kind: KindUnauthorized, Code: code, Message: message}
}

func ForbiddenError(code, message string) *AppError {
	return &AppError{Kind: KindForbidden, Code: code, Message: message}
}

// InternalError wraps a storage or unexpected failure. The cause is kept for
// logging and never shown to the caller.
func InternalError(code string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: code, Message: internalMessage, Err: err}
}

// AsAppError unwraps err into an AppError, classifying anything else as internal
func AsAppError(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return InternalError("INTERNAL_ERROR", err)
}

// HTTPStatus maps an error kind to its response status
func HTTPStatus(err error) int {
	switch AsAppError(err).Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
