package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure so callers can branch without string matching.
type Code int

const (
	CodeUnauthenticated Code = iota + 1000
	CodePermissionDenied
	CodeValidation
	CodeNotFound
	CodeAlreadySettled
	CodeAlreadyCompleted
	CodeConflict
	CodeInternal
)

// AppError is the typed outcome every workflow and authorization failure is
// returned as. Only persistence unavailability surfaces as a bare error.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// FieldName names the offending field for validation failures.
func (e *AppError) FieldName() string { return e.Field }

// StatusCode maps the error code to an HTTP status for the error middleware.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeValidation:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadySettled, CodeAlreadyCompleted, CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Unauthenticated() *AppError {
	return &AppError{Code: CodeUnauthenticated, Message: "authentication required"}
}

// PermissionDenied is deliberately generic: it never names the rule or
// resource, so a denied caller learns nothing about what exists.
func PermissionDenied() *AppError {
	return &AppError{Code: CodePermissionDenied, Message: "permission denied"}
}

func Validation(field, reason string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: fmt.Sprintf("invalid %s: %s", field, reason),
		Field:   field,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func AlreadySettled() *AppError {
	return &AppError{Code: CodeAlreadySettled, Message: "order already settled"}
}

func AlreadyCompleted() *AppError {
	return &AppError{Code: CodeAlreadyCompleted, Message: "booking already completed"}
}

// Conflict reports that a compare-and-set observed a concurrent state
// change. Callers retry the read-evaluate-write cycle once before failing.
func Conflict(resource string) *AppError {
	return &AppError{Code: CodeConflict, Message: fmt.Sprintf("concurrent update on %s", resource)}
}

func Internal(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "internal server error", Err: err}
}

// CodeOf extracts the classification from a wrapped error chain, returning
// CodeInternal for anything untyped.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
