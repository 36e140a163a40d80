package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a typed domain error carrying the HTTP status it should surface as.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches a cause to a new Error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// The taxonomy: validation failures are reported before the operation is
// attempted, NotFound/Duplicate are per-item inside batches, StoreFailure is
// a 500. Partial batch failure is not an error - it is a report value.
var (
	ErrValidation       = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrMalformedInput   = New("MALFORMED_INPUT", http.StatusBadRequest, "malformed input")
	ErrNotFound         = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrDuplicate        = New("DUPLICATE_KEY", http.StatusConflict, "duplicate key")
	ErrInvalidExamIndex = New("INVALID_EXAM_INDEX", http.StatusBadRequest, "invalid exam number")
	ErrStoreFailure     = New("STORE_FAILURE", http.StatusInternalServerError, "persistence failure")
)

// Clone copies a predefined error with a more specific message.
func Clone(base *Error, message string) *Error {
	clone := *base
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// FromError normalises any error into an *Error, defaulting to StoreFailure.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrStoreFailure.Code, ErrStoreFailure.Status, err.Error())
}

// Is reports whether err matches the given typed error by code.
func Is(err error, target *Error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == target.Code
	}
	return false
}
