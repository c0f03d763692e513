package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes surfaced to clients and log pipelines. PartialFailure stays distinct
// from generic storage/internal failures so monitoring can alert on orphaned
// blobs separately.
const (
	CodeValidation     = "validation"
	CodeInvalidID      = "invalid_id"
	CodeNotFound       = "not_found"
	CodeConflict       = "conflict"
	CodeStorage        = "storage"
	CodePartialFailure = "partial_failure"
	CodeInternal       = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeValidation, fmt.Errorf(format, args...))
}

func InvalidID(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInvalidID, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func Conflict(format string, args ...interface{}) *Error {
	return New(http.StatusConflict, CodeConflict, fmt.Errorf(format, args...))
}

func Storage(err error) *Error {
	return New(http.StatusInternalServerError, CodeStorage, fmt.Errorf("storage failure: %w", err))
}

func PartialFailure(err error) *Error {
	return New(http.StatusInternalServerError, CodePartialFailure,
		fmt.Errorf("upload stored but record could not be saved, contact support: %w", err))
}

func Internal(err error) *Error {
	return New(http.StatusInternalServerError, CodeInternal, err)
}

// From normalizes any error into an *Error, defaulting to internal.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal(err)
}
