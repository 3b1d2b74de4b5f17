package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Reason codes surfaced to clients. Invitation acceptance distinguishes
// used/expired from plain not_found.
const (
	CodeNotFound   = "not_found"
	CodeUsed       = "used"
	CodeExpired    = "expired"
	CodeValidation = "validation_error"
	CodeForbidden  = "forbidden"
	CodeExternal   = "external_error"
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

func NotFound(what string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Err: fmt.Errorf("%s not found", what)}
}

func Used(what string) *Error {
	return &Error{Status: http.StatusConflict, Code: CodeUsed, Err: fmt.Errorf("%s already used", what)}
}

func Expired(what string) *Error {
	return &Error{Status: http.StatusGone, Code: CodeExpired, Err: fmt.Errorf("%s expired", what)}
}

func Validation(err error) *Error {
	return &Error{Status: http.StatusBadRequest, Code: CodeValidation, Err: err}
}

func Forbidden(err error) *Error {
	return &Error{Status: http.StatusForbidden, Code: CodeForbidden, Err: err}
}

func External(err error) *Error {
	return &Error{Status: http.StatusBadGateway, Code: CodeExternal, Err: err}
}

// StatusOf maps any error to the HTTP status handlers should answer with.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

// CodeOf extracts the reason code, empty when err is not an apierr.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
