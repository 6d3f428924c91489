package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrConflict        = errors.New("conflict")
	ErrUnauthorized    = errors.New("unauthorized")
)

// Error carries the HTTP status and machine-readable code a handler should
// answer with.
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

func NotFound(code, msg string) *Error {
	return New(http.StatusNotFound, code, &kindError{msg: msg, kind: ErrNotFound})
}

func BadRequest(code, msg string) *Error {
	return New(http.StatusBadRequest, code, &kindError{msg: msg, kind: ErrInvalidArgument})
}

// Conflict reports a uniqueness violation. The API answers these with 400.
func Conflict(code, msg string) *Error {
	return New(http.StatusBadRequest, code, &kindError{msg: msg, kind: ErrConflict})
}

func Unauthorized(code, msg string) *Error {
	return New(http.StatusUnauthorized, code, &kindError{msg: msg, kind: ErrUnauthorized})
}

// kindError keeps the client-facing message intact while still matching
// one of the sentinels through errors.Is.
type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }
