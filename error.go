package fetcher

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Each code maps to one failure kind of an archiving run. The CLI turns the
// code into a process exit status.
const (
	EINVALID    = "invalid"
	EFETCH      = "fetch"
	ENOCONTENT  = "no_content"
	EEMPTY      = "empty"
	EFILESYSTEM = "filesystem"
	ETIMEOUT    = "timeout"
	ENOTFOUND   = "not_found"
	EINTERNAL   = "internal"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("fetcher error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
