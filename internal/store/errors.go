package store

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// ErrCodePath indicates the store directory does not exist.
	ErrCodePath ErrorCode = "PATH_ERROR"

	// ErrCodeFormat indicates a store file failed to decode.
	ErrCodeFormat ErrorCode = "FORMAT_ERROR"

	// ErrCodeValidation indicates a caller-supplied record is malformed.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeNotFound indicates no record has the requested id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeOverflow indicates the id counter is exhausted.
	ErrCodeOverflow ErrorCode = "OVERFLOW"
)

// Error is returned by every Store operation that fails for a reason
// the caller may want to distinguish.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Type is the entity type involved, if any.
	Type string

	// ID is the record id involved. Only meaningful for ErrCodeNotFound.
	ID int

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Type != "" {
		msg = fmt.Sprintf("%s (type=%s)", msg, e.Type)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// IsPathError reports whether err is a missing-directory error.
func IsPathError(err error) bool { return hasCode(err, ErrCodePath) }

// IsFormatError reports whether err is a file decoding error.
func IsFormatError(err error) bool { return hasCode(err, ErrCodeFormat) }

// IsValidationError reports whether err is a record validation error.
func IsValidationError(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsNotFound reports whether err is a missing-record error.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsOverflow reports whether err is an id counter overflow.
func IsOverflow(err error) bool { return hasCode(err, ErrCodeOverflow) }

func newPathError(dir string, err error) *Error {
	return &Error{
		Code:    ErrCodePath,
		Message: fmt.Sprintf("store directory %q does not exist", dir),
		Err:     err,
	}
}

func newFormatError(typ string, err error) *Error {
	return &Error{
		Code:    ErrCodeFormat,
		Message: "corrupted store file",
		Type:    typ,
		Err:     err,
	}
}

func newValidationError(typ, message string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: message,
		Type:    typ,
	}
}

// NewNotFoundError creates an Error for a missing record.
func NewNotFoundError(typ string, id int) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("no record with id %d", id),
		Type:    typ,
		ID:      id,
	}
}

func newOverflowError(typ string) *Error {
	return &Error{
		Code:    ErrCodeOverflow,
		Message: fmt.Sprintf("id counter reached maximum %d", MaxID),
		Type:    typ,
	}
}
