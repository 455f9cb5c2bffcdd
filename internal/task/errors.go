package task

import (
	"errors"
	"fmt"

	"github.com/roach88/todolor/internal/store"
)

// ErrorCode categorizes task errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates a task or change set breaks a business rule.
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"

	// ErrCodeNotFound indicates no task has the requested id.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeAlreadyCompleted indicates Complete was called on a done task.
	ErrCodeAlreadyCompleted ErrorCode = "ALREADY_COMPLETED"

	// ErrCodeCorrupted indicates a stored record is not a valid task.
	ErrCodeCorrupted ErrorCode = "CORRUPTED"
)

// Error is a task-level business rule failure.
type Error struct {
	Code    ErrorCode
	Message string

	// ID is the task id involved, or -1 when unknown.
	ID int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ID >= 0 {
		return fmt.Sprintf("%s: %s (id=%d)", e.Code, e.Message, e.ID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func hasCode(err error, code ErrorCode) bool {
	var te *Error
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// IsValidationError reports whether err is a task or store validation error.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation) || store.IsValidationError(err)
}

// IsNotFound reports whether err means the task does not exist.
// Not-found errors raised by the store are included.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound) || store.IsNotFound(err)
}

// IsAlreadyCompleted reports whether err is an already-completed error.
func IsAlreadyCompleted(err error) bool { return hasCode(err, ErrCodeAlreadyCompleted) }

// IsCorrupted reports whether err is a corrupted-record error.
func IsCorrupted(err error) bool { return hasCode(err, ErrCodeCorrupted) }

func validationError(id int, format string, args ...any) *Error {
	return &Error{Code: ErrCodeValidation, Message: fmt.Sprintf(format, args...), ID: id}
}

func corruptedError(id int, format string, args ...any) *Error {
	return &Error{Code: ErrCodeCorrupted, Message: fmt.Sprintf(format, args...), ID: id}
}

func notFoundError(id int) *Error {
	return &Error{Code: ErrCodeNotFound, Message: "no such task", ID: id}
}

func alreadyCompletedError(id int) *Error {
	return &Error{Code: ErrCodeAlreadyCompleted, Message: "task is already completed", ID: id}
}
