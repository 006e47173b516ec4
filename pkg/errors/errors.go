package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode int

// Error codes for the four failure classes of the service boundary.
const (
	ErrValidation ErrorCode = iota + 1000
	ErrNotFound
	ErrStorage
	ErrConflict
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Op      string    `json:"-"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Op != "" && e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func Validation(message string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// Storage wraps a driver-level fault, tagged with the repository
// operation that failed.
func Storage(op string, err error) *AppError {
	return &AppError{
		Code:    ErrStorage,
		Message: "storage operation failed",
		Op:      op,
		Err:     err,
	}
}

func Conflict(message string, err error) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
		Err:     err,
	}
}

func codeOf(err error) (ErrorCode, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, true
	}
	return 0, false
}

func IsValidation(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrValidation
}

func IsNotFound(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrNotFound
}

func IsStorage(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrStorage
}

func IsConflict(err error) bool {
	code, ok := codeOf(err)
	return ok && code == ErrConflict
}
