package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConnectivity indicates the backing store could not be reached.
var ErrConnectivity = errors.New("data store unavailable")

// ErrInsufficientBalance is returned when an expense exceeds the remaining balance
// of its income source. It is a validation error, never a transient one.
var ErrInsufficientBalance = fmt.Errorf("%w: amount exceeds remaining balance of income source", ErrValidation)

// AppError carries an HTTP-ish status code alongside an underlying cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}
