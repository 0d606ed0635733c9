// File: utils/apperror.go
package utils

import (
	"errors"
	"fmt"
)

// Error codes for the booking engine's enumerated failure kinds. Handlers
// map these onto HTTP statuses; services return them instead of using
// panics or ad-hoc strings as control flow.
const (
	CodeValidation   = "validationError" // malformed input, rule violation
	CodeNotFound     = "notFound"        // unknown template/link/booking
	CodeSlotConflict = "slotConflict"    // slot already held
	CodeGone         = "gone"            // past booking, already cancelled
	CodeForbidden    = "forbidden"       // cancellation token mismatch
)

// AppError is a typed outcome carrying one of the enumerated codes.
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(format string, args ...any) error {
	return &AppError{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...any) error {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewSlotConflictError(format string, args ...any) error {
	return &AppError{Code: CodeSlotConflict, Message: fmt.Sprintf(format, args...)}
}

func NewGoneError(format string, args ...any) error {
	return &AppError{Code: CodeGone, Message: fmt.Sprintf(format, args...)}
}

func NewForbiddenError(format string, args ...any) error {
	return &AppError{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

// ErrorCode extracts the AppError code from err, or "" when err is not a
// typed outcome.
func ErrorCode(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}
