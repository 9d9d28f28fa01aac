// Package errors classifies failures so the HTTP layer can choose a status and
// a message without inspecting storage or driver errors itself.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode is the kind of an AppError.
type ErrorCode string

const (
	ErrCodeNotFound   ErrorCode = "not_found"
	ErrCodeConflict   ErrorCode = "conflict"
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeForeignKey marks a write that references, or is referenced by, another row.
	ErrCodeForeignKey ErrorCode = "foreign_key"
	// ErrCodeForbidden marks a viewer acting on a server they may not change.
	ErrCodeForbidden ErrorCode = "forbidden"
	ErrCodeInternal  ErrorCode = "internal"
	ErrCodeTimeout   ErrorCode = "timeout"
	ErrCodeCanceled  ErrorCode = "canceled"
)

// AppError is a classified error. Field names the offending input, if any.
type AppError struct {
	Code    ErrorCode
	Message string
	Field   string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *AppError) Unwrap() error { return e.Cause }

func newError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NotFound(message string) *AppError   { return newError(ErrCodeNotFound, message) }
func Conflict(message string) *AppError   { return newError(ErrCodeConflict, message) }
func Validation(message string) *AppError { return newError(ErrCodeValidation, message) }
func ForeignKey(message string) *AppError { return newError(ErrCodeForeignKey, message) }
func Forbidden(message string) *AppError  { return newError(ErrCodeForbidden, message) }
func Internal(message string) *AppError   { return newError(ErrCodeInternal, message) }

// Conflictf formats the message of a Conflict error.
func Conflictf(format string, args ...any) *AppError {
	return Conflict(fmt.Sprintf(format, args...))
}

// ValidationField is a Validation error about one input field.
func ValidationField(field, message string) *AppError {
	e := Validation(message)
	e.Field = field
	return e
}

// GetCode returns the code of the first AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	var e *AppError
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetField returns the field of the first AppError in err's chain, or "".
func GetField(err error) string {
	var e *AppError
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}

func IsNotFound(err error) bool   { return GetCode(err) == ErrCodeNotFound }
func IsConflict(err error) bool   { return GetCode(err) == ErrCodeConflict }
func IsValidation(err error) bool { return GetCode(err) == ErrCodeValidation }
func IsForeignKey(err error) bool { return GetCode(err) == ErrCodeForeignKey }
func IsForbidden(err error) bool  { return GetCode(err) == ErrCodeForbidden }
func IsTimeout(err error) bool    { return GetCode(err) == ErrCodeTimeout }
func IsCanceled(err error) bool   { return GetCode(err) == ErrCodeCanceled }
