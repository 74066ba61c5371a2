package helper

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

const (
	CodeUnauthorized           = "UNAUTHORIZED"
	CodeAccessRevoked          = "ACCESS_REVOKED"
	CodeAccessExpired          = "ACCESS_EXPIRED"
	CodePasswordChangeRequired = "PASSWORD_CHANGE_REQUIRED"
	CodeForbidden              = "FORBIDDEN"
	CodeNotFound               = "NOT_FOUND"
	CodeInvalidState           = "INVALID_STATE"
	CodeConflict               = "CONFLICT"
	CodeLimitReached           = "LIMIT_REACHED"
	CodeValidation             = "VALIDATION_ERROR"
	CodeInternal               = "INTERNAL_ERROR"
)

// AppError carries an HTTP status and a stable code across service boundaries.
type AppError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func newAppError(status int, code, msg string) *AppError {
	return &AppError{Status: status, Code: code, Message: msg}
}

func ErrAuthentication(msg string) *AppError {
	return newAppError(fiber.StatusUnauthorized, CodeUnauthorized, msg)
}

func ErrAccessRevoked() *AppError {
	return newAppError(fiber.StatusForbidden, CodeAccessRevoked, "Access has been revoked. Please contact an admin.")
}

func ErrAccessExpired() *AppError {
	return newAppError(fiber.StatusForbidden, CodeAccessExpired, "Your access has expired.")
}

func ErrPasswordChangeRequired() *AppError {
	return newAppError(fiber.StatusForbidden, CodePasswordChangeRequired, "You must change your temporary password before continuing.")
}

func ErrForbidden(msg string) *AppError {
	return newAppError(fiber.StatusForbidden, CodeForbidden, msg)
}

func ErrNotFound(msg string) *AppError {
	return newAppError(fiber.StatusNotFound, CodeNotFound, msg)
}

func ErrInvalidState(msg string) *AppError {
	return newAppError(fiber.StatusConflict, CodeInvalidState, msg)
}

func ErrConflict(msg string) *AppError {
	return newAppError(fiber.StatusConflict, CodeConflict, msg)
}

func ErrLimitReached(msg string) *AppError {
	return newAppError(fiber.StatusForbidden, CodeLimitReached, msg)
}

func ErrValidation(msg string) *AppError {
	return newAppError(fiber.StatusBadRequest, CodeValidation, msg)
}

// ErrTransaction wraps a store failure inside a multi-step workflow.
func ErrTransaction(msg string, err error) *AppError {
	e := newAppError(fiber.StatusInternalServerError, CodeInternal, msg)
	e.Err = err
	return e
}

// ErrorCode returns the AppError code in err's chain, or "".
func ErrorCode(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
