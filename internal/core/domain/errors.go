package domain

import (
	"errors"
	"fmt"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnauthorized           = errors.New("not authorized to perform this action")
	ErrDuplicateToken         = errors.New("token already revoked")
	ErrEmailInUse             = errors.New("email already registered")
	ErrUserNotFound           = errors.New("user not found")
	ErrProductNotFound        = errors.New("product not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInternal               = errors.New("internal server error")
)

// Validation error codes, shared with the HTTP error body.
const (
	CodeInvalidEmail    = 1001
	CodeInvalidPassword = 1002
	CodeRequiredField   = 1004
	CodeInvalidID       = 1005
	CodeInvalidValue    = 1006
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Code    int
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func RequiredField(field string) *ValidationError {
	return &ValidationError{Code: CodeRequiredField, Field: field, Message: "A required field is missing"}
}

func InvalidValue(field, message string) *ValidationError {
	return &ValidationError{Code: CodeInvalidValue, Field: field, Message: message}
}

// ErrTokenRevoked is an ErrInvalidCredentials; clients cannot tell the two
// apart, only logs and metrics can.
var ErrTokenRevoked = fmt.Errorf("%w: token revoked", ErrInvalidCredentials)
