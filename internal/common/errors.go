// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Data provider errors.
	ErrNotFound        = errors.New("not found")
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrContactNotFound = errors.New("contact not found")

	// Gateway errors.
	ErrTransferDeclined = errors.New("transfer declined")
	ErrDepositDeclined  = errors.New("deposit declined")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError reports a rejected input tied to a specific form field.
// The operation that returned it left all state unchanged.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a field-tagged validation error.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation extracts a ValidationError from an error chain, if present.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
