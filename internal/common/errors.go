// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// File handling errors.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptySheet        = errors.New("sheet has no header row")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MissingFieldError indicates that an input row lacks the designated
// description field. Line is the 1-based row position in the source; a Line
// of 0 means the header itself lacks the column.
type MissingFieldError struct {
	Field string
	Line  int
}

func (e *MissingFieldError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("header is missing required column %q", e.Field)
	}
	return fmt.Sprintf("row %d is missing required field %q", e.Line, e.Field)
}

// InvalidRuleError indicates that a rule's pattern failed to compile. It is
// raised while building the matcher, before any row is processed.
type InvalidRuleError struct {
	Err     error
	Pattern string
	Line    int
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid rule pattern %q at line %d: %v", e.Pattern, e.Line, e.Err)
}

func (e *InvalidRuleError) Unwrap() error {
	return e.Err
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
