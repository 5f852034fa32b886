package service

import (
	"errors"
	"fmt"
)

// Common service errors
var (
	// ErrNotFound is returned when a resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict is returned when there's a conflict (e.g., duplicate)
	ErrConflict = errors.New("resource conflict")

	// ErrUnauthorized is returned when user is not authenticated
	ErrUnauthorized = errors.New("unauthorized")
)

// ReferenceError signals that a request referenced another entity that
// does not exist or was deleted. It unwraps to ErrInvalidInput so
// handlers map it to a 400 rather than a 404.
type ReferenceError struct {
	Field  string
	Reason string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("invalid reference %s: %s", e.Field, e.Reason)
}

func (e *ReferenceError) Unwrap() error { return ErrInvalidInput }

// TransitionError signals a disallowed status change.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s cannot move from %s to %s", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidInput }
