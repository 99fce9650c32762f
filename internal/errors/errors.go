package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvariant    = errors.New("invariant violation")
)

// NotFoundError indicates a resource doesn't exist.
type NotFoundError struct {
	Resource string // "color", "step", "settings"
	ID       string // The identifier that wasn't found
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// InvariantError indicates the session is in a state the engine cannot
// compute from. Nothing has been written when it is returned.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "invariant violation: " + e.Message
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// Helper constructors for common cases

func ColorNotFound(ref string) error {
	return &NotFoundError{Resource: "color", ID: ref}
}

func StepNotFound(ref string) error {
	return &NotFoundError{Resource: "step", ID: ref}
}

func CellNotFound(colorID, stepID string) error {
	return &NotFoundError{Resource: "cell", ID: fmt.Sprintf("%s/%s", colorID, stepID)}
}

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func ReadOnlyCell(reason string) error {
	return &ValidationError{Field: "cell", Message: "read-only: " + reason}
}

func MissingSummary() error {
	return &InvariantError{Message: "summary row not found"}
}

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsInvariant checks if an error is an invariant violation.
func IsInvariant(err error) bool {
	return errors.Is(err, ErrInvariant)
}
