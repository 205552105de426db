package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure kinds of the scoring bank. Match
// them with errors.Is; the typed errors below carry the details.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUndefinedRisk    = errors.New("undefined risk")
	ErrModelUnavailable = errors.New("model unavailable")
)

// InvalidInputError reports an input outside its declared domain.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

// UndefinedRiskError reports a computation whose denominator collapsed to zero.
type UndefinedRiskError struct {
	Quantity string
}

func (e *UndefinedRiskError) Error() string {
	return fmt.Sprintf("undefined risk: %s denominator is zero", e.Quantity)
}

func (e *UndefinedRiskError) Is(target error) bool { return target == ErrUndefinedRisk }

// ModelUnavailableError reports a missing or unusable regression artifact.
type ModelUnavailableError struct {
	Path string
	Err  error
}

func (e *ModelUnavailableError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("model unavailable: %v", e.Err)
	}
	return fmt.Sprintf("model unavailable: %s: %v", e.Path, e.Err)
}

func (e *ModelUnavailableError) Is(target error) bool { return target == ErrModelUnavailable }

func (e *ModelUnavailableError) Unwrap() error { return e.Err }

func invalid(field, format string, args ...any) error {
	return &InvalidInputError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
