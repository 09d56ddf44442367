package domain

import (
	"errors"
	"fmt"
)

// ValidationError rejects a transcript before scoring is attempted.
// It is recoverable: the caller gets an explanatory message and no report.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NewValidationError builds a ValidationError with a formatted reason.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConfigurationError means the rubric source is missing or malformed.
// Fatal at initialization: no scoring happens until it is fixed.
type ConfigurationError struct {
	Source string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("rubric configuration %s: %v", e.Source, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// OracleError wraps a failed similarity computation. In batch mode it fails
// the affected transcript only, never its siblings.
type OracleError struct {
	Criterion string
	Err       error
}

func (e *OracleError) Error() string {
	if e.Criterion == "" {
		return fmt.Sprintf("similarity oracle: %v", e.Err)
	}
	return fmt.Sprintf("similarity oracle (criterion %q): %v", e.Criterion, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }
