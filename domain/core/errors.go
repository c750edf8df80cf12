package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Configuration errors
	ErrConfiguration   = errors.New("invalid configuration")
	ErrMissingMetadata = fmt.Errorf("%w: missing coordinate metadata", ErrConfiguration)

	// Shape errors
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInsufficientData  = fmt.Errorf("%w: insufficient data for analysis", ErrDimensionMismatch)

	// Numerical errors
	ErrNumerical     = errors.New("numerical error")
	ErrNoConvergence = fmt.Errorf("%w: decomposition did not converge", ErrNumerical)
)

// Error constructors with context
func NewConfigurationError(param string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrConfiguration, param, reason)
}

func NewDimensionMismatchError(detail string) error {
	return fmt.Errorf("%w: %s", ErrDimensionMismatch, detail)
}

func NewNumericalError(detail string) error {
	return fmt.Errorf("%w: %s", ErrNumerical, detail)
}

// Error checking helpers
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

func IsDimensionMismatchError(err error) bool {
	return errors.Is(err, ErrDimensionMismatch)
}

func IsNumericalError(err error) bool {
	return errors.Is(err, ErrNumerical)
}
