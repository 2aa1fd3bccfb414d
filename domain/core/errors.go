package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrMissingInput  = errors.New("required input is missing")
	ErrShapeMismatch = errors.New("input shapes disagree")
	ErrInvalidValue  = errors.New("invalid numeric value")

	// Artifact errors
	ErrMissingTable     = errors.New("interaction index table not supplied")
	ErrInconsistentPair = errors.New("candidate pair not present in interaction table")
	ErrUnknownHeredity  = errors.New("unknown heredity mode")

	// Repository errors
	ErrRunNotFound = errors.New("screening run not found")
)

// Error constructors with context
func NewMissingInputError(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingInput, name)
}

func NewShapeMismatchError(detail string) error {
	return fmt.Errorf("%w: %s", ErrShapeMismatch, detail)
}

func NewInvalidValueError(detail string) error {
	return fmt.Errorf("%w: %s", ErrInvalidValue, detail)
}

func NewInconsistentPairError(i, j int) error {
	return fmt.Errorf("%w: (%d, %d)", ErrInconsistentPair, i, j)
}

// Error checking helpers
func IsInputError(err error) bool {
	return errors.Is(err, ErrMissingInput) ||
		errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrInvalidValue)
}

func IsArtifactError(err error) bool {
	return errors.Is(err, ErrMissingTable) ||
		errors.Is(err, ErrInconsistentPair)
}
