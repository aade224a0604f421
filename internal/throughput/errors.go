package throughput

import (
	"errors"
	"math"
)

// ErrInvalidInput is matched by every ValidationError.
var ErrInvalidInput = errors.New("invalid input")

// User-facing validation reasons.
const (
	ReasonPieces = "pieces must be greater than 0"
	ReasonTime   = "time taken must be non-zero"
)

// ValidationError rejects a sample before any arithmetic runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// Validate checks the preconditions Compute relies on. The observed time must
// also leave a positive, finite cycle once split across the pieces.
func Validate(s Sample) error {
	if s.Pieces <= 0 {
		return &ValidationError{Reason: ReasonPieces}
	}
	if !(s.ObservedSeconds > 0) {
		return &ValidationError{Reason: ReasonTime}
	}
	if raw := s.ObservedSeconds / float64(s.Pieces); !(raw > 0) || math.IsInf(raw, 0) {
		return &ValidationError{Reason: ReasonTime}
	}
	return nil
}
