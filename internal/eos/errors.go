package eos

import (
	"errors"
	"fmt"
)

// Domain errors for equation-of-state evaluation.
var (
	// ErrInvalidQuery indicates a query without exactly one unknown, or with
	// a known value outside its domain.
	ErrInvalidQuery = errors.New("eos: invalid query")

	// ErrInvalidCompression indicates a compression ratio x <= 0.
	ErrInvalidCompression = errors.New("eos: invalid compression ratio")

	// ErrNonConvergence indicates an inversion that exhausted its bracket,
	// its iteration cap or its seed set.
	ErrNonConvergence = errors.New("eos: solver did not converge")

	// ErrNumericOverflow indicates a non-finite intermediate result.
	ErrNumericOverflow = errors.New("eos: non-finite intermediate result")
)

// SolveError wraps an error with the context of the failed solve.
type SolveError struct {
	Branch     Branch
	Stage      string
	Iterate    float64
	Iterations int
	Wrapped    error
}

func (e *SolveError) Error() string {
	if e.Stage == "" {
		return fmt.Sprintf("%s: %v", e.Branch, e.Wrapped)
	}
	if e.Iterations > 0 {
		return fmt.Sprintf("%s: %s (last iterate %.6g after %d iterations): %v",
			e.Branch, e.Stage, e.Iterate, e.Iterations, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s at %.6g: %v", e.Branch, e.Stage, e.Iterate, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
