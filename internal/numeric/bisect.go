package numeric

import (
	"context"
	"errors"
	"math"
)

var (
	ErrNoSignChange   = errors.New("numeric: residual does not change sign over bracket")
	ErrIterationLimit = errors.New("numeric: iteration limit reached")
	ErrNonFinite      = errors.New("numeric: non-finite residual")
)

// Bisection halves a bracket on a residual with opposite signs at its ends.
type Bisection struct {
	Lower         float64
	Upper         float64
	Tolerance     float64 // absolute bracket width
	MaxIterations int
	Scale         float64 // multiplies the lower-end sign before each comparison
}

// Root is where a bisection stopped. On failure it holds the last iterate.
type Root struct {
	X          float64
	Residual   float64
	Iterations int
}

// Solve narrows the bracket until it is narrower than Tolerance and returns
// its midpoint. f may return an error, which aborts the search.
func (b Bisection) Solve(ctx context.Context, f func(float64) (float64, error)) (Root, error) {
	lo, hi := b.Lower, b.Upper
	if lo > hi {
		lo, hi = hi, lo
	}

	fLo, err := f(lo)
	if err != nil {
		return Root{X: lo}, err
	}
	fHi, err := f(hi)
	if err != nil {
		return Root{X: hi}, err
	}
	if math.IsNaN(fLo) || math.IsNaN(fHi) {
		return Root{X: lo}, ErrNonFinite
	}
	if fLo == 0 {
		return Root{X: lo, Residual: 0}, nil
	}
	if fHi == 0 {
		return Root{X: hi, Residual: 0}, nil
	}
	if math.Signbit(fLo) == math.Signbit(fHi) {
		return Root{X: lo, Residual: fLo}, ErrNoSignChange
	}

	scale := b.Scale
	if scale <= 0 {
		scale = 1
	}
	sign := math.Copysign(scale, fLo)

	root := Root{}
	for hi-lo > b.Tolerance {
		if err := ctx.Err(); err != nil {
			return root, err
		}
		if b.MaxIterations > 0 && root.Iterations >= b.MaxIterations {
			return root, ErrIterationLimit
		}

		mid := lo + (hi-lo)/2
		if mid == lo || mid == hi {
			break
		}
		fm, err := f(mid)
		root = Root{X: mid, Residual: fm, Iterations: root.Iterations + 1}
		if err != nil {
			return root, err
		}
		if math.IsNaN(fm) {
			return root, ErrNonFinite
		}

		if sign*fm > 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	root.X = lo + (hi-lo)/2
	return root, nil
}
