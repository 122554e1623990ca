package numeric

import (
	"context"
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

var ErrNoRoots = errors.New("numeric: no seed converged to a real root")

// MultiStart runs Newton's method from every seed and pools the distinct
// roots it finds.
type MultiStart struct {
	Seeds         []float64
	Tolerance     float64 // step size relative to max(1, |x|)
	MaxIterations int     // per seed
	Distinct      float64 // roots closer than this (abs or rel) are merged
}

// SeedRange returns start, start+step, ... below stop.
func SeedRange(start, stop, step float64) []float64 {
	if step <= 0 || stop <= start {
		return []float64{start}
	}
	n := int(math.Ceil((stop - start) / step))
	seeds := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		seeds = append(seeds, start+float64(i)*step)
	}
	return seeds
}

// Roots returns the sorted distinct roots of f reached from the seeds.
// df is the derivative of f. Seeds that stall on a flat derivative, leave
// the finite range or exhaust the iteration cap contribute nothing.
func (m MultiStart) Roots(ctx context.Context, f, df func(float64) float64) ([]float64, error) {
	found := make([]float64, 0, len(m.Seeds))
	for _, seed := range m.Seeds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r, ok := m.newton(f, df, seed); ok {
			found = append(found, r)
		}
	}
	if len(found) == 0 {
		return nil, nil
	}

	sort.Float64s(found)
	distinct := []float64{found[0]}
	for _, r := range found[1:] {
		last := distinct[len(distinct)-1]
		if scalar.EqualWithinAbsOrRel(r, last, m.Distinct, m.Distinct) {
			continue
		}
		distinct = append(distinct, r)
	}
	return distinct, nil
}

// Mean returns the average of the distinct roots and how many there were.
func (m MultiStart) Mean(ctx context.Context, f, df func(float64) float64) (float64, int, error) {
	roots, err := m.Roots(ctx, f, df)
	if err != nil {
		return 0, 0, err
	}
	if len(roots) == 0 {
		return 0, 0, ErrNoRoots
	}
	return stat.Mean(roots, nil), len(roots), nil
}

func (m MultiStart) newton(f, df func(float64) float64, x float64) (float64, bool) {
	maxIter := m.MaxIterations
	if maxIter <= 0 {
		maxIter = 100
	}
	for i := 0; i < maxIter; i++ {
		fx := f(x)
		if fx == 0 {
			return x, true
		}
		slope := df(x)
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			return 0, false
		}
		step := fx / slope
		x -= step
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		if math.Abs(step) <= m.Tolerance*math.Max(1, math.Abs(x)) {
			return x, true
		}
	}
	return 0, false
}
