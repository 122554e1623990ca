package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadraturePolynomial(t *testing.T) {
	q := NewQuadrature(1e-12)
	est := q.Integrate(func(x float64) float64 { return x * x }, 0, 1)

	require.True(t, est.Converged)
	assert.InDelta(t, 1.0/3.0, est.Value, 1e-14)
	assert.Equal(t, DefaultMinLevels, est.Levels)
}

func TestQuadratureTranscendental(t *testing.T) {
	q := NewQuadrature(1e-12)

	sin := q.Integrate(math.Sin, 0, math.Pi)
	require.True(t, sin.Converged)
	assert.InDelta(t, 2.0, sin.Value, 1e-9)

	inv := q.Integrate(func(x float64) float64 { return 1 / x }, 0.5, 1)
	require.True(t, inv.Converged)
	assert.InDelta(t, math.Ln2, inv.Value, 1e-10)
}

func TestQuadratureAntisymmetry(t *testing.T) {
	q := NewQuadrature(1e-10)
	bounds := [][2]float64{{0.3, 1.7}, {1, 0.4}, {-2, 3}}

	for _, b := range bounds {
		fwd := q.Integrate(math.Exp, b[0], b[1])
		rev := q.Integrate(math.Exp, b[1], b[0])
		assert.Equal(t, fwd.Value, -rev.Value, "bounds %v", b)
	}

	down := q.Integrate(math.Exp, 1, 0)
	assert.InDelta(t, -(math.E - 1), down.Value, 1e-9)
}

func TestQuadratureEmptyInterval(t *testing.T) {
	q := NewQuadrature(1e-10)
	est := q.Integrate(math.Exp, 0.7, 0.7)

	assert.Equal(t, 0.0, est.Value)
	assert.True(t, est.Converged)
	assert.Zero(t, est.Evaluations)
}

func TestQuadratureLevelCap(t *testing.T) {
	q := &Quadrature{Tolerance: 0, Floor: 0, MinLevels: 2, MaxLevels: 3}
	est := q.Integrate(math.Sqrt, 0, 1)

	assert.False(t, est.Converged)
	assert.Equal(t, 3, est.Levels)
	assert.InDelta(t, 2.0/3.0, est.Value, 1e-2)
}

func TestQuadratureNonFinite(t *testing.T) {
	q := NewQuadrature(1e-10)
	est := q.Integrate(func(x float64) float64 { return 1 / x }, 0, 1)

	assert.False(t, est.Converged)
	assert.True(t, math.IsInf(est.Value, 0) || math.IsNaN(est.Value))
}
