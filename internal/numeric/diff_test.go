package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDifferDerivative(t *testing.T) {
	d := NewDiffer(DefaultStep)

	assert.InDelta(t, math.Cos(1), d.Derivative(math.Sin, 1), 1e-9)
	assert.InDelta(t, 3.0, d.Derivative(func(x float64) float64 { return x * x * x }, 1), 1e-9)
}

func TestNewDifferDefaultsStep(t *testing.T) {
	assert.Equal(t, DefaultStep, NewDiffer(0).Step)
	assert.Equal(t, 1e-4, NewDiffer(1e-4).Step)
}
