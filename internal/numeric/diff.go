package numeric

import "gonum.org/v1/gonum/diff/fd"

const DefaultStep = 1e-5

// Differ takes central-difference first derivatives with one fixed step.
// Every derivative in the engine goes through the same Differ so that
// quantities which agree analytically also agree numerically.
type Differ struct {
	Step float64
}

func NewDiffer(step float64) Differ {
	if step <= 0 {
		step = DefaultStep
	}
	return Differ{Step: step}
}

// Derivative returns (f(x+h) - f(x-h)) / 2h.
func (d Differ) Derivative(f func(float64) float64, x float64) float64 {
	return fd.Derivative(f, x, &fd.Settings{
		Formula: fd.Central,
		Step:    d.Step,
	})
}
