package physics

import "math"

// mode is one vibrational branch, evaluated per unit weight and per R.
// Zero-point terms are left out: every caller subtracts the reference
// temperature evaluation at the same volume, where they cancel.
type mode interface {
	weight() float64
	free(t float64) float64
	entropy(t float64) float64
	heatCapacity(t float64) float64
	energy(t float64) float64
}

// generalized is an Einstein-Debye-like oscillator; shape d interpolates
// between a classical (d -> 0) and an Einstein (d -> inf) spectrum.
type generalized struct {
	theta float64
	shape float64
	w     float64
}

func (g generalized) weight() float64 { return g.w }

// occupation returns gg = d ln(1 + θ/(T d)) and b = 1/(e^gg - 1).
func (g generalized) occupation(t float64) (float64, float64) {
	gg := g.shape * math.Log1p(g.theta/(t*g.shape))
	return gg, 1 / math.Expm1(gg)
}

func (g generalized) free(t float64) float64 {
	gg, _ := g.occupation(t)
	// ln(1+b) = -ln(1 - e^-gg)
	return t * math.Log(-math.Expm1(-gg))
}

func (g generalized) entropy(t float64) float64 {
	gg, b := g.occupation(t)
	return -math.Log(-math.Expm1(-gg)) + g.theta*g.shape*b/(t*g.shape+g.theta)
}

func (g generalized) heatCapacity(t float64) float64 {
	_, b := g.occupation(t)
	r := g.theta * g.shape / (t*g.shape + g.theta)
	return r * r * b * (1/g.shape + 1 + b)
}

func (g generalized) energy(t float64) float64 {
	_, b := g.occupation(t)
	return t * g.theta * g.shape * b / (t*g.shape + g.theta)
}

type einstein struct {
	theta float64
	w     float64
}

func (e einstein) weight() float64 { return e.w }

func (e einstein) free(t float64) float64 {
	return t * math.Log(-math.Expm1(-e.theta/t))
}

func (e einstein) entropy(t float64) float64 {
	y := e.theta / t
	return -math.Log(-math.Expm1(-y)) + y/math.Expm1(y)
}

// heatCapacity uses y²/(4 sinh²(y/2)), equal to y² e^y/(e^y-1)², which
// underflows to zero instead of overflowing at low temperature.
func (e einstein) heatCapacity(t float64) float64 {
	y := e.theta / t
	s := math.Sinh(y / 2)
	return y * y / (4 * s * s)
}

func (e einstein) energy(t float64) float64 {
	return e.theta / math.Expm1(e.theta/t)
}
