package physics

import (
	"math"

	"github.com/san-kum/pvtcalc/internal/calibrant"
	"github.com/san-kum/pvtcalc/internal/numeric"
)

// GruneisenField is the volume-dependent Grüneisen parameter built from the
// cold curve and its curvature:
//
//	γ(x) = δ + (-3K + 2P g + 9K K' - 6g K) / (6 (3K - 2P g)),  g = t - β x^(1/3)
type GruneisenField struct {
	Delta float64
	Slope float64
	Beta  float64

	cold ColdCurve
	quad *numeric.Quadrature
	diff numeric.Differ
}

func NewGruneisenField(p calibrant.Params, cold ColdCurve, quad *numeric.Quadrature, diff numeric.Differ) GruneisenField {
	return GruneisenField{
		Delta: p.Delta,
		Slope: p.Slope,
		Beta:  p.Beta,
		cold:  cold,
		quad:  quad,
		diff:  diff,
	}
}

func (g GruneisenField) Gamma(x float64) float64 {
	p := g.cold.Pressure(x)
	k := g.cold.BulkModulus(x)
	kp := g.cold.Curvature(x)
	gt := g.Slope - g.Beta*math.Cbrt(x)
	return g.Delta + (-3*k+2*p*gt+9*k*kp-6*gt*k)/6/(3*k-2*p*gt)
}

// Integral is ∫ γ(ξ)/ξ dξ from x up to 1. exp(Integral) scales every
// characteristic temperature from the reference volume to x.
func (g GruneisenField) Integral(x float64) numeric.Estimate {
	return g.quad.Integrate(func(xi float64) float64 {
		return g.Gamma(xi) / xi
	}, x, 1)
}

// LogDerivative is q = d ln γ / d ln x.
func (g GruneisenField) LogDerivative(x float64) float64 {
	return x / g.Gamma(x) * g.diff.Derivative(g.Gamma, x)
}
