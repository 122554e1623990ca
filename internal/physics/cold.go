package physics

import (
	"math"

	"github.com/san-kum/pvtcalc/internal/calibrant"
	"github.com/san-kum/pvtcalc/internal/numeric"
)

// ColdCurve is the static lattice pressure of the AP2 finite-strain form
//
//	P(x) = 3 K0 exp(c0 (1-f)) (1-f)/f^5 (1 + c2 f (1-f)),  f = x^(1/3)
//
// with K0 in bar. The curve vanishes at x = 1 with slope -K0.
type ColdCurve struct {
	K0   float64
	C0   float64
	C2   float64
	diff numeric.Differ
}

// NewColdCurve derives c0 from the Fermi-gas limit of the calibrant and c2
// from K', so that K'(1) = K'.
func NewColdCurve(p calibrant.Params, diff numeric.Differ) ColdCurve {
	v0 := MolarVolume(p.V0, p.FormulaUnits) * 10
	c0 := -math.Log(3 * p.K0 / (1003.6 * math.Pow(p.Z*p.Atoms/v0, 5.0/3.0)))
	return ColdCurve{
		K0:   p.K0 * BarPerGPa,
		C0:   c0,
		C2:   1.5*(p.KPrime-3) - c0,
		diff: diff,
	}
}

// TabulatedColdCurve uses the c0 and c2 recorded in the table. Falls back
// to the derived pair when the table leaves both at zero.
func TabulatedColdCurve(p calibrant.Params, diff numeric.Differ) ColdCurve {
	if p.C0 == 0 && p.C2 == 0 {
		return NewColdCurve(p, diff)
	}
	return ColdCurve{
		K0:   p.K0 * BarPerGPa,
		C0:   p.C0,
		C2:   p.C2,
		diff: diff,
	}
}

// Pressure in bar.
func (c ColdCurve) Pressure(x float64) float64 {
	f := math.Cbrt(x)
	return 3 * c.K0 * math.Exp(c.C0*(1-f)) * (1 - f) / math.Pow(f, 5) * (1 + c.C2*f*(1-f))
}

// BulkModulus is -x dP/dx in bar, in closed form.
func (c ColdCurve) BulkModulus(x float64) float64 {
	f := math.Cbrt(x)
	poly := 1 + c.C2*f - c.C2*f*f
	u := 1/f - 1
	bracket := (-5/(f*f)+4/f)*poly - u*poly*c.C0 + u*(c.C2-2*c.C2*f)
	return -c.K0 * math.Exp(c.C0*(1-f)) * bracket / (f * f * f)
}

// Curvature is dK/dP at x, taken by central differences of the bulk
// modulus and the pressure with the shared step.
func (c ColdCurve) Curvature(x float64) float64 {
	return c.diff.Derivative(c.BulkModulus, x) / c.diff.Derivative(c.Pressure, x)
}

// BirchMurnaghan3 is the third-order Birch-Murnaghan pressure at
// eta = V0/V, in the units of k0.
func BirchMurnaghan3(eta, k0, kPrime float64) float64 {
	return 1.5 * k0 * (math.Pow(eta, 7.0/3.0) - math.Pow(eta, 5.0/3.0)) *
		(1 + 0.75*(kPrime-4)*(math.Pow(eta, 2.0/3.0)-1))
}
