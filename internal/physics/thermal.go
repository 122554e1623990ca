package physics

import (
	"math"

	"github.com/san-kum/pvtcalc/internal/calibrant"
)

// Oscillators evaluates the thermal part of the free energy at one lattice
// point. Free energy, pressure and the bulk-modulus correction are taken
// relative to the reference temperature so they vanish there; entropy,
// heat capacity and dP/dT are absolute.
type Oscillators struct {
	modes      []mode
	anharmonic calibrant.PowerLaw
	electronic calibrant.PowerLaw
	atoms      float64
	reference  float64
	lattice    Lattice
}

// NewOscillators scales every characteristic temperature by the lattice
// frequency factor. Zero-weight modes are dropped.
func NewOscillators(p calibrant.Params, l Lattice) Oscillators {
	o := Oscillators{
		anharmonic: p.Anharmonic,
		electronic: p.Electronic,
		atoms:      p.Atoms,
		reference:  p.T0,
		lattice:    l,
	}
	for _, m := range p.Generalized {
		if m.Weight != 0 {
			o.modes = append(o.modes, generalized{theta: m.Theta * l.Scale, shape: m.Shape, w: m.Weight})
		}
	}
	for _, m := range p.Einstein {
		if m.Weight != 0 {
			o.modes = append(o.modes, einstein{theta: m.Theta * l.Scale, w: m.Weight})
		}
	}
	return o
}

// Reference is the temperature at which the relative terms vanish.
func (o Oscillators) Reference() float64 {
	return o.reference
}

// powerLaw returns 1.5 n R c 1e-6 x^m, the common prefactor of the
// anharmonic and electronic terms.
func (o Oscillators) powerLaw(pl calibrant.PowerLaw) float64 {
	if pl.Coefficient == 0 {
		return 0
	}
	return 1.5 * o.atoms * GasConstant * pl.Coefficient * 1e-6 * math.Pow(o.lattice.X, pl.Exponent)
}

// FreeEnergy in J/mol.
func (o Oscillators) FreeEnergy(t float64) float64 {
	tr := o.reference
	sum := 0.0
	for _, m := range o.modes {
		sum += m.weight() * GasConstant * (m.free(t) - m.free(tr))
	}
	dt2 := t*t - tr*tr
	sum -= o.powerLaw(o.anharmonic) * dt2
	sum -= o.powerLaw(o.electronic) * dt2
	return sum
}

// Entropy in J/(mol K).
func (o Oscillators) Entropy(t float64) float64 {
	sum := 0.0
	for _, m := range o.modes {
		sum += m.weight() * GasConstant * m.entropy(t)
	}
	sum += 2 * o.powerLaw(o.anharmonic) * t
	sum += 2 * o.powerLaw(o.electronic) * t
	return sum
}

// HeatCapacity is Cv in J/(mol K).
func (o Oscillators) HeatCapacity(t float64) float64 {
	sum := 0.0
	for _, m := range o.modes {
		sum += m.weight() * GasConstant * m.heatCapacity(t)
	}
	sum += 2 * o.powerLaw(o.anharmonic) * t
	sum += 2 * o.powerLaw(o.electronic) * t
	return sum
}

// Pressure is the thermal pressure in bar.
func (o Oscillators) Pressure(t float64) float64 {
	tr := o.reference
	l := o.lattice
	sum := 0.0
	for _, m := range o.modes {
		sum += m.weight() * GasConstant * (m.energy(t) - m.energy(tr)) * l.Gamma / l.Volume
	}
	dt2 := t*t - tr*tr
	sum += o.powerLaw(o.anharmonic) * o.anharmonic.Exponent / l.Volume * dt2
	sum += o.powerLaw(o.electronic) * o.electronic.Exponent / l.Volume * dt2
	return sum
}

// BulkModulus is the thermal correction to the isothermal bulk modulus in
// bar.
func (o Oscillators) BulkModulus(t float64) float64 {
	tr := o.reference
	l := o.lattice
	gv := l.Gamma / l.Volume
	sum := 0.0
	for _, m := range o.modes {
		de := m.energy(t) - m.energy(tr)
		dc := t*m.heatCapacity(t) - tr*m.heatCapacity(tr)
		sum += m.weight() * GasConstant * (de*gv*(1+l.Gamma-l.Q) - l.Gamma*gv*dc)
	}
	dt2 := t*t - tr*tr
	for _, pl := range []calibrant.PowerLaw{o.anharmonic, o.electronic} {
		sum += o.powerLaw(pl) * pl.Exponent / l.Volume * dt2 * (1 - pl.Exponent)
	}
	return sum
}

// PressureSlope is (∂P/∂T) at constant volume in bar/K.
func (o Oscillators) PressureSlope(t float64) float64 {
	l := o.lattice
	sum := 0.0
	for _, m := range o.modes {
		sum += m.weight() * GasConstant * m.heatCapacity(t)
	}
	sum *= l.Gamma / l.Volume
	sum += 2 * o.powerLaw(o.anharmonic) * t * o.anharmonic.Exponent / l.Volume
	sum += 2 * o.powerLaw(o.electronic) * t * o.electronic.Exponent / l.Volume
	return sum
}
