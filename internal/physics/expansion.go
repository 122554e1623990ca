package physics

import "github.com/san-kum/pvtcalc/internal/calibrant"

// ExpansionModel is the empirical thermal-pressure polynomial used to
// recover temperature from (P, V):
//
//	ΔP(ΔT) = (a + (b+c) ΔT + d ΔT²) ΔT
//
// with a = α K0, b = α dK/dT, c = K0 dα/dT and d = dα/dT dK/dT, in GPa.
// dK'/dT is carried by the table but does not enter the model.
type ExpansionModel struct {
	K0     float64
	KPrime float64
	A      float64
	B      float64
	C      float64
	D      float64
}

func NewExpansionModel(p calibrant.Params) ExpansionModel {
	e := p.Expansion
	return ExpansionModel{
		K0:     p.K0,
		KPrime: p.KPrime,
		A:      e.Alpha298 * p.K0,
		B:      e.Alpha298 * e.DKDT,
		C:      p.K0 * e.DAlphaDT,
		D:      e.DAlphaDT * e.DKDT,
	}
}

// ThermalPressure is ΔP at temperature offset dt.
func (m ExpansionModel) ThermalPressure(dt float64) float64 {
	return (m.A + (m.B+m.C)*dt + m.D*dt*dt) * dt
}

// Slope is dΔP/dΔT.
func (m ExpansionModel) Slope(dt float64) float64 {
	return m.A + 2*(m.B+m.C)*dt + 3*m.D*dt*dt
}

// StaticPressure is the BM3 pressure at eta = V0/V in GPa.
func (m ExpansionModel) StaticPressure(eta float64) float64 {
	return BirchMurnaghan3(eta, m.K0, m.KPrime)
}

// Residual returns the function whose root is the temperature offset at
// which the model reproduces pressure p (GPa) at eta = V0/V.
func (m ExpansionModel) Residual(p, eta float64) func(float64) float64 {
	y := p - m.StaticPressure(eta)
	return func(dt float64) float64 {
		return m.ThermalPressure(dt) - y
	}
}
