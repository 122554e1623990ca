package physics

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/pvtcalc/internal/calibrant"
	"github.com/san-kum/pvtcalc/internal/eos"
	"github.com/san-kum/pvtcalc/internal/numeric"
)

// Settings are the numerical knobs of a Model.
type Settings struct {
	Step               float64
	GruneisenTolerance float64
	EnergyTolerance    float64
	MinLevels          int
	MaxLevels          int
	Log                *logrus.Entry
}

func DefaultSettings() Settings {
	return Settings{
		Step:               numeric.DefaultStep,
		GruneisenTolerance: 1e-10,
		EnergyTolerance:    1e-8,
		MinLevels:          numeric.DefaultMinLevels,
		MaxLevels:          numeric.DefaultMaxLevels,
	}
}

// Model is the full equation of state of one calibrant: the derived cold
// curve drives the Grüneisen field and the total pressure, the tabulated
// one supplies the reported static bulk modulus.
type Model struct {
	params calibrant.Params
	v0     float64
	cold   ColdCurve
	static ColdCurve
	field  GruneisenField
	energy *numeric.Quadrature
}

// Lattice is everything at compression x that does not depend on
// temperature.
type Lattice struct {
	X              float64
	Volume         float64 // J/bar
	StaticPressure float64 // bar
	Gamma          float64
	Q              float64
	Scale          float64
	Integral       numeric.Estimate
}

func NewModel(p calibrant.Params, s Settings) (*Model, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	log := s.Log
	if log == nil {
		log = logrus.WithField("component", "physics")
	}

	diff := numeric.NewDiffer(s.Step)
	quad := func(tol float64) *numeric.Quadrature {
		q := numeric.NewQuadrature(tol)
		if s.MinLevels > 0 {
			q.MinLevels = s.MinLevels
		}
		if s.MaxLevels > 0 {
			q.MaxLevels = s.MaxLevels
		}
		q.Log = log.WithField("calibrant", p.Name)
		return q
	}

	cold := NewColdCurve(p, diff)
	return &Model{
		params: p,
		v0:     MolarVolume(p.V0, p.FormulaUnits),
		cold:   cold,
		static: TabulatedColdCurve(p, diff),
		field:  NewGruneisenField(p, cold, quad(s.GruneisenTolerance), diff),
		energy: quad(s.EnergyTolerance),
	}, nil
}

func (m *Model) Params() calibrant.Params { return m.params }

// ReferenceVolume is V0 in J/bar.
func (m *Model) ReferenceVolume() float64 { return m.v0 }

func (m *Model) Cold() ColdCurve { return m.cold }

func (m *Model) Field() GruneisenField { return m.field }

func (m *Model) Lattice(x float64) (Lattice, error) {
	if err := CheckCompression(x); err != nil {
		return Lattice{}, err
	}
	l := Lattice{
		X:              x,
		Volume:         x * m.v0,
		StaticPressure: m.cold.Pressure(x),
		Gamma:          m.field.Gamma(x),
		Q:              m.field.LogDerivative(x),
		Integral:       m.field.Integral(x),
	}
	l.Scale = math.Exp(l.Integral.Value)
	if err := finite("lattice", l.StaticPressure, l.Gamma, l.Q, l.Scale); err != nil {
		return Lattice{}, err
	}
	return l, nil
}

func (m *Model) Oscillators(l Lattice) Oscillators {
	return NewOscillators(m.params, l)
}

// TotalPressure is static plus thermal pressure in bar.
func (m *Model) TotalPressure(x, t float64) (float64, error) {
	l, err := m.Lattice(x)
	if err != nil {
		return 0, err
	}
	pth := m.Oscillators(l).Pressure(t)
	if err := finite("thermal pressure", pth); err != nil {
		return 0, err
	}
	return l.StaticPressure + pth, nil
}

// StaticEnergy is ∫ P V0 dξ from x up to 1, in J/mol.
func (m *Model) StaticEnergy(x float64) (numeric.Estimate, error) {
	if err := CheckCompression(x); err != nil {
		return numeric.Estimate{}, err
	}
	est := m.energy.Integrate(func(xi float64) float64 {
		return m.cold.Pressure(xi) * m.v0
	}, x, 1)
	if err := finite("static energy", est.Value); err != nil {
		return est, err
	}
	return est, nil
}

// StaticBulkModulus is the bulk modulus of the tabulated cold curve in bar.
func (m *Model) StaticBulkModulus(x float64) float64 {
	return m.static.BulkModulus(x)
}

func CheckCompression(x float64) error {
	if !(x > 0) || math.IsInf(x, 0) {
		return fmt.Errorf("%w: x=%g", eos.ErrInvalidCompression, x)
	}
	return nil
}

func finite(stage string, vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s", eos.ErrNumericOverflow, stage)
		}
	}
	return nil
}
