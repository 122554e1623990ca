package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/pvtcalc/internal/eos"
	"github.com/san-kum/pvtcalc/internal/physics"
)

// accumulator collects the aggregate in internal units: bar, J/bar, J/mol.
type accumulator struct {
	point

	lattice physics.Lattice
	osc     physics.Oscillators

	staticEnergy    float64
	thermalPressure float64
	totalPressure   float64

	helmholtz float64
	entropy   float64
	cv        float64
	internal  float64
	gibbs     float64
	enthalpy  float64

	kStatic  float64
	kThermal float64
	kT       float64
	dPdT     float64
	alpha    float64
	cp       float64
	kS       float64
	gamma    float64
}

// stage is one step of the aggregation. Stages run in order and each
// reads only what the earlier ones wrote.
type stage struct {
	name string
	run  func(m *physics.Model, a *accumulator) error
}

var pipeline = []stage{
	{"lattice", latticeStage},
	{"static energy", staticEnergyStage},
	{"thermal", thermalStage},
	{"pressure", pressureStage},
	{"energies", energyStage},
	{"bulk modulus", bulkModulusStage},
	{"response", responseStage},
}

func latticeStage(m *physics.Model, a *accumulator) error {
	l, err := m.Lattice(a.x)
	if err != nil {
		return err
	}
	a.lattice = l
	a.osc = m.Oscillators(l)
	return nil
}

func staticEnergyStage(m *physics.Model, a *accumulator) error {
	est, err := m.StaticEnergy(a.x)
	if err != nil {
		return err
	}
	a.staticEnergy = est.Value
	return nil
}

func thermalStage(_ *physics.Model, a *accumulator) error {
	a.helmholtz = a.osc.FreeEnergy(a.t)
	a.entropy = a.osc.Entropy(a.t)
	a.cv = a.osc.HeatCapacity(a.t)
	a.thermalPressure = a.osc.Pressure(a.t)
	return finite(a.helmholtz, a.entropy, a.cv, a.thermalPressure)
}

func pressureStage(_ *physics.Model, a *accumulator) error {
	a.totalPressure = a.lattice.StaticPressure + a.thermalPressure
	return finite(a.totalPressure)
}

func energyStage(m *physics.Model, a *accumulator) error {
	pv := a.totalPressure * a.lattice.Volume
	a.helmholtz += a.staticEnergy + m.Params().U0
	a.internal = a.helmholtz + a.t*a.entropy
	a.gibbs = a.helmholtz + pv
	a.enthalpy = a.internal + pv
	return finite(a.helmholtz, a.internal, a.gibbs, a.enthalpy)
}

func bulkModulusStage(m *physics.Model, a *accumulator) error {
	a.kStatic = m.StaticBulkModulus(a.x)
	a.kThermal = a.osc.BulkModulus(a.t)
	a.kT = a.kStatic + a.kThermal
	return finite(a.kStatic, a.kThermal)
}

func responseStage(_ *physics.Model, a *accumulator) error {
	v := a.lattice.Volume
	a.dPdT = a.osc.PressureSlope(a.t)
	a.alpha = a.dPdT / a.kT
	a.cp = a.cv + a.alpha*a.alpha*v*a.t*a.kT
	a.kS = a.kT + a.t*v*a.dPdT*a.dPdT/a.cv
	a.gamma = a.alpha * a.kT * v / a.cv
	return finite(a.dPdT, a.alpha, a.cp, a.kS, a.gamma)
}

func (e *Engine) aggregate(ctx context.Context, pt point) (*eos.State, error) {
	a := &accumulator{point: pt}
	for _, st := range pipeline {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := st.run(e.model, a); err != nil {
			return nil, fmt.Errorf("%s: %w", st.name, err)
		}
	}

	s := a.state(e.model.Params().Name)
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: state", eos.ErrNumericOverflow)
	}
	return s, nil
}

func (a *accumulator) state(name string) *eos.State {
	const gpa = 1 / physics.BarPerGPa

	pressure := a.totalPressure * gpa
	if p, ok := a.pressure.Get(); ok {
		pressure = p
	}
	return &eos.State{
		Calibrant:   name,
		Pressure:    pressure,
		Volume:      a.volume,
		Temperature: a.t,

		Compression:     a.x,
		MolarVolume:     a.lattice.Volume * 10,
		ModelPressure:   a.totalPressure * gpa,
		StaticPressure:  a.lattice.StaticPressure * gpa,
		ThermalPressure: a.thermalPressure * gpa,

		HelmholtzEnergy: a.helmholtz,
		GibbsEnergy:     a.gibbs,
		InternalEnergy:  a.internal,
		Enthalpy:        a.enthalpy,
		StaticEnergy:    a.staticEnergy,
		Entropy:         a.entropy,

		HeatCapacityV:      a.cv,
		HeatCapacityP:      a.cp,
		BulkModulusT:       a.kT * gpa,
		BulkModulusStatic:  a.kStatic * gpa,
		BulkModulusThermal: a.kThermal * gpa,
		BulkModulusS:       a.kS * gpa,
		Expansivity:        a.alpha,
		PressureSlope:      a.dPdT * gpa,
		Gruneisen:          a.gamma,
		GruneisenLattice:   a.lattice.Gamma,
		FrequencyScale:     a.lattice.Scale,
	}
}

func finite(vals ...float64) error {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return eos.ErrNumericOverflow
		}
	}
	return nil
}
