package eos

import (
	"fmt"
	"math"
	"strconv"
)

// Value is one entry of a query: a known number or the unknown marker.
type Value struct {
	v     float64
	known bool
}

func Known(v float64) Value {
	return Value{v: v, known: true}
}

func Unknown() Value {
	return Value{}
}

func (v Value) IsKnown() bool {
	return v.known
}

// Get returns the number and whether it is known.
func (v Value) Get() (float64, bool) {
	return v.v, v.known
}

func (v Value) String() string {
	if !v.known {
		return "?"
	}
	return strconv.FormatFloat(v.v, 'g', -1, 64)
}

type Query struct {
	Pressure    Value // GPa
	Volume      Value // Å³ per unit cell
	Temperature Value // K
}

func (q Query) String() string {
	return fmt.Sprintf("P=%s V=%s T=%s", q.Pressure, q.Volume, q.Temperature)
}

// Branch selects the solve direction from the query. It does no numerical
// work beyond checking the known values.
func (q Query) Branch() (Branch, error) {
	unknown := 0
	branch := Branch(0)
	for _, c := range []struct {
		v Value
		b Branch
	}{
		{q.Pressure, SolveForPressure},
		{q.Volume, SolveForVolume},
		{q.Temperature, SolveForTemperature},
	} {
		if !c.v.known {
			unknown++
			branch = c.b
			continue
		}
		if math.IsNaN(c.v.v) || math.IsInf(c.v.v, 0) {
			return 0, fmt.Errorf("%w: non-finite %s", ErrInvalidQuery, c.b.Quantity())
		}
	}
	if unknown != 1 {
		return 0, fmt.Errorf("%w: %d unknowns, want exactly one", ErrInvalidQuery, unknown)
	}
	if t, ok := q.Temperature.Get(); ok && t <= 0 {
		return 0, fmt.Errorf("%w: temperature %g K", ErrInvalidQuery, t)
	}
	return branch, nil
}

type Branch int

const (
	SolveForPressure Branch = iota + 1
	SolveForVolume
	SolveForTemperature
)

func (b Branch) String() string {
	switch b {
	case SolveForPressure:
		return "solve-pressure"
	case SolveForVolume:
		return "solve-volume"
	case SolveForTemperature:
		return "solve-temperature"
	default:
		return "query"
	}
}

func (b Branch) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// Quantity names the variable the branch solves for.
func (b Branch) Quantity() string {
	switch b {
	case SolveForPressure:
		return "pressure"
	case SolveForVolume:
		return "volume"
	case SolveForTemperature:
		return "temperature"
	default:
		return "unknown"
	}
}

// State is the thermodynamic state of a calibrant at one (P, V, T) point.
type State struct {
	Calibrant string `json:"calibrant"`
	Branch    Branch `json:"branch"`

	Pressure    float64 `json:"pressure"`
	Volume      float64 `json:"volume"`
	Temperature float64 `json:"temperature"`

	Compression     float64 `json:"compression"`
	MolarVolume     float64 `json:"molar_volume"`
	ModelPressure   float64 `json:"model_pressure"`
	StaticPressure  float64 `json:"static_pressure"`
	ThermalPressure float64 `json:"thermal_pressure"`

	HelmholtzEnergy float64 `json:"helmholtz_energy"`
	GibbsEnergy     float64 `json:"gibbs_energy"`
	InternalEnergy  float64 `json:"internal_energy"`
	Enthalpy        float64 `json:"enthalpy"`
	StaticEnergy    float64 `json:"static_energy"`
	Entropy         float64 `json:"entropy"`

	HeatCapacityV      float64 `json:"cv"`
	HeatCapacityP      float64 `json:"cp"`
	BulkModulusT       float64 `json:"kt"`
	BulkModulusStatic  float64 `json:"kt_static"`
	BulkModulusThermal float64 `json:"kt_thermal"`
	BulkModulusS       float64 `json:"ks"`
	Expansivity        float64 `json:"alpha"`
	PressureSlope      float64 `json:"dpdt"`
	Gruneisen          float64 `json:"gamma"`
	GruneisenLattice   float64 `json:"gamma_lattice"`
	FrequencyScale     float64 `json:"frequency_scale"`
}

// IsValid reports whether every numeric field is finite.
func (s *State) IsValid() bool {
	for _, v := range s.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Column describes one numeric field of a State for tabular output.
type Column struct {
	Name string
	Unit string
	Get  func(*State) float64
}

var Columns = []Column{
	{"pressure", "GPa", func(s *State) float64 { return s.Pressure }},
	{"volume", "A^3", func(s *State) float64 { return s.Volume }},
	{"temperature", "K", func(s *State) float64 { return s.Temperature }},
	{"compression", "", func(s *State) float64 { return s.Compression }},
	{"molar_volume", "cm^3/mol", func(s *State) float64 { return s.MolarVolume }},
	{"model_pressure", "GPa", func(s *State) float64 { return s.ModelPressure }},
	{"static_pressure", "GPa", func(s *State) float64 { return s.StaticPressure }},
	{"thermal_pressure", "GPa", func(s *State) float64 { return s.ThermalPressure }},
	{"helmholtz_energy", "J/mol", func(s *State) float64 { return s.HelmholtzEnergy }},
	{"gibbs_energy", "J/mol", func(s *State) float64 { return s.GibbsEnergy }},
	{"internal_energy", "J/mol", func(s *State) float64 { return s.InternalEnergy }},
	{"enthalpy", "J/mol", func(s *State) float64 { return s.Enthalpy }},
	{"static_energy", "J/mol", func(s *State) float64 { return s.StaticEnergy }},
	{"entropy", "J/mol/K", func(s *State) float64 { return s.Entropy }},
	{"cv", "J/mol/K", func(s *State) float64 { return s.HeatCapacityV }},
	{"cp", "J/mol/K", func(s *State) float64 { return s.HeatCapacityP }},
	{"kt", "GPa", func(s *State) float64 { return s.BulkModulusT }},
	{"kt_static", "GPa", func(s *State) float64 { return s.BulkModulusStatic }},
	{"kt_thermal", "GPa", func(s *State) float64 { return s.BulkModulusThermal }},
	{"ks", "GPa", func(s *State) float64 { return s.BulkModulusS }},
	{"alpha", "1/K", func(s *State) float64 { return s.Expansivity }},
	{"dpdt", "GPa/K", func(s *State) float64 { return s.PressureSlope }},
	{"gamma", "", func(s *State) float64 { return s.Gruneisen }},
	{"gamma_lattice", "", func(s *State) float64 { return s.GruneisenLattice }},
	{"frequency_scale", "", func(s *State) float64 { return s.FrequencyScale }},
}

// ColumnIndex returns the position of the named column, or -1.
func ColumnIndex(name string) int {
	for i, c := range Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames lists the column names in output order.
func ColumnNames() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.Name
	}
	return names
}

// Values returns the numeric fields in Columns order.
func (s *State) Values() []float64 {
	out := make([]float64, len(Columns))
	for i, c := range Columns {
		out[i] = c.Get(s)
	}
	return out
}
