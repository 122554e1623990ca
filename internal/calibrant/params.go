package calibrant

import (
	"math"

	"github.com/pkg/errors"
)

const (
	DefaultFormulaUnits = 4.0
	DefaultT0           = 298.15
)

// GeneralizedMode is an Einstein-Debye-like oscillator with shape d.
type GeneralizedMode struct {
	Theta  float64 `yaml:"theta"`
	Shape  float64 `yaml:"shape"`
	Weight float64 `yaml:"weight"`
}

type EinsteinMode struct {
	Theta  float64 `yaml:"theta"`
	Weight float64 `yaml:"weight"`
}

// PowerLaw is a correction term coefficient·1e-6·x^exponent.
type PowerLaw struct {
	Coefficient float64 `yaml:"coefficient"`
	Exponent    float64 `yaml:"exponent"`
}

// Expansion holds the empirical coefficients of the temperature inversion.
type Expansion struct {
	Alpha298  float64 `yaml:"alpha_298"`
	DKDT      float64 `yaml:"dk_dt"`
	DAlphaDT  float64 `yaml:"dalpha_dt"`
	DKPrimeDT float64 `yaml:"dkprime_dt"`
}

// Params is the immutable material record of one pressure calibrant.
type Params struct {
	Name         string             `yaml:"name"`
	U0           float64            `yaml:"u0"`
	Atoms        float64            `yaml:"n"`
	FormulaUnits float64            `yaml:"formula_units"`
	V0           float64            `yaml:"v0"`
	K0           float64            `yaml:"k0"`
	KPrime       float64            `yaml:"k_prime"`
	Generalized  [2]GeneralizedMode `yaml:"generalized"`
	Einstein     [2]EinsteinMode    `yaml:"einstein"`
	Delta        float64            `yaml:"delta"`
	Slope        float64            `yaml:"t"`
	Beta         float64            `yaml:"beta"`
	Anharmonic   PowerLaw           `yaml:"anharmonic"`
	Electronic   PowerLaw           `yaml:"electronic"`
	C0           float64            `yaml:"c0"`
	C2           float64            `yaml:"c2"`
	T0           float64            `yaml:"t0"`
	Z            float64            `yaml:"z"`
	Expansion    Expansion          `yaml:"thermal_expansion"`
}

// WithDefaults fills the fields a table entry may leave out.
func (p Params) WithDefaults() Params {
	if p.FormulaUnits == 0 {
		p.FormulaUnits = DefaultFormulaUnits
	}
	if p.T0 == 0 {
		p.T0 = DefaultT0
	}
	for i := range p.Generalized {
		if p.Generalized[i].Shape == 0 {
			p.Generalized[i].Shape = 1
		}
		if p.Generalized[i].Theta == 0 {
			p.Generalized[i].Theta = 1
		}
	}
	return p
}

func (p Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"v0", p.V0},
		{"k0", p.K0},
		{"n", p.Atoms},
		{"z", p.Z},
		{"t0", p.T0},
		{"formula_units", p.FormulaUnits},
	}
	for _, f := range positive {
		if !(f.v > 0) || math.IsInf(f.v, 0) {
			return errors.Wrapf(ErrInvalidParams, "%s: %s must be positive, got %g", p.Name, f.name, f.v)
		}
	}

	finite := []float64{
		p.U0, p.KPrime, p.Delta, p.Slope, p.Beta, p.C0, p.C2,
		p.Anharmonic.Coefficient, p.Anharmonic.Exponent,
		p.Electronic.Coefficient, p.Electronic.Exponent,
		p.Expansion.Alpha298, p.Expansion.DKDT, p.Expansion.DAlphaDT, p.Expansion.DKPrimeDT,
	}
	for _, m := range p.Generalized {
		finite = append(finite, m.Theta, m.Shape, m.Weight)
	}
	for _, m := range p.Einstein {
		finite = append(finite, m.Theta, m.Weight)
	}
	for _, v := range finite {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidParams, "%s: non-finite parameter", p.Name)
		}
	}

	for i, m := range p.Einstein {
		if m.Weight != 0 && m.Theta <= 0 {
			return errors.Wrapf(ErrInvalidParams, "%s: einstein mode %d needs a positive theta", p.Name, i+1)
		}
	}
	for i, m := range p.Generalized {
		if m.Weight != 0 && (m.Theta <= 0 || m.Shape <= 0) {
			return errors.Wrapf(ErrInvalidParams, "%s: generalized mode %d needs positive theta and shape", p.Name, i+1)
		}
	}
	return nil
}

// GetParams exposes the scalar parameters by their table keys.
func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"u0":            p.U0,
		"n":             p.Atoms,
		"formula_units": p.FormulaUnits,
		"v0":            p.V0,
		"k0":            p.K0,
		"k_prime":       p.KPrime,
		"theta_1":       p.Einstein[0].Theta,
		"weight_1":      p.Einstein[0].Weight,
		"theta_2":       p.Einstein[1].Theta,
		"weight_2":      p.Einstein[1].Weight,
		"delta":         p.Delta,
		"t":             p.Slope,
		"beta":          p.Beta,
		"a0":            p.Anharmonic.Coefficient,
		"m":             p.Anharmonic.Exponent,
		"e0":            p.Electronic.Coefficient,
		"g":             p.Electronic.Exponent,
		"c0":            p.C0,
		"c2":            p.C2,
		"t0":            p.T0,
		"z":             p.Z,
		"alpha_298":     p.Expansion.Alpha298,
		"dk_dt":         p.Expansion.DKDT,
		"dalpha_dt":     p.Expansion.DAlphaDT,
		"dkprime_dt":    p.Expansion.DKPrimeDT,
	}
}

// SetParam returns a copy of p with one scalar parameter replaced.
func (p Params) SetParam(name string, value float64) (Params, error) {
	switch name {
	case "u0":
		p.U0 = value
	case "n":
		p.Atoms = value
	case "formula_units":
		p.FormulaUnits = value
	case "v0":
		p.V0 = value
	case "k0":
		p.K0 = value
	case "k_prime":
		p.KPrime = value
	case "theta_1":
		p.Einstein[0].Theta = value
	case "weight_1":
		p.Einstein[0].Weight = value
	case "theta_2":
		p.Einstein[1].Theta = value
	case "weight_2":
		p.Einstein[1].Weight = value
	case "delta":
		p.Delta = value
	case "t":
		p.Slope = value
	case "beta":
		p.Beta = value
	case "a0":
		p.Anharmonic.Coefficient = value
	case "m":
		p.Anharmonic.Exponent = value
	case "e0":
		p.Electronic.Coefficient = value
	case "g":
		p.Electronic.Exponent = value
	case "c0":
		p.C0 = value
	case "c2":
		p.C2 = value
	case "t0":
		p.T0 = value
	case "z":
		p.Z = value
	case "alpha_298":
		p.Expansion.Alpha298 = value
	case "dk_dt":
		p.Expansion.DKDT = value
	case "dalpha_dt":
		p.Expansion.DAlphaDT = value
	case "dkprime_dt":
		p.Expansion.DKPrimeDT = value
	default:
		return p, errors.Errorf("unknown param: %s", name)
	}
	return p, nil
}
