package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCalibrant = "Pt"
	DefaultWorkers   = 4

	DefaultLowerBound       = 0.4
	DefaultUpperBound       = 1.3
	DefaultBracketTolerance = 1e-11
	DefaultMaxIterations    = 100000
	DefaultResidualScale    = 5e6
	DefaultFiniteDiffStep   = 1e-5
	DefaultGruneisenTol     = 1e-10
	DefaultEnergyTol        = 1e-8
	DefaultMinLevels        = 3
	DefaultMaxLevels        = 16
	DefaultSeedStart        = 0.0
	DefaultSeedStop         = 2000.0
	DefaultSeedStep         = 100.0
	DefaultRootTolerance    = 1e-12
	DefaultNewtonIterations = 200
	DefaultRootDistinct     = 1e-6
	DefaultSweepSteps       = 20
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Calibrant string       `yaml:"calibrant"`
	Table     string       `yaml:"table,omitempty"`
	Workers   int          `yaml:"workers"`
	Solver    SolverConfig `yaml:"solver"`
	Sweep     SweepConfig  `yaml:"sweep"`
}

// SolverConfig holds the numerical settings of one engine.
type SolverConfig struct {
	LowerBound       float64 `yaml:"lower_bound"`
	UpperBound       float64 `yaml:"upper_bound"`
	BracketTolerance float64 `yaml:"bracket_tolerance"`
	MaxIterations    int     `yaml:"max_iterations"`
	ResidualScale    float64 `yaml:"residual_scale"`

	FiniteDiffStep     float64 `yaml:"finite_diff_step"`
	GruneisenTolerance float64 `yaml:"gruneisen_tolerance"`
	EnergyTolerance    float64 `yaml:"energy_tolerance"`
	MinLevels          int     `yaml:"min_levels"`
	MaxLevels          int     `yaml:"max_levels"`

	SeedStart        float64 `yaml:"seed_start"`
	SeedStop         float64 `yaml:"seed_stop"`
	SeedStep         float64 `yaml:"seed_step"`
	RootTolerance    float64 `yaml:"root_tolerance"`
	NewtonIterations int     `yaml:"newton_iterations"`
	RootDistinct     float64 `yaml:"root_distinct"`

	// LegacyReciprocalCompression evaluates the temperature branch at
	// x = V0/V instead of V/V0.
	LegacyReciprocalCompression bool `yaml:"legacy_reciprocal_compression"`
}

// SweepConfig describes a one-dimensional grid of queries. Fixed is the
// held quantity (K for isotherms, GPa for isobars, Å³ for isochores).
type SweepConfig struct {
	Kind  string  `yaml:"kind"`
	Fixed float64 `yaml:"fixed"`
	From  float64 `yaml:"from"`
	To    float64 `yaml:"to"`
	Steps int     `yaml:"steps"`
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		LowerBound:         DefaultLowerBound,
		UpperBound:         DefaultUpperBound,
		BracketTolerance:   DefaultBracketTolerance,
		MaxIterations:      DefaultMaxIterations,
		ResidualScale:      DefaultResidualScale,
		FiniteDiffStep:     DefaultFiniteDiffStep,
		GruneisenTolerance: DefaultGruneisenTol,
		EnergyTolerance:    DefaultEnergyTol,
		MinLevels:          DefaultMinLevels,
		MaxLevels:          DefaultMaxLevels,
		SeedStart:          DefaultSeedStart,
		SeedStop:           DefaultSeedStop,
		SeedStep:           DefaultSeedStep,
		RootTolerance:      DefaultRootTolerance,
		NewtonIterations:   DefaultNewtonIterations,
		RootDistinct:       DefaultRootDistinct,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Calibrant: DefaultCalibrant,
		Workers:   DefaultWorkers,
		Solver:    DefaultSolverConfig(),
		Sweep: SweepConfig{
			Kind:  "isotherm",
			Fixed: 300,
			From:  0,
			To:    100,
			Steps: DefaultSweepSteps,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "failed to write config %s", path)
}

func (c *Config) Validate() error {
	if c.Calibrant == "" && c.Table == "" {
		return errors.Wrap(ErrInvalidConfig, "calibrant is required")
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrInvalidConfig, "workers must be non-negative, got %d", c.Workers)
	}
	return c.Solver.Validate()
}

func (s SolverConfig) Validate() error {
	switch {
	case !(s.LowerBound > 0) || !(s.UpperBound > s.LowerBound):
		return errors.Wrapf(ErrInvalidConfig, "bracket [%g, %g] must be positive and ordered", s.LowerBound, s.UpperBound)
	case !(s.BracketTolerance > 0):
		return errors.Wrapf(ErrInvalidConfig, "bracket_tolerance must be positive, got %g", s.BracketTolerance)
	case s.MaxIterations <= 0:
		return errors.Wrapf(ErrInvalidConfig, "max_iterations must be positive, got %d", s.MaxIterations)
	case !(s.FiniteDiffStep > 0):
		return errors.Wrapf(ErrInvalidConfig, "finite_diff_step must be positive, got %g", s.FiniteDiffStep)
	case !(s.GruneisenTolerance > 0) || !(s.EnergyTolerance > 0):
		return errors.Wrap(ErrInvalidConfig, "integral tolerances must be positive")
	case s.MaxLevels < s.MinLevels:
		return errors.Wrapf(ErrInvalidConfig, "max_levels %d below min_levels %d", s.MaxLevels, s.MinLevels)
	case !(s.SeedStep > 0) || !(s.SeedStop > s.SeedStart):
		return errors.Wrapf(ErrInvalidConfig, "seed grid %g:%g:%g is empty", s.SeedStart, s.SeedStep, s.SeedStop)
	}
	return nil
}
