package solver

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/pvtcalc/internal/calibrant"
	"github.com/san-kum/pvtcalc/internal/config"
	"github.com/san-kum/pvtcalc/internal/eos"
	"github.com/san-kum/pvtcalc/internal/numeric"
	"github.com/san-kum/pvtcalc/internal/physics"
)

// Engine solves queries against one calibrant. It holds no mutable state
// and may be shared between goroutines.
type Engine struct {
	model     *physics.Model
	expansion physics.ExpansionModel
	cfg       config.SolverConfig
	bisect    numeric.Bisection
	multi     numeric.MultiStart
	log       *logrus.Entry
	observers []Observer
}

// Observer is notified after every solve, failed or not. Batch calls
// observers from several goroutines at once.
type Observer interface {
	OnSolve(q eos.Query, s *eos.State, err error)
}

type Option func(*Engine)

func WithLogger(log *logrus.Entry) Option {
	return func(e *Engine) { e.log = log }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

func New(p calibrant.Params, cfg config.SolverConfig, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{
		expansion: physics.NewExpansionModel(p),
		cfg:       cfg,
		bisect: numeric.Bisection{
			Lower:         cfg.LowerBound,
			Upper:         cfg.UpperBound,
			Tolerance:     cfg.BracketTolerance,
			MaxIterations: cfg.MaxIterations,
			Scale:         cfg.ResidualScale,
		},
		multi: numeric.MultiStart{
			Seeds:         numeric.SeedRange(cfg.SeedStart, cfg.SeedStop, cfg.SeedStep),
			Tolerance:     cfg.RootTolerance,
			MaxIterations: cfg.NewtonIterations,
			Distinct:      cfg.RootDistinct,
		},
		log: logrus.WithField("component", "solver"),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithField("calibrant", p.Name)

	model, err := physics.NewModel(p, physics.Settings{
		Step:               cfg.FiniteDiffStep,
		GruneisenTolerance: cfg.GruneisenTolerance,
		EnergyTolerance:    cfg.EnergyTolerance,
		MinLevels:          cfg.MinLevels,
		MaxLevels:          cfg.MaxLevels,
		Log:                e.log,
	})
	if err != nil {
		return nil, err
	}
	e.model = model
	return e, nil
}

func (e *Engine) Params() calibrant.Params { return e.model.Params() }

func (e *Engine) Model() *physics.Model { return e.model }

// Solve derives the unknown of q and the full state at the solved point.
func (e *Engine) Solve(ctx context.Context, q eos.Query) (*eos.State, error) {
	s, err := e.solve(ctx, q)
	for _, o := range e.observers {
		o.OnSolve(q, s, err)
	}
	return s, err
}

func (e *Engine) solve(ctx context.Context, q eos.Query) (*eos.State, error) {
	branch, err := q.Branch()
	if err != nil {
		return nil, &eos.SolveError{Stage: "query", Wrapped: err}
	}
	log := e.log.WithFields(logrus.Fields{"branch": branch.String(), "query": q.String()})
	log.Debug("solving")

	var pt point
	switch branch {
	case eos.SolveForPressure:
		pt, err = e.pressurePoint(q)
	case eos.SolveForVolume:
		pt, err = e.volumePoint(ctx, q, log)
	case eos.SolveForTemperature:
		pt, err = e.temperaturePoint(ctx, q, log)
	default:
		err = &eos.SolveError{Branch: branch, Stage: "query", Wrapped: fmt.Errorf("%w: unknown branch", eos.ErrInvalidQuery)}
	}
	if err != nil {
		return nil, err
	}

	s, err := e.aggregate(ctx, pt)
	if err != nil {
		return nil, &eos.SolveError{Branch: branch, Stage: "aggregate", Iterate: pt.x, Wrapped: err}
	}
	s.Branch = branch
	return s, nil
}
