package sweep

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/pvtcalc/internal/config"
	"github.com/san-kum/pvtcalc/internal/eos"
	"github.com/san-kum/pvtcalc/internal/solver"
)

type Kind string

const (
	// Isotherm varies pressure (GPa) at fixed temperature (K).
	Isotherm Kind = "isotherm"
	// Isobar varies temperature (K) at fixed pressure (GPa).
	Isobar Kind = "isobar"
	// Isochore varies temperature (K) at fixed volume (Å³).
	Isochore Kind = "isochore"
)

var ErrInvalidPlan = errors.New("invalid sweep plan")

// Plan is a one-dimensional grid of queries.
type Plan struct {
	Kind  Kind
	Fixed float64
	From  float64
	To    float64
	Steps int
}

func FromConfig(c config.SweepConfig) (Plan, error) {
	p := Plan{
		Kind:  Kind(strings.ToLower(c.Kind)),
		Fixed: c.Fixed,
		From:  c.From,
		To:    c.To,
		Steps: c.Steps,
	}
	return p, p.Validate()
}

func (p Plan) Validate() error {
	switch p.Kind {
	case Isotherm, Isobar, Isochore:
	default:
		return errors.Wrapf(ErrInvalidPlan, "unknown kind %q", p.Kind)
	}
	if p.Steps < 1 {
		return errors.Wrapf(ErrInvalidPlan, "steps must be positive, got %d", p.Steps)
	}
	return nil
}

// Axis names the eos column that varies along the sweep.
func (p Plan) Axis() string {
	if p.Kind == Isotherm {
		return "pressure"
	}
	return "temperature"
}

// Points returns the grid values, evenly spaced and inclusive.
func (p Plan) Points() []float64 {
	if p.Steps == 1 {
		return []float64{p.From}
	}
	return floats.Span(make([]float64, p.Steps), p.From, p.To)
}

func (p Plan) Queries() []eos.Query {
	pts := p.Points()
	qs := make([]eos.Query, len(pts))
	for i, v := range pts {
		switch p.Kind {
		case Isotherm:
			qs[i] = eos.Query{Pressure: eos.Known(v), Volume: eos.Unknown(), Temperature: eos.Known(p.Fixed)}
		case Isobar:
			qs[i] = eos.Query{Pressure: eos.Known(p.Fixed), Volume: eos.Unknown(), Temperature: eos.Known(v)}
		case Isochore:
			qs[i] = eos.Query{Pressure: eos.Unknown(), Volume: eos.Known(p.Fixed), Temperature: eos.Known(v)}
		}
	}
	return qs
}

func (p Plan) String() string {
	return fmt.Sprintf("%s at %g, %s %g..%g in %d steps", p.Kind, p.Fixed, p.Axis(), p.From, p.To, p.Steps)
}

// Failure is a grid point that did not solve.
type Failure struct {
	Index int
	Query eos.Query
	Err   error
}

type Result struct {
	Plan     Plan
	States   []*eos.State
	Failures []Failure
}

// Run solves every point of the plan on the engine. Failed points are
// collected in Failures; States keeps the successful ones in grid order.
func Run(ctx context.Context, e *solver.Engine, plan Plan, workers int) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	out, err := e.Batch(ctx, plan.Queries(), workers)
	if err != nil {
		return nil, err
	}

	res := &Result{Plan: plan, States: make([]*eos.State, 0, len(out))}
	for i, o := range out {
		if o.Err != nil {
			res.Failures = append(res.Failures, Failure{Index: i, Query: o.Query, Err: o.Err})
			continue
		}
		res.States = append(res.States, o.State)
	}
	return res, nil
}

// Series extracts one column across the solved states.
func Series(states []*eos.State, column string) ([]float64, error) {
	idx := eos.ColumnIndex(column)
	if idx < 0 {
		return nil, errors.Errorf("unknown column %q", column)
	}
	get := eos.Columns[idx].Get
	out := make([]float64, len(states))
	for i, s := range states {
		out[i] = get(s)
	}
	return out, nil
}
