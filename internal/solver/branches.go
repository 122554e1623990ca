package solver

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/pvtcalc/internal/eos"
	"github.com/san-kum/pvtcalc/internal/numeric"
	"github.com/san-kum/pvtcalc/internal/physics"
)

// point is a fully determined (x, T) pair ready for aggregation. The
// requested pressure and volume are carried through so the state reports
// them as given.
type point struct {
	x        float64
	t        float64
	pressure eos.Value // GPa
	volume   float64   // Å³ per cell
}

func (e *Engine) pressurePoint(q eos.Query) (point, error) {
	v, _ := q.Volume.Get()
	t, _ := q.Temperature.Get()
	x := v / e.model.Params().V0
	if err := physics.CheckCompression(x); err != nil {
		return point{}, &eos.SolveError{Branch: eos.SolveForPressure, Stage: "compression", Iterate: x, Wrapped: err}
	}
	return point{x: x, t: t, volume: v}, nil
}

// volumePoint bisects the total pressure over the compression bracket.
func (e *Engine) volumePoint(ctx context.Context, q eos.Query, log *logrus.Entry) (point, error) {
	p, _ := q.Pressure.Get()
	t, _ := q.Temperature.Get()
	target := p * physics.BarPerGPa

	root, err := e.bisect.Solve(ctx, func(x float64) (float64, error) {
		total, err := e.model.TotalPressure(x, t)
		return total - target, err
	})
	if err != nil {
		return point{}, &eos.SolveError{
			Branch:     eos.SolveForVolume,
			Stage:      "bisection",
			Iterate:    root.X,
			Iterations: root.Iterations,
			Wrapped:    convergence(err),
		}
	}
	log.WithFields(logrus.Fields{
		"x":          root.X,
		"iterations": root.Iterations,
	}).Debug("volume bracket closed")

	return point{
		x:        root.X,
		t:        t,
		pressure: q.Pressure,
		volume:   root.X * e.model.Params().V0,
	}, nil
}

// temperaturePoint inverts the empirical thermal-pressure polynomial.
func (e *Engine) temperaturePoint(ctx context.Context, q eos.Query, log *logrus.Entry) (point, error) {
	p, _ := q.Pressure.Get()
	v, _ := q.Volume.Get()
	params := e.model.Params()

	x := v / params.V0
	if err := physics.CheckCompression(x); err != nil {
		return point{}, &eos.SolveError{Branch: eos.SolveForTemperature, Stage: "compression", Iterate: x, Wrapped: err}
	}
	eta := 1 / x

	dt, n, err := e.multi.Mean(ctx, e.expansion.Residual(p, eta), e.expansion.Slope)
	if err != nil {
		return point{}, &eos.SolveError{Branch: eos.SolveForTemperature, Stage: "root search", Iterate: eta, Wrapped: convergence(err)}
	}
	t := dt + params.T0
	if !(t > 0) {
		return point{}, &eos.SolveError{
			Branch:  eos.SolveForTemperature,
			Stage:   "root search",
			Iterate: t,
			Wrapped: fmt.Errorf("%w: non-positive temperature %g K", eos.ErrNonConvergence, t),
		}
	}
	log.WithFields(logrus.Fields{
		"roots":       n,
		"temperature": t,
	}).Debug("temperature roots pooled")

	if e.cfg.LegacyReciprocalCompression {
		x = eta
	}
	return point{x: x, t: t, pressure: q.Pressure, volume: v}, nil
}

// convergence maps numeric failures onto ErrNonConvergence and leaves
// domain and context errors as they are.
func convergence(err error) error {
	switch {
	case errors.Is(err, numeric.ErrNoSignChange),
		errors.Is(err, numeric.ErrIterationLimit),
		errors.Is(err, numeric.ErrNoRoots):
		return fmt.Errorf("%w: %w", eos.ErrNonConvergence, err)
	case errors.Is(err, numeric.ErrNonFinite):
		return fmt.Errorf("%w: %w", eos.ErrNumericOverflow, err)
	}
	return err
}
