package solver_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pvtcalc/internal/calibrant"
	"github.com/san-kum/pvtcalc/internal/config"
	"github.com/san-kum/pvtcalc/internal/eos"
	"github.com/san-kum/pvtcalc/internal/numeric"
	"github.com/san-kum/pvtcalc/internal/physics"
	"github.com/san-kum/pvtcalc/internal/solver"
)

type recorder struct {
	queries []eos.Query
	errs    []error
}

func (r *recorder) OnSolve(q eos.Query, _ *eos.State, err error) {
	r.queries = append(r.queries, q)
	r.errs = append(r.errs, err)
}

func mustEngine(p calibrant.Params, cfg config.SolverConfig, opts ...solver.Option) *solver.Engine {
	e, err := solver.New(p, cfg, opts...)
	Expect(err).NotTo(HaveOccurred())
	return e
}

var _ = Describe("Engine", func() {
	var (
		ctx    context.Context
		pt     calibrant.Params
		engine *solver.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()
		var err error
		pt, err = calibrant.Lookup("Pt")
		Expect(err).NotTo(HaveOccurred())
		engine = mustEngine(pt, config.DefaultSolverConfig())
	})

	Describe("solving for pressure", func() {
		It("is zero at the reference state", func() {
			s, err := engine.Solve(ctx, eos.Query{
				Pressure:    eos.Unknown(),
				Volume:      eos.Known(pt.V0),
				Temperature: eos.Known(298.15),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Branch).To(Equal(eos.SolveForPressure))
			Expect(s.Pressure).To(BeZero())
			Expect(s.ThermalPressure).To(BeZero())
			Expect(s.Compression).To(Equal(1.0))
			Expect(s.FrequencyScale).To(Equal(1.0))
			Expect(s.BulkModulusT).To(BeNumerically("~", pt.K0, 1e-9))
			Expect(s.MolarVolume).To(BeNumerically("~", 9.091, 1e-3))
		})

		It("reports a positive heat capacity and consistent identities", func() {
			s, err := engine.Solve(ctx, eos.Query{
				Pressure:    eos.Unknown(),
				Volume:      eos.Known(60),
				Temperature: eos.Known(300),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.IsValid()).To(BeTrue())
			Expect(s.HeatCapacityV).To(BeNumerically(">", 0))
			Expect(s.HeatCapacityP).To(BeNumerically(">", s.HeatCapacityV))
			Expect(s.BulkModulusS).To(BeNumerically(">", s.BulkModulusT))
			Expect(s.Expansivity).To(BeNumerically(">", 0))

			pv := s.ModelPressure * physics.BarPerGPa * s.MolarVolume / 10
			Expect(s.GibbsEnergy - s.HelmholtzEnergy).To(BeNumerically("~", pv, 1e-9*(1+abs(pv))))
			Expect(s.Enthalpy - s.InternalEnergy).To(BeNumerically("~", pv, 1e-9*(1+abs(pv))))
			Expect(s.InternalEnergy - s.HelmholtzEnergy).To(BeNumerically("~", 300*s.Entropy, 1e-9*300*s.Entropy))

			Expect(s.BulkModulusS / s.BulkModulusT).To(BeNumerically("~", s.HeatCapacityP/s.HeatCapacityV, 1e-12))
			v := s.MolarVolume / 10
			kT := s.BulkModulusT * physics.BarPerGPa
			Expect(s.Gruneisen).To(BeNumerically("~", s.Expansivity*kT*v/s.HeatCapacityV, 1e-12))
			Expect(s.Gruneisen).To(BeNumerically(">", 1))
			Expect(s.Gruneisen).To(BeNumerically("<", 5))
		})

		It("rises with temperature at fixed volume", func() {
			cold, err := engine.Solve(ctx, eos.Query{Pressure: eos.Unknown(), Volume: eos.Known(55), Temperature: eos.Known(300)})
			Expect(err).NotTo(HaveOccurred())
			hot, err := engine.Solve(ctx, eos.Query{Pressure: eos.Unknown(), Volume: eos.Known(55), Temperature: eos.Known(2500)})
			Expect(err).NotTo(HaveOccurred())
			Expect(hot.Pressure).To(BeNumerically(">", cold.Pressure))
			Expect(hot.StaticPressure).To(Equal(cold.StaticPressure))
		})

		DescribeTable("rejects non-positive volumes",
			func(v float64) {
				_, err := engine.Solve(ctx, eos.Query{Pressure: eos.Unknown(), Volume: eos.Known(v), Temperature: eos.Known(300)})
				Expect(err).To(MatchError(eos.ErrInvalidCompression))

				var se *eos.SolveError
				Expect(errors.As(err, &se)).To(BeTrue())
				Expect(se.Branch).To(Equal(eos.SolveForPressure))
			},
			Entry("zero", 0.0),
			Entry("negative", -10.0),
		)
	})

	Describe("solving for volume", func() {
		It("compresses at 10 GPa and round-trips", func() {
			s, err := engine.Solve(ctx, eos.Query{
				Pressure:    eos.Known(10),
				Volume:      eos.Unknown(),
				Temperature: eos.Known(298.15),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Branch).To(Equal(eos.SolveForVolume))
			Expect(s.Volume).To(BeNumerically("<", pt.V0))
			Expect(s.Pressure).To(Equal(10.0))
			Expect(s.ModelPressure).To(BeNumerically("~", 10, 1e-6))

			back, err := engine.Solve(ctx, eos.Query{
				Pressure:    eos.Unknown(),
				Volume:      eos.Known(s.Volume),
				Temperature: eos.Known(298.15),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(back.Pressure).To(BeNumerically("~", 10, 1e-6))
		})

		DescribeTable("inverts the pressure branch",
			func(x, t float64) {
				fwd, err := engine.Solve(ctx, eos.Query{
					Pressure:    eos.Unknown(),
					Volume:      eos.Known(x * pt.V0),
					Temperature: eos.Known(t),
				})
				Expect(err).NotTo(HaveOccurred())

				inv, err := engine.Solve(ctx, eos.Query{
					Pressure:    eos.Known(fwd.Pressure),
					Volume:      eos.Unknown(),
					Temperature: eos.Known(t),
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(inv.Compression).To(BeNumerically("~", x, 1e-9*x))
			},
			Entry("strong compression, cold", 0.5, 300.0),
			Entry("moderate compression, hot", 0.75, 2000.0),
			Entry("near reference", 0.98, 1000.0),
			Entry("expanded", 1.05, 300.0),
		)

		It("fails to converge outside the bracket", func() {
			_, err := engine.Solve(ctx, eos.Query{
				Pressure:    eos.Known(1e6),
				Volume:      eos.Unknown(),
				Temperature: eos.Known(300),
			})
			Expect(err).To(MatchError(eos.ErrNonConvergence))

			var se *eos.SolveError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Stage).To(Equal("bisection"))
		})

		It("reports the iteration cap as non-convergence", func() {
			cfg := config.DefaultSolverConfig()
			cfg.MaxIterations = 3
			capped := mustEngine(pt, cfg)

			_, err := capped.Solve(ctx, eos.Query{
				Pressure:    eos.Known(10),
				Volume:      eos.Unknown(),
				Temperature: eos.Known(300),
			})
			Expect(err).To(MatchError(eos.ErrNonConvergence))
			Expect(errors.Is(err, numeric.ErrIterationLimit)).To(BeTrue())

			var se *eos.SolveError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Branch).To(Equal(eos.SolveForVolume))
			Expect(se.Stage).To(Equal("bisection"))
			Expect(se.Iterations).To(Equal(3))
			Expect(se.Iterate).To(BeNumerically(">", cfg.LowerBound))
			Expect(se.Iterate).To(BeNumerically("<", cfg.UpperBound))
		})

		It("stops when the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := engine.Solve(cctx, eos.Query{
				Pressure:    eos.Known(10),
				Volume:      eos.Unknown(),
				Temperature: eos.Known(300),
			})
			Expect(errors.Is(err, context.Canceled)).To(BeTrue())
		})
	})

	Describe("solving for temperature", func() {
		var (
			v, p float64
		)

		BeforeEach(func() {
			v = 58
			eta := pt.V0 / v
			em := physics.NewExpansionModel(pt)
			p = em.StaticPressure(eta) + em.ThermalPressure(500)
		})

		It("recovers the temperature offset", func() {
			s, err := engine.Solve(ctx, eos.Query{
				Pressure:    eos.Known(p),
				Volume:      eos.Known(v),
				Temperature: eos.Unknown(),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Branch).To(Equal(eos.SolveForTemperature))
			Expect(s.Temperature).To(BeNumerically("~", 798.15, 1e-6))
			Expect(s.Pressure).To(Equal(p))
			Expect(s.Volume).To(Equal(v))
			Expect(s.Compression).To(BeNumerically("~", v/pt.V0, 1e-15))
			Expect(s.ModelPressure).To(BeNumerically(">", 0))
		})

		It("evaluates at V0/V with the legacy option", func() {
			cfg := config.DefaultSolverConfig()
			cfg.LegacyReciprocalCompression = true
			legacy := mustEngine(pt, cfg)

			s, err := legacy.Solve(ctx, eos.Query{
				Pressure:    eos.Known(p),
				Volume:      eos.Known(v),
				Temperature: eos.Unknown(),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Temperature).To(BeNumerically("~", 798.15, 1e-6))
			Expect(s.Compression).To(BeNumerically("~", pt.V0/v, 1e-15))
			Expect(s.Compression).To(BeNumerically(">", 1))
		})

		It("fails when no seed finds a root", func() {
			flat := pt
			flat.Expansion = calibrant.Expansion{}
			e := mustEngine(flat, config.DefaultSolverConfig())

			_, err := e.Solve(ctx, eos.Query{
				Pressure:    eos.Known(5),
				Volume:      eos.Known(pt.V0),
				Temperature: eos.Unknown(),
			})
			Expect(err).To(MatchError(eos.ErrNonConvergence))
		})
	})

	Describe("query validation", func() {
		DescribeTable("rejects malformed queries",
			func(q eos.Query) {
				rec := &recorder{}
				e := mustEngine(pt, config.DefaultSolverConfig(), solver.WithObserver(rec))

				s, err := e.Solve(ctx, q)
				Expect(s).To(BeNil())
				Expect(err).To(MatchError(eos.ErrInvalidQuery))

				var se *eos.SolveError
				Expect(errors.As(err, &se)).To(BeTrue())
				Expect(se.Stage).To(Equal("query"))
				Expect(rec.errs).To(HaveLen(1))
			},
			Entry("three knowns", eos.Query{Pressure: eos.Known(1), Volume: eos.Known(60), Temperature: eos.Known(300)}),
			Entry("no knowns", eos.Query{}),
			Entry("two unknowns", eos.Query{Pressure: eos.Known(1), Volume: eos.Unknown(), Temperature: eos.Unknown()}),
			Entry("non-positive temperature", eos.Query{Pressure: eos.Unknown(), Volume: eos.Known(60), Temperature: eos.Known(0)}),
		)
	})

	It("reports overflow of the anharmonic term", func() {
		hot := pt
		hot.Anharmonic = calibrant.PowerLaw{Coefficient: 1, Exponent: -5000}
		e := mustEngine(hot, config.DefaultSolverConfig())

		_, err := e.Solve(ctx, eos.Query{
			Pressure:    eos.Unknown(),
			Volume:      eos.Known(0.5 * pt.V0),
			Temperature: eos.Known(1000),
		})
		Expect(err).To(MatchError(eos.ErrNumericOverflow))

		var se *eos.SolveError
		Expect(errors.As(err, &se)).To(BeTrue())
		Expect(se.Stage).To(Equal("aggregate"))
	})

	It("rejects an invalid solver config", func() {
		cfg := config.DefaultSolverConfig()
		cfg.UpperBound = 0.1
		_, err := solver.New(pt, cfg)
		Expect(err).To(MatchError(config.ErrInvalidConfig))
	})
})

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
