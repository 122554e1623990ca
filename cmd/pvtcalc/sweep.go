package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/pvtcalc/internal/config"
	"github.com/san-kum/pvtcalc/internal/metrics"
	"github.com/san-kum/pvtcalc/internal/solver"
	"github.com/san-kum/pvtcalc/internal/storage"
	"github.com/san-kum/pvtcalc/internal/sweep"
	"github.com/san-kum/pvtcalc/internal/viz"
)

var (
	preset    string
	fixed     float64
	from      float64
	to        float64
	steps     int
	save      bool
	columns   string
	plotField string
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "sweep [isotherm|isobar|isochore]",
		Short:     "evaluate the calibrant along a grid",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(sweep.Isotherm), string(sweep.Isobar), string(sweep.Isochore)},
		RunE:      runSweep,
	}
	cmd.Flags().StringVar(&preset, "preset", "", "named sweep (see presets)")
	cmd.Flags().Float64Var(&fixed, "fixed", 0, "held quantity: K for isotherms, GPa for isobars, A^3 for isochores")
	cmd.Flags().Float64Var(&from, "from", 0, "first grid value")
	cmd.Flags().Float64Var(&to, "to", 0, "last grid value")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of grid points")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel solves (default from config)")
	cmd.Flags().BoolVar(&save, "save", false, "store the sweep in the data directory")
	cmd.Flags().StringVar(&columns, "columns", "", "comma separated output columns")
	cmd.Flags().StringVar(&plotField, "plot", "", "plot one column against the grid")
	addEngineFlags(cmd)
	return cmd
}

func resolvePlan(cmd *cobra.Command, args []string, cfg *config.Config) (sweep.Plan, error) {
	sc := cfg.Sweep
	if len(args) == 1 {
		sc.Kind = args[0]
	}
	if preset != "" {
		p := config.GetPreset(sc.Kind, preset)
		if p == nil {
			return sweep.Plan{}, fmt.Errorf("unknown %s preset: %s", sc.Kind, preset)
		}
		sc = *p
	}
	f := cmd.Flags()
	if f.Changed("fixed") {
		sc.Fixed = fixed
	}
	if f.Changed("from") {
		sc.From = from
	}
	if f.Changed("to") {
		sc.To = to
	}
	if f.Changed("steps") {
		sc.Steps = steps
	}
	return sweep.FromConfig(sc)
}

func defaultColumns(k sweep.Kind) []string {
	switch k {
	case sweep.Isotherm:
		return []string{"pressure", "volume", "compression", "kt", "alpha", "gamma"}
	case sweep.Isobar:
		return []string{"temperature", "volume", "alpha", "cp", "ks", "gamma"}
	default:
		return []string{"temperature", "pressure", "thermal_pressure", "cv", "dpdt", "gamma"}
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	gamma, err := metrics.NewMean("gamma")
	if err != nil {
		return err
	}
	collector := metrics.NewCollector(metrics.NewStability(), metrics.NewConsistency(), gamma)
	engine, cfg, err := newEngine(solver.WithObserver(collector))
	if err != nil {
		return err
	}
	plan, err := resolvePlan(cmd, args, cfg)
	if err != nil {
		return err
	}

	logrus.WithField("plan", plan.String()).Info("running sweep")
	res, err := sweep.Run(cmd.Context(), engine, plan, cfg.Workers)
	if err != nil {
		return err
	}

	cols := defaultColumns(plan.Kind)
	if columns != "" {
		cols = strings.Split(columns, ",")
	}
	fmt.Println(viz.Title.Render(fmt.Sprintf("%s  %s", engine.Params().Name, plan)))
	if err := viz.WriteTable(os.Stdout, res.States, cols); err != nil {
		return err
	}

	for _, f := range res.Failures {
		fmt.Fprintln(os.Stderr, color.YellowString("point %d (%s): %v", f.Index, f.Query, f.Err))
	}

	summary := make([]string, 0)
	vals := collector.Values()
	for _, name := range collector.Names() {
		summary = append(summary, fmt.Sprintf("%s=%.4g", name, vals[name]))
	}
	fmt.Println(viz.Label.Render(strings.Join(summary, "  ")))

	if plotField != "" {
		ys, err := sweep.Series(res.States, plotField)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(viz.Plot(ys, fmt.Sprintf("%s along %s", plotField, plan.Axis())))
	}

	if save {
		st := storage.New(viper.GetString("data"))
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(engine.Params().Name, res)
		if err != nil {
			return err
		}
		fmt.Println(color.GreenString("saved run %s", runID))
	}
	return nil
}
