package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/san-kum/pvtcalc/internal/calibrant"
	"github.com/san-kum/pvtcalc/internal/config"
	"github.com/san-kum/pvtcalc/internal/solver"
)

var (
	overrides []string
	legacy    bool
	workers   int
)

func setupLogger() error {
	level, err := logrus.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}
	return nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "pvtcalc",
		Short:         "pressure-volume-temperature equation of state for calibrant standards",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("data", ".pvtcalc", "data directory")
	flags.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.String("config", "", "config file (yaml)")
	flags.String("calibrant", config.DefaultCalibrant, "calibrant standard")
	flags.String("table", "", "calibrant table (yaml) replacing the built-in one")
	for _, name := range []string{"data", "log-level", "config", "calibrant", "table"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
	viper.SetEnvPrefix("PVTCALC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(
		newSolveCmd(),
		newSweepCmd(),
		newCalibrantsCmd(),
		newPresetsCmd(),
		newListCmd(),
		newPlotCmd(),
		newExportCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies flags and
// PVTCALC_ environment variables on top of it.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if path := viper.GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if viper.IsSet("calibrant") {
		cfg.Calibrant = viper.GetString("calibrant")
	}
	if viper.IsSet("table") {
		cfg.Table = viper.GetString("table")
	}
	if legacy {
		cfg.Solver.LegacyReciprocalCompression = true
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg, cfg.Validate()
}

func loadParams(cfg *config.Config) (calibrant.Params, error) {
	var (
		p   calibrant.Params
		err error
	)
	if cfg.Table != "" {
		t, terr := calibrant.LoadFile(cfg.Table)
		if terr != nil {
			return p, terr
		}
		p, err = t.Lookup(cfg.Calibrant)
	} else {
		p, err = calibrant.Lookup(cfg.Calibrant)
	}
	if err != nil {
		return p, err
	}

	for _, kv := range overrides {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return p, errors.Errorf("override %q is not key=value", kv)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return p, errors.Wrapf(err, "override %s", name)
		}
		if p, err = p.SetParam(strings.TrimSpace(name), v); err != nil {
			return p, err
		}
	}
	return p, p.Validate()
}

func newEngine(opts ...solver.Option) (*solver.Engine, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := loadParams(cfg)
	if err != nil {
		return nil, nil, err
	}
	opts = append([]solver.Option{solver.WithLogger(logrus.WithField("component", "solver"))}, opts...)
	e, err := solver.New(p, cfg.Solver, opts...)
	if err != nil {
		return nil, nil, err
	}
	return e, cfg, nil
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&overrides, "set", nil, "override a calibrant parameter, e.g. --set k0=280")
	cmd.Flags().BoolVar(&legacy, "legacy", false, "evaluate the temperature branch at V0/V")
}
