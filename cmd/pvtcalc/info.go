package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/pvtcalc/internal/calibrant"
	"github.com/san-kum/pvtcalc/internal/config"
)

func newCalibrantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "calibrants [name]",
		Short: "list calibrant standards, or show one in full",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			table, err := calibrant.Default()
			if cfg.Table != "" {
				table, err = calibrant.LoadFile(cfg.Table)
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			if len(args) == 1 {
				p, err := table.Lookup(args[0])
				if err != nil {
					return err
				}
				params := p.GetParams()
				keys := make([]string, 0, len(params))
				for k := range params {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				fmt.Fprintf(w, "%s\n", p.Name)
				for _, k := range keys {
					fmt.Fprintf(w, "  %s\t%g\n", k, params[k])
				}
				return nil
			}

			fmt.Fprintln(w, "NAME\tV0 (A^3)\tK0 (GPa)\tK'\tZ\tUNITS")
			for _, name := range table.Names() {
				p, err := table.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.4f\t%.2f\t%.3f\t%g\t%g\n", p.Name, p.V0, p.K0, p.KPrime, p.Z, p.FormulaUnits)
			}
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets [kind]",
		Short: "list named sweeps",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			kinds := config.Kinds()
			if len(args) == 1 {
				kinds = args
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()
			fmt.Fprintln(w, "KIND\tPRESET\tFIXED\tFROM\tTO\tSTEPS")
			for _, kind := range kinds {
				for _, name := range config.ListPresets(kind) {
					p := config.GetPreset(kind, name)
					fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%d\n", kind, name, p.Fixed, p.From, p.To, p.Steps)
				}
			}
		},
	}
}
