package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/san-kum/pvtcalc/internal/storage"
	"github.com/san-kum/pvtcalc/internal/viz"
)

func store() *storage.Store {
	return storage.New(viper.GetString("data"))
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "list saved sweeps",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := store().List()
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("no runs found")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tCALIBRANT\tTIME\tKIND\tFIXED\tRANGE\tPOINTS\tFAILED")
			for _, run := range runs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%g\t%g..%g\t%d\t%d\n",
					run.ID, run.Calibrant, run.Timestamp.Format("2006-01-02 15:04"),
					run.Kind, run.Fixed, run.From, run.To, run.Points, len(run.Failures))
			}
			return w.Flush()
		},
	}
}

func newPlotCmd() *cobra.Command {
	var column string
	cmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot a column of a saved sweep",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := store()
			meta, err := st.Load(args[0])
			if err != nil {
				return err
			}
			header, rows, err := st.LoadStates(args[0])
			if err != nil {
				return err
			}
			ys, err := storage.Column(header, rows, column)
			if err != nil {
				return err
			}

			fmt.Println(viz.Plot(ys, fmt.Sprintf("%s %s: %s", meta.Calibrant, meta.Kind, column)))
			fmt.Println(viz.Sparkline(ys, 60))
			return nil
		},
	}
	cmd.Flags().StringVar(&column, "column", "volume", "column to plot")
	return cmd
}

func newExportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-json [run-id]",
		Short: "export a saved sweep as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store().ExportJSON(out, args[0])
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	return cmd
}
