package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/san-kum/pvtcalc/internal/eos"
	"github.com/san-kum/pvtcalc/internal/viz"
)

var (
	pressureArg    string
	volumeArg      string
	temperatureArg string
	asJSON         bool
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "solve for the one of P, V, T that is not given",
		Example: `  pvtcalc solve -V 60 -T 300
  pvtcalc solve -P 10 -T 2000 --calibrant MgO
  pvtcalc solve -P 12.5 -V 58`,
		RunE: runSolve,
	}
	cmd.Flags().StringVarP(&pressureArg, "pressure", "P", "", "pressure in GPa (omit or ? to solve)")
	cmd.Flags().StringVarP(&volumeArg, "volume", "V", "", "unit-cell volume in A^3 (omit or ? to solve)")
	cmd.Flags().StringVarP(&temperatureArg, "temperature", "T", "", "temperature in K (omit or ? to solve)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the state as JSON")
	addEngineFlags(cmd)
	return cmd
}

func parseValue(name, s string) (eos.Value, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "?" {
		return eos.Unknown(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return eos.Value{}, errors.Wrapf(err, "invalid %s", name)
	}
	return eos.Known(v), nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	var (
		q   eos.Query
		err error
	)
	if q.Pressure, err = parseValue("pressure", pressureArg); err != nil {
		return err
	}
	if q.Volume, err = parseValue("volume", volumeArg); err != nil {
		return err
	}
	if q.Temperature, err = parseValue("temperature", temperatureArg); err != nil {
		return err
	}

	engine, _, err := newEngine()
	if err != nil {
		return err
	}
	s, err := engine.Solve(cmd.Context(), q)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	fmt.Println(viz.RenderState(s))
	return nil
}
