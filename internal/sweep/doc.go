// Package sweep evaluates a calibrant along isotherms, isobars and
// isochores.
//
//	plan := sweep.Plan{Kind: sweep.Isotherm, Fixed: 300, From: 0, To: 100, Steps: 21}
//	res, err := sweep.Run(ctx, engine, plan, 4)
//	volumes, _ := sweep.Series(res.States, "volume")
package sweep
