// Package eos provides the core types of the equation-of-state engine.
//
// A calculation starts from a [Query]: pressure, volume and temperature,
// exactly one of which is marked [Unknown]. The query selects a [Branch]
// (which of the three is solved for) and the engine returns a fully
// populated [State]:
//
//   - [Query]: the (P, V, T) input tuple with one explicit unknown
//   - [Value]: a known number or the unknown marker
//   - [Branch]: SolveForPressure, SolveForVolume or SolveForTemperature
//   - [State]: the thermodynamic state, immutable once returned
//   - [SolveError]: a failure with the branch, stage and last iterate
//
// # Units
//
// Pressure and bulk moduli are in GPa, volume in Å³ per unit cell,
// temperature in K, energies in J/mol and heat capacities and entropy in
// J/(mol K).
//
// # Example
//
//	q := eos.Query{
//		Pressure:    eos.Known(10),
//		Volume:      eos.Unknown(),
//		Temperature: eos.Known(298.15),
//	}
//	st, err := engine.Solve(ctx, q)
//	if errors.Is(err, eos.ErrNonConvergence) {
//		// bracket or iteration cap exhausted
//	}
//
// # Errors
//
// Every failure wraps exactly one of [ErrInvalidQuery],
// [ErrInvalidCompression], [ErrNonConvergence] or [ErrNumericOverflow]
// and is returned without a partial state.
package eos
