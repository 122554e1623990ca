// Package solver turns a (P, V, T) query with one unknown into a full
// thermodynamic state.
//
// An [Engine] is bound to one calibrant. Solve picks the branch from the
// unknown: pressure is evaluated directly, volume is bisected on the total
// pressure over a compression bracket, and temperature is recovered from
// an empirical thermal-pressure polynomial by multi-start Newton. The
// solved point then runs through a fixed pipeline of aggregation stages.
//
// Failures are returned as *eos.SolveError and match the eos sentinel
// errors with errors.Is.
package solver
