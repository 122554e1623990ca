// Package numeric holds the numerical primitives shared by the physics
// and solver packages: an adaptive Simpson integrator, a central
// difference helper, a bracketed bisection and a multi-start Newton
// search.
package numeric
