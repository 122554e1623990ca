// Package physics implements the equation of state of a pressure
// calibrant.
//
// The model is layered; each layer is a pure function of the one below:
//
//   - [ColdCurve]: static AP2 pressure P(x), bulk modulus and curvature
//   - [GruneisenField]: γ(x) from the cold curve, and the frequency
//     scaling exp(∫ γ/x dx) from the reference volume
//   - [Oscillators]: thermal free energy, entropy, Cv, pressure, bulk
//     modulus correction and dP/dT of the vibrational modes plus the
//     anharmonic and electronic power laws
//   - [Model]: binds the layers to one [calibrant.Params]
//   - [ExpansionModel]: the empirical polynomial used to invert for
//     temperature
//
// Internally pressures are in bar, volumes in J/bar and energies in
// J/mol; [BarPerGPa] and [MolarVolume] convert at the edges.
//
// # Example
//
//	m, _ := physics.NewModel(params, physics.DefaultSettings())
//	l, _ := m.Lattice(0.9)
//	osc := m.Oscillators(l)
//	pth := osc.Pressure(1500)
package physics
