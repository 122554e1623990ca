// Package viz renders equation-of-state results for the terminal: styled
// state panels, sweep tables, sparklines and line plots.
package viz
