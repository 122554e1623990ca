package physics

const (
	// GasConstant in J/(mol K).
	GasConstant = 8.31451

	// Avogadro in units of 1e23 /mol, the precision the calibrant tables
	// were reduced with.
	Avogadro = 6.02214

	BarPerGPa = 1e4
)

// MolarVolume converts a unit-cell volume in Å³ into J/bar per formula
// unit. One J/bar is 10 cm³.
func MolarVolume(cell, formulaUnits float64) float64 {
	return cell * Avogadro / formulaUnits / 100
}

// CellVolume is the inverse of MolarVolume.
func CellVolume(molar, formulaUnits float64) float64 {
	return molar * 100 * formulaUnits / Avogadro
}
