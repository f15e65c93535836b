package atmosphere

import "math"

// AltToPressure returns the standard-atmosphere pressure (Pa) at an altitude
// above sea level (m).
func AltToPressure(altitude float64) float64 {
	return 100 * math.Pow((44331.514-altitude)/11880.516, 1/0.1902632)
}

// PressureToAlt is the inverse of AltToPressure: altitude (m) for a pressure (Pa)
func PressureToAlt(pressure float64) float64 {
	return 44331.5 - 4946.62*math.Pow(pressure, 0.190263)
}
