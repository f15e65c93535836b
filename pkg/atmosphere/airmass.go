// Package atmosphere provides the airmass and pressure primitives used by the
// spectral mismatch models. The formulas follow the standard atmosphere and the
// empirical relative airmass models found in the solar resource literature.
package atmosphere

import (
	"errors"
	"fmt"
	"math"
)

// StandardPressure is sea level pressure of the standard atmosphere, in Pa
const StandardPressure = 101325.0

// ErrUnknownAirmassModel is returned when an airmass model name is not recognized
var ErrUnknownAirmassModel = errors.New("unknown airmass model")

// AirmassModel selects the empirical formula used for relative airmass
type AirmassModel int

const (
	KastenYoung1989 AirmassModel = iota
	Simple
	Kasten1966
	YoungIrvine1967
	Gueymard1993
	Young1994
	Pickering2002
	Gueymard2003
)

var airmassModelNames = map[AirmassModel]string{
	KastenYoung1989: "kastenyoung1989",
	Simple:          "simple",
	Kasten1966:      "kasten1966",
	YoungIrvine1967: "youngirvine1967",
	Gueymard1993:    "gueymard1993",
	Young1994:       "young1994",
	Pickering2002:   "pickering2002",
	Gueymard2003:    "gueymard2003",
}

func (m AirmassModel) String() string {
	if name, ok := airmassModelNames[m]; ok {
		return name
	}
	return fmt.Sprintf("AirmassModel(%d)", int(m))
}

// ParseAirmassModel converts a model name into an AirmassModel. An empty name
// selects the Kasten-Young 1989 model.
func ParseAirmassModel(name string) (AirmassModel, error) {
	if name == "" {
		return KastenYoung1989, nil
	}
	for m, n := range airmassModelNames {
		if n == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAirmassModel, name)
}

// degToRad converts an angle from degrees to radians for trigonometric calculations
func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}

// RelativeAirmass calculates the relative (not pressure-adjusted) airmass at
// sea level for a zenith angle in degrees. Zenith angles beyond 90 degrees
// return NaN. An unknown model also returns NaN; use ParseAirmassModel to
// validate names coming from configuration.
func RelativeAirmass(zenith float64, model AirmassModel) float64 {
	if zenith > 90 || math.IsNaN(zenith) {
		return math.NaN()
	}

	z := zenith
	zRad := degToRad(z)
	cosZ := math.Cos(zRad)

	switch model {
	case Simple:
		return 1.0 / cosZ
	case Kasten1966:
		return 1.0 / (cosZ + 0.15*math.Pow(93.885-z, -1.253))
	case YoungIrvine1967:
		secZ := 1.0 / cosZ
		return secZ * (1 - 0.0012*(secZ*secZ-1))
	case KastenYoung1989:
		return 1.0 / (cosZ + 0.50572*math.Pow(6.07995+(90-z), -1.6364))
	case Gueymard1993:
		return 1.0 / (cosZ + 0.00176759*z*math.Pow(94.37515-z, -1.21563))
	case Young1994:
		return (1.002432*cosZ*cosZ + 0.148386*cosZ + 0.0096467) /
			(cosZ*cosZ*cosZ + 0.149864*cosZ*cosZ + 0.0102963*cosZ + 0.000303978)
	case Pickering2002:
		return 1.0 / math.Sin(degToRad(90-z+244.0/(165+47.0*math.Pow(90-z, 1.1))))
	case Gueymard2003:
		return 1.0 / (cosZ + 0.48353*math.Pow(z, 0.095846)/math.Pow(96.741-z, 1.754))
	}
	return math.NaN()
}

// AbsoluteAirmass adjusts a relative airmass for site pressure (Pa)
func AbsoluteAirmass(relative, pressure float64) float64 {
	return relative * pressure / StandardPressure
}
