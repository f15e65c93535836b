// Package solarpos computes solar position and the angle of incidence on a
// tilted plane, used to derive airmass and AOI for weather series that do not
// carry them.
package solarpos

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/coord"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/refraction"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
	"github.com/soniakeys/unit"
)

// SolarPosition holds the Sun's apparent position for an observer
type SolarPosition struct {
	ZenithDeg    float64 // Apparent zenith angle, refraction corrected
	ElevationDeg float64 // Apparent elevation, 90 - ZenithDeg
	AzimuthDeg   float64 // Degrees east of north
}

// Up reports whether the Sun is above the horizon
func (p SolarPosition) Up() bool {
	return p.ElevationDeg > 0
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }

// Position computes the apparent solar position at t for a site at latitude
// and longitude (degrees, east positive).
func Position(t time.Time, latitude, longitude float64) SolarPosition {
	// UT is used in place of TT; the ~70 s difference is far below the
	// precision needed for airmass.
	jd := julian.TimeToJD(t.UTC())

	α, δ := solar.ApparentEquatorial(jd)
	st := sidereal.Apparent(jd)

	// Meeus measures longitude positive westward and azimuth from the south
	A, h := coord.EqToHz(α, δ, unit.AngleFromDeg(latitude), unit.AngleFromDeg(-longitude), st)

	elevation := h.Deg()
	if elevation > -1 {
		elevation += refraction.Saemundsson(h).Deg()
	}

	azimuth := math.Mod(A.Deg()+180, 360)
	if azimuth < 0 {
		azimuth += 360
	}

	return SolarPosition{
		ZenithDeg:    90 - elevation,
		ElevationDeg: elevation,
		AzimuthDeg:   azimuth,
	}
}

// AngleOfIncidence returns the angle (degrees) between the Sun and the normal
// of a surface with the given tilt from horizontal and azimuth (degrees east of
// north).
func AngleOfIncidence(surfaceTilt, surfaceAzimuth, zenith, azimuth float64) float64 {
	tilt := degToRad(surfaceTilt)
	zen := degToRad(zenith)
	projection := math.Cos(tilt)*math.Cos(zen) +
		math.Sin(tilt)*math.Sin(zen)*math.Cos(degToRad(azimuth-surfaceAzimuth))

	// Clamp rounding excursions outside acos's domain
	projection = math.Max(-1, math.Min(1, projection))
	return radToDeg(math.Acos(projection))
}
