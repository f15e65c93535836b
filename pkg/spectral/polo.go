// Package spectral estimates the spectral mismatch modifier for PV modules on
// vertical building facades, following Polo & Sanz-Saiz (2025), "Development of
// spectral mismatch models for BIPV applications in building facades",
// Renew. Energy 245, 122820, https://doi.org/10.1016/j.renene.2025.122820.
//
// The modifier multiplies broadband irradiance reaching a module's cells to
// estimate effective irradiance, i.e. the irradiance converted to current.
// Every function in this package is pure and safe for concurrent use.
package spectral

import (
	"fmt"
	"math"

	"github.com/chrissnell/pvspectral/pkg/atmosphere"
)

// DefaultAlbedo is the ground albedo the Polo coefficients are referenced to
const DefaultAlbedo = 0.2

// Option configures a single estimate
type Option func(*options)

type options struct {
	module          string
	moduleSet       bool
	coefficients    []float64
	coefficientsSet bool
	albedo          float64
}

// WithModuleType selects the published coefficients for a technology tag:
// "cdte", "monosi", "cigs" or "asi".
func WithModuleType(name string) Option {
	return func(o *options) {
		o.module = name
		o.moduleSet = true
	}
}

// WithModule selects the published coefficients for m
func WithModule(m ModuleType) Option {
	return WithModuleType(m.String())
}

// WithCoefficients supplies six user-defined mismatch coefficients instead of
// a module type.
//
// NOTE: on this path the albedo correction is neutral and the albedo is fixed
// at 0.2. Any WithAlbedo option or per-element albedo series is ignored.
func WithCoefficients(c ...float64) Option {
	return func(o *options) {
		o.coefficients = append([]float64(nil), c...)
		o.coefficientsSet = true
	}
}

// WithAlbedo sets the ground albedo (default 0.2)
func WithAlbedo(albedo float64) Option {
	return func(o *options) {
		o.albedo = albedo
	}
}

// model is a resolved coefficient set ready for evaluation
type model struct {
	coefficients Coefficients
	albedoCoeffs AlbedoCoefficients
	// fixedAlbedo is set when the albedo is forced to the reference value
	fixedAlbedo bool
	albedo      float64
}

func resolve(opts []Option) (model, error) {
	o := options{albedo: DefaultAlbedo}
	for _, opt := range opts {
		opt(&o)
	}

	switch {
	case !o.moduleSet && !o.coefficientsSet:
		return model{}, fmt.Errorf("%w: must provide either a module type or coefficients", ErrInvalidArgument)
	case o.moduleSet && o.coefficientsSet:
		return model{}, fmt.Errorf("%w: only one of module type and coefficients should be provided", ErrInvalidArgument)
	}

	if o.moduleSet {
		m, err := ParseModuleType(o.module)
		if err != nil {
			return model{}, err
		}
		return model{
			coefficients: poloCoefficients[m],
			albedoCoeffs: poloAlbedoCoefficients[m],
			albedo:       o.albedo,
		}, nil
	}

	var c Coefficients
	if len(o.coefficients) != len(c) {
		return model{}, fmt.Errorf("%w: expected %d coefficients, got %d", ErrInvalidArgument, len(c), len(o.coefficients))
	}
	copy(c[:], o.coefficients)

	return model{
		coefficients: c,
		albedoCoeffs: neutralAlbedo,
		fixedAlbedo:  true,
		albedo:       DefaultAlbedo,
	}, nil
}

// ValidateOptions reports whether opts select a usable coefficient set,
// returning the same errors FactorPolo would
func ValidateOptions(opts ...Option) error {
	_, err := resolve(opts)
	return err
}

// Result holds the intermediate terms of one estimate
type Result struct {
	AirmassRatio     float64 // Absolute airmass along the AOI path over the supplied absolute airmass
	Mismatch         float64 // Spectral mismatch before the albedo correction
	AlbedoCorrection float64 // Ground albedo correction factor
	Modifier         float64 // Mismatch * AlbedoCorrection
}

// FactorPolo returns the spectral mismatch modifier for the given conditions.
//
// precipitableWater is in cm, airmassAbsolute is the pressure-adjusted airmass,
// aod500 is the aerosol optical depth at 500 nm, aoi is the angle of incidence
// in degrees and altitude is the site altitude in metres.
//
// Exactly one of WithModuleType/WithModule and WithCoefficients must be given,
// otherwise ErrInvalidArgument is returned. An unrecognized module type yields
// ErrUnknownModuleType.
//
// When WithCoefficients is used, the albedo is forced to 0.2 and the albedo
// correction is neutral, so the caller's albedo has no effect.
//
// Inputs are not range checked. A zero aod500 or airmassAbsolute produces an
// infinite or NaN modifier, and negative precipitable water produces NaN.
func FactorPolo(precipitableWater, airmassAbsolute, aod500, aoi, altitude float64, opts ...Option) (float64, error) {
	r, err := FactorPoloDetail(precipitableWater, airmassAbsolute, aod500, aoi, altitude, opts...)
	if err != nil {
		return math.NaN(), err
	}
	return r.Modifier, nil
}

// FactorPoloDetail is FactorPolo returning every intermediate term
func FactorPoloDetail(precipitableWater, airmassAbsolute, aod500, aoi, altitude float64, opts ...Option) (Result, error) {
	m, err := resolve(opts)
	if err != nil {
		return Result{}, err
	}
	return m.evaluate(precipitableWater, airmassAbsolute, aod500, aoi, altitude, m.albedo), nil
}

func (m model) evaluate(pw, airmassAbsolute, aod500, aoi, altitude, albedo float64) Result {
	amAOI := atmosphere.RelativeAirmass(aoi, atmosphere.KastenYoung1989)
	pressure := atmosphere.AltToPressure(altitude)
	am90 := atmosphere.AbsoluteAirmass(amAOI, pressure)
	ram := am90 / airmassAbsolute

	c := m.coefficients
	smm := c[0]*ram + c[1]/(c[2]+math.Pow(ram, c[3])) + c[4]/aod500 + c[5]*math.Sqrt(pw)

	if m.fixedAlbedo {
		albedo = DefaultAlbedo
	}
	g := AlbedoCorrection(m.albedoCoeffs, albedo)

	return Result{
		AirmassRatio:     ram,
		Mismatch:         smm,
		AlbedoCorrection: g,
		Modifier:         g * smm,
	}
}

// AlbedoCorrection evaluates b0*(albedo/0.2)^2 + b1*(albedo/0.2) + b2
func AlbedoCorrection(b AlbedoCoefficients, albedo float64) float64 {
	x := albedo / DefaultAlbedo
	return b[0]*(x*x) + b[1]*x + b[2]
}
