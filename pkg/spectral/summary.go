package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// EffectiveIrradiance multiplies broadband irradiance (W/m²) by the spectral
// modifier, element by element
func EffectiveIrradiance(broadband, modifier []float64) ([]float64, error) {
	if len(broadband) != len(modifier) {
		return nil, fmt.Errorf("%w: irradiance has length %d, modifier has length %d", ErrInvalidArgument, len(broadband), len(modifier))
	}
	dst := make([]float64, len(broadband))
	floats.MulTo(dst, broadband, modifier)
	return dst, nil
}

// Summary describes a modifier series. Statistics cover finite values only.
type Summary struct {
	Count     int     `json:"count"`
	NonFinite int     `json:"non_finite"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
}

// Summarize computes a Summary. Min, Max, Mean and StdDev are NaN when the
// series holds no finite values; StdDev is NaN for a single finite value.
func Summarize(values []float64) Summary {
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}

	s := Summary{
		Count:     len(values),
		NonFinite: len(values) - len(finite),
		Min:       math.NaN(),
		Max:       math.NaN(),
		Mean:      math.NaN(),
		StdDev:    math.NaN(),
	}
	if len(finite) == 0 {
		return s
	}

	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	if len(finite) == 1 {
		s.Mean = finite[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(finite, nil)
	return s
}
