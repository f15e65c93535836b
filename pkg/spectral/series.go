package spectral

import "fmt"

// Inputs holds time series for a vectorized estimate. Each slice has either
// one element, broadcast across the series, or the full series length.
// Albedo is optional; when empty the WithAlbedo value (default 0.2) is used.
type Inputs struct {
	PrecipitableWater []float64
	AirmassAbsolute   []float64
	AOD500            []float64
	AOI               []float64
	Altitude          []float64
	Albedo            []float64
}

// Scalar wraps a single value for use as a broadcast Inputs field
func Scalar(v float64) []float64 {
	return []float64{v}
}

// Len returns the broadcast length of the inputs
func (in Inputs) Len() (int, error) {
	fields := []struct {
		name     string
		values   []float64
		required bool
	}{
		{"precipitable water", in.PrecipitableWater, true},
		{"airmass absolute", in.AirmassAbsolute, true},
		{"aod500", in.AOD500, true},
		{"aoi", in.AOI, true},
		{"altitude", in.Altitude, true},
		{"albedo", in.Albedo, false},
	}

	n := 1
	for _, f := range fields {
		switch l := len(f.values); {
		case l == 0:
			if f.required {
				return 0, fmt.Errorf("%w: %s series is empty", ErrInvalidArgument, f.name)
			}
		case l == 1 || l == n:
		case n == 1:
			n = l
		default:
			return 0, fmt.Errorf("%w: %s series has length %d, expected 1 or %d", ErrInvalidArgument, f.name, l, n)
		}
	}
	return n, nil
}

// at returns element i of a broadcast series
func at(values []float64, i int) float64 {
	if len(values) == 1 {
		return values[0]
	}
	return values[i]
}

// FactorPoloSeries applies FactorPolo element-wise. Element i of the result
// is identical to the scalar call on the i-th (or broadcast) inputs. The
// same module type / coefficient rules and albedo caveat apply.
func FactorPoloSeries(in Inputs, opts ...Option) ([]float64, error) {
	m, err := resolve(opts)
	if err != nil {
		return nil, err
	}

	n, err := in.Len()
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := range out {
		albedo := m.albedo
		if len(in.Albedo) > 0 {
			albedo = at(in.Albedo, i)
		}
		out[i] = m.evaluate(
			at(in.PrecipitableWater, i),
			at(in.AirmassAbsolute, i),
			at(in.AOD500, i),
			at(in.AOI, i),
			at(in.Altitude, i),
			albedo,
		).Modifier
	}
	return out, nil
}
