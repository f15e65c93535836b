package spectral

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestFactorPoloSeriesMatchesScalar(t *testing.T) {
	airmass := []float64{1.0, 1.5, 2.0, 3.0, 5.5}
	in := Inputs{
		PrecipitableWater: Scalar(1.42),
		AirmassAbsolute:   airmass,
		AOD500:            Scalar(0.2),
		AOI:               Scalar(30),
		Altitude:          Scalar(0),
	}

	got, err := FactorPoloSeries(in, WithModuleType("monosi"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(airmass) {
		t.Fatalf("got %d values, expected %d", len(got), len(airmass))
	}

	for i, am := range airmass {
		want, err := FactorPolo(1.42, am, 0.2, 30, 0, WithModuleType("monosi"))
		if err != nil {
			t.Fatal(err)
		}
		if got[i] != want {
			t.Errorf("element %d = %v, scalar call = %v", i, got[i], want)
		}
	}

	want := []float64{0.9935532715893555, 1.0040334891332143, 1.0110016958629378, 1.020137022572887}
	if !floats.EqualApprox(got[:4], want, 1e-12) {
		t.Errorf("series = %v, expected %v", got[:4], want)
	}
}

func TestFactorPoloSeriesAllVectors(t *testing.T) {
	in := Inputs{
		PrecipitableWater: []float64{0.5, 1.42, 2.0, -1},
		AirmassAbsolute:   []float64{2.0, 1.5, 1.2, 1.5},
		AOD500:            []float64{0.3, 0.2, 0.1, 0.2},
		AOI:               []float64{60, 30, 45, 30},
		Altitude:          []float64{500, 0, 1500, 0},
		Albedo:            []float64{0.1, 0.2, 0.3, 0.2},
	}

	got, err := FactorPoloSeries(in, WithModule(ASi))
	if err != nil {
		t.Fatal(err)
	}

	for i := range got {
		want, err := FactorPolo(in.PrecipitableWater[i], in.AirmassAbsolute[i], in.AOD500[i],
			in.AOI[i], in.Altitude[i], WithModule(ASi), WithAlbedo(in.Albedo[i]))
		if err != nil {
			t.Fatal(err)
		}
		if math.IsNaN(want) {
			if !math.IsNaN(got[i]) {
				t.Errorf("element %d = %v, expected NaN", i, got[i])
			}
			continue
		}
		if got[i] != want {
			t.Errorf("element %d = %v, scalar call = %v", i, got[i], want)
		}
	}

	if !scalar.EqualWithinAbsOrRel(got[0], 0.9657449547667849, 1e-12, 1e-12) {
		t.Errorf("first element = %.16f", got[0])
	}
	if !math.IsNaN(got[3]) {
		t.Errorf("negative precipitable water should yield NaN, got %v", got[3])
	}
}

func TestFactorPoloSeriesAlbedoOverride(t *testing.T) {
	in := Inputs{
		PrecipitableWater: Scalar(1.42),
		AirmassAbsolute:   Scalar(1.5),
		AOD500:            Scalar(0.2),
		AOI:               Scalar(30),
		Altitude:          Scalar(0),
		Albedo:            []float64{0.1, 0.4},
	}

	got, err := FactorPoloSeries(in, WithModule(MonoSi), WithAlbedo(0.9))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("expected albedo series to set the length, got %d", len(got))
	}
	if !scalar.EqualWithinAbsOrRel(got[1], 1.001012325173937, 1e-12, 1e-12) {
		t.Errorf("albedo series should override WithAlbedo, got %v", got[1])
	}

	// Explicit coefficients always use the reference albedo
	c := poloCoefficients[MonoSi]
	fixed, err := FactorPoloSeries(in, WithCoefficients(c[:]...))
	if err != nil {
		t.Fatal(err)
	}
	if fixed[0] != fixed[1] {
		t.Errorf("explicit coefficients should ignore the albedo series, got %v", fixed)
	}
}

func TestFactorPoloSeriesErrors(t *testing.T) {
	valid := Inputs{
		PrecipitableWater: Scalar(1.42),
		AirmassAbsolute:   []float64{1.0, 2.0, 3.0},
		AOD500:            Scalar(0.2),
		AOI:               Scalar(30),
		Altitude:          Scalar(0),
	}

	tests := []struct {
		name   string
		mutate func(*Inputs)
		opts   []Option
		err    error
	}{
		{"no module or coefficients", func(*Inputs) {}, nil, ErrInvalidArgument},
		{"unknown module", func(*Inputs) {}, []Option{WithModuleType("perovskite")}, ErrUnknownModuleType},
		{"empty required series", func(in *Inputs) { in.AOI = nil }, []Option{WithModule(CIGS)}, ErrInvalidArgument},
		{"mismatched lengths", func(in *Inputs) { in.AOD500 = []float64{0.1, 0.2} }, []Option{WithModule(CIGS)}, ErrInvalidArgument},
		{"mismatched albedo", func(in *Inputs) { in.Albedo = []float64{0.1, 0.2} }, []Option{WithModule(CIGS)}, ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			if _, err := FactorPoloSeries(in, tt.opts...); !errors.Is(err, tt.err) {
				t.Errorf("expected %v, got %v", tt.err, err)
			}
		})
	}
}

func TestInputsLen(t *testing.T) {
	in := Inputs{
		PrecipitableWater: Scalar(1),
		AirmassAbsolute:   Scalar(1),
		AOD500:            Scalar(1),
		AOI:               Scalar(1),
		Altitude:          []float64{0, 1, 2, 3},
	}
	n, err := in.Len()
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 {
		t.Errorf("Len = %d, expected 4", n)
	}
}
