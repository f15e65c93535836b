package spectral

import (
	"errors"
	"testing"
)

func TestParseModuleType(t *testing.T) {
	for _, m := range ModuleTypes() {
		got, err := ParseModuleType(m.String())
		if err != nil {
			t.Fatalf("ParseModuleType(%q): %v", m.String(), err)
		}
		if got != m {
			t.Errorf("ParseModuleType(%q) = %v, expected %v", m.String(), got, m)
		}
	}

	for _, bad := range []string{"", "unknown", "CdTe", "mono-si"} {
		if _, err := ParseModuleType(bad); !errors.Is(err, ErrUnknownModuleType) {
			t.Errorf("ParseModuleType(%q) error = %v, expected ErrUnknownModuleType", bad, err)
		}
	}
}

func TestModuleTypeCoefficients(t *testing.T) {
	c, err := MonoSi.Coefficients()
	if err != nil {
		t.Fatal(err)
	}
	if c != (Coefficients{0.0027, 10.34, 9.48, 0.307, 0.00077, 0.006}) {
		t.Errorf("unexpected monosi coefficients %v", c)
	}

	// Returned tables are copies
	c[0] = 99
	if again, _ := MonoSi.Coefficients(); again[0] != 0.0027 {
		t.Errorf("coefficient table was mutated through a returned value")
	}

	b, err := ASi.AlbedoCoefficients()
	if err != nil {
		t.Fatal(err)
	}
	if b != (AlbedoCoefficients{0.0056, -0.020, 1.014}) {
		t.Errorf("unexpected asi albedo coefficients %v", b)
	}

	if _, err := ModuleType(0).Coefficients(); !errors.Is(err, ErrUnknownModuleType) {
		t.Errorf("zero ModuleType should be unknown, got %v", err)
	}
	if _, err := ModuleType(9).AlbedoCoefficients(); !errors.Is(err, ErrUnknownModuleType) {
		t.Errorf("out of range ModuleType should be unknown, got %v", err)
	}
	if ModuleType(9).String() != "ModuleType(9)" {
		t.Errorf("unexpected String for invalid module: %s", ModuleType(9))
	}
}
