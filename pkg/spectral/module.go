package spectral

import "fmt"

// ModuleType identifies a PV technology with published Polo coefficients
type ModuleType int

const (
	CdTe ModuleType = iota + 1
	MonoSi
	CIGS
	ASi
)

// Coefficients are the six fit parameters of the mismatch expression, in order
type Coefficients [6]float64

// AlbedoCoefficients are the quadratic, linear and constant terms of the
// ground albedo correction
type AlbedoCoefficients [3]float64

// neutralAlbedo leaves the mismatch term untouched at the 0.2 reference albedo
var neutralAlbedo = AlbedoCoefficients{0.0, 0.0, 1.0}

// Fit parameters from Polo & Sanz-Saiz (2025), Renew. Energy 245, 122820,
// indexed by ModuleType.
var poloCoefficients = [...]Coefficients{
	CdTe:   {-0.0009, 46.80, 49.20, -0.87, 0.00041, 0.053},
	MonoSi: {0.0027, 10.34, 9.48, 0.307, 0.00077, 0.006},
	CIGS:   {0.0017, 2.33, 1.30, 0.11, 0.00098, -0.0177},
	ASi:    {0.0024, 7.32, 7.09, -0.72, -0.0013, 0.089},
}

var poloAlbedoCoefficients = [...]AlbedoCoefficients{
	CdTe:   {0.0021, -0.01, 1.01},
	MonoSi: {0, -0.003, 1.0},
	CIGS:   {-0.0009, -0.0003, 1},
	ASi:    {0.0056, -0.020, 1.014},
}

// ModuleTypes returns every supported technology
func ModuleTypes() []ModuleType {
	return []ModuleType{CdTe, MonoSi, CIGS, ASi}
}

func (m ModuleType) String() string {
	switch m {
	case CdTe:
		return "cdte"
	case MonoSi:
		return "monosi"
	case CIGS:
		return "cigs"
	case ASi:
		return "asi"
	}
	return fmt.Sprintf("ModuleType(%d)", int(m))
}

// Valid reports whether m is one of the four known technologies
func (m ModuleType) Valid() bool {
	switch m {
	case CdTe, MonoSi, CIGS, ASi:
		return true
	}
	return false
}

// ParseModuleType maps a technology tag ("cdte", "monosi", "cigs", "asi")
// onto its ModuleType. Tags are case sensitive.
func ParseModuleType(s string) (ModuleType, error) {
	switch s {
	case "cdte":
		return CdTe, nil
	case "monosi":
		return MonoSi, nil
	case "cigs":
		return CIGS, nil
	case "asi":
		return ASi, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModuleType, s)
}

// Coefficients returns a copy of the mismatch fit parameters for m
func (m ModuleType) Coefficients() (Coefficients, error) {
	if !m.Valid() {
		return Coefficients{}, fmt.Errorf("%w: %v", ErrUnknownModuleType, m)
	}
	return poloCoefficients[m], nil
}

// AlbedoCoefficients returns a copy of the albedo correction terms for m
func (m ModuleType) AlbedoCoefficients() (AlbedoCoefficients, error) {
	if !m.Valid() {
		return AlbedoCoefficients{}, fmt.Errorf("%w: %v", ErrUnknownModuleType, m)
	}
	return poloAlbedoCoefficients[m], nil
}
