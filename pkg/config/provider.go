package config

import (
	"errors"
	"fmt"

	"github.com/chrissnell/pvspectral/pkg/atmosphere"
	"github.com/chrissnell/pvspectral/pkg/spectral"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetSites() ([]SiteData, error)
	GetSite(name string) (*SiteData, error)

	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Sites []SiteData `json:"sites"`
}

// SiteData describes one PV array: where it is, how it is mounted and which
// spectral coefficients apply to it
type SiteData struct {
	Name           string    `json:"name"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Altitude       float64   `json:"altitude"`
	SurfaceTilt    float64   `json:"surface_tilt"`
	SurfaceAzimuth float64   `json:"surface_azimuth"`
	Albedo         *float64  `json:"albedo,omitempty"`
	ModuleType     string    `json:"module_type,omitempty"`
	Coefficients   []float64 `json:"coefficients,omitempty"`
	AirmassModel   string    `json:"airmass_model,omitempty"`
}

// Mounting assumed when a site leaves it out: a south-facing vertical facade.
// The SQLite schema carries the same column defaults.
const (
	DefaultSurfaceTilt    = 90.0
	DefaultSurfaceAzimuth = 180.0
)

// ErrSiteNotFound is returned by GetSite when no site has the requested name
var ErrSiteNotFound = errors.New("site not found")

// Validate checks the site against the estimator's argument rules
func (s *SiteData) Validate() error {
	if s.Name == "" {
		return errors.New("site name is required")
	}
	if _, err := atmosphere.ParseAirmassModel(s.AirmassModel); err != nil {
		return fmt.Errorf("site %s: %w", s.Name, err)
	}
	if err := spectral.ValidateOptions(s.EstimatorOptions()...); err != nil {
		return fmt.Errorf("site %s: %w", s.Name, err)
	}
	return nil
}

// EstimatorOptions converts the site's spectral settings into estimator options.
// Both or neither of ModuleType and Coefficients are passed through as given so
// the estimator reports the conflict.
func (s *SiteData) EstimatorOptions() []spectral.Option {
	var opts []spectral.Option
	if s.ModuleType != "" {
		opts = append(opts, spectral.WithModuleType(s.ModuleType))
	}
	if s.Coefficients != nil {
		opts = append(opts, spectral.WithCoefficients(s.Coefficients...))
	}
	if s.Albedo != nil {
		opts = append(opts, spectral.WithAlbedo(*s.Albedo))
	}
	return opts
}

// findSite returns the named site from a loaded list
func findSite(sites []SiteData, name string) (*SiteData, error) {
	for i := range sites {
		if sites[i].Name == name {
			site := sites[i]
			return &site, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSiteNotFound, name)
}
