package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// SiteYAML is the on-disk layout of a site
type SiteYAML struct {
	Name           string    `yaml:"name"`
	Latitude       float64   `yaml:"latitude"`
	Longitude      float64   `yaml:"longitude"`
	Altitude       float64   `yaml:"altitude,omitempty"`
	SurfaceTilt    *float64  `yaml:"surface-tilt,omitempty"`
	SurfaceAzimuth *float64  `yaml:"surface-azimuth,omitempty"`
	Albedo         *float64  `yaml:"albedo,omitempty"`
	ModuleType     string    `yaml:"module-type,omitempty"`
	Coefficients   []float64 `yaml:"coefficients,omitempty"`
	AirmassModel   string    `yaml:"airmass-model,omitempty"`
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// LoadConfig loads the complete configuration from YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	if y.config != nil {
		return y.config, nil
	}

	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	config, err := parseYAML(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", y.filename, err)
	}

	y.config = config
	return config, nil
}

func parseYAML(data []byte) (*ConfigData, error) {
	var yamlConfig struct {
		Sites []SiteYAML `yaml:"sites"`
	}

	if err := yaml.UnmarshalStrict(data, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Sites: make([]SiteData, len(yamlConfig.Sites)),
	}
	for i, site := range yamlConfig.Sites {
		config.Sites[i] = SiteData{
			Name:           site.Name,
			Latitude:       site.Latitude,
			Longitude:      site.Longitude,
			Altitude:       site.Altitude,
			SurfaceTilt:    valueOr(site.SurfaceTilt, DefaultSurfaceTilt),
			SurfaceAzimuth: valueOr(site.SurfaceAzimuth, DefaultSurfaceAzimuth),
			Albedo:         site.Albedo,
			ModuleType:     site.ModuleType,
			Coefficients:   site.Coefficients,
			AirmassModel:   site.AirmassModel,
		}
		if err := config.Sites[i].Validate(); err != nil {
			return nil, err
		}
	}

	return config, nil
}

func valueOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// GetSites returns the configured sites
func (y *YAMLProvider) GetSites() ([]SiteData, error) {
	config, err := y.LoadConfig()
	if err != nil {
		return nil, err
	}
	return config.Sites, nil
}

// GetSite returns a single site by name
func (y *YAMLProvider) GetSite(name string) (*SiteData, error) {
	sites, err := y.GetSites()
	if err != nil {
		return nil, err
	}
	return findSite(sites, name)
}

// IsReadOnly returns true since YAML files are edited by hand
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close is a no-op for YAML provider
func (y *YAMLProvider) Close() error {
	return nil
}
