package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"

	"github.com/chrissnell/pvspectral/internal/app"
	"github.com/chrissnell/pvspectral/internal/log"
	"github.com/chrissnell/pvspectral/pkg/config"
	"github.com/chrissnell/pvspectral/pkg/responseformat"
	"github.com/chrissnell/pvspectral/pkg/spectral"
	"github.com/chrissnell/pvspectral/pkg/weatherdata"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	// Series mode
	cfgFile := flag.String("config", "", "Path to site configuration (YAML file or SQLite database)")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' or 'sqlite'")
	siteName := flag.String("site", "", "Site to evaluate; may be omitted when the configuration holds one site")
	input := flag.String("input", "", "Weather series to evaluate (.csv, .csv.gz or .parquet)")

	// Single point mode
	pw := flag.Float64("precipitable-water", 1.42, "Precipitable water [cm]")
	airmass := flag.Float64("airmass", 1.5, "Absolute (pressure-adjusted) airmass")
	aod := flag.Float64("aod500", 0.2, "Aerosol optical depth at 500 nm")
	aoi := flag.Float64("aoi", 30, "Angle of incidence [degrees]")
	altitude := flag.Float64("altitude", 0, "Altitude above sea level [m]")
	moduleType := flag.String("module", "", "Module technology: cdte, monosi, cigs or asi")
	coefficients := flag.String("coefficients", "", "Six comma-separated custom coefficients (albedo is then fixed at 0.2)")
	albedo := flag.Float64("albedo", spectral.DefaultAlbedo, "Ground albedo")

	format := flag.String("format", "json", "Output format: 'json' or 'msgpack'")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("spectral-factor %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	outFormat, err := responseformat.ParseFormat(*format)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	formatter := responseformat.NewFormatter(outFormat)
	if outFormat == responseformat.FormatJSON {
		formatter.Indent()
	}

	var result any
	if *input != "" {
		result, err = runSeries(*cfgFile, *cfgBackend, *siteName, *input)
	} else {
		var opts []spectral.Option
		opts, err = pointOptions(*moduleType, *coefficients, *albedo)
		if err == nil {
			result, err = runPoint(*pw, *airmass, *aod, *aoi, *altitude, opts)
		}
	}
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}

	if err := formatter.Write(os.Stdout, result); err != nil {
		log.Errorf("Failed to write output: %v", err)
		os.Exit(1)
	}
}

// pointResult is the single point output
type pointResult struct {
	AirmassRatio     responseformat.Float `json:"airmass_ratio"`
	Mismatch         responseformat.Float `json:"mismatch"`
	AlbedoCorrection responseformat.Float `json:"albedo_correction"`
	Modifier         responseformat.Float `json:"modifier"`
}

func runPoint(pw, airmass, aod, aoi, altitude float64, opts []spectral.Option) (*pointResult, error) {
	r, err := spectral.FactorPoloDetail(pw, airmass, aod, aoi, altitude, opts...)
	if err != nil {
		return nil, err
	}
	log.Debugw("evaluated single point", "modifier", r.Modifier)

	return &pointResult{
		AirmassRatio:     responseformat.Float(r.AirmassRatio),
		Mismatch:         responseformat.Float(r.Mismatch),
		AlbedoCorrection: responseformat.Float(r.AlbedoCorrection),
		Modifier:         responseformat.Float(r.Modifier),
	}, nil
}

func pointOptions(moduleType, coefficients string, albedo float64) ([]spectral.Option, error) {
	var opts []spectral.Option
	if moduleType != "" {
		opts = append(opts, spectral.WithModuleType(moduleType))
	}
	if coefficients != "" {
		c, err := parseCoefficients(coefficients)
		if err != nil {
			return nil, err
		}
		opts = append(opts, spectral.WithCoefficients(c...))
	}
	return append(opts, spectral.WithAlbedo(albedo)), nil
}

func parseCoefficients(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	c := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid coefficient %q: %w", p, err)
		}
		c[i] = v
	}
	return c, nil
}

func runSeries(cfgFile, cfgBackend, siteName, input string) (*app.Report, error) {
	if cfgFile == "" {
		return nil, fmt.Errorf("series mode requires -config")
	}

	provider, err := loadConfig(cfgFile, cfgBackend)
	if err != nil {
		return nil, err
	}
	defer provider.Close()

	site, err := selectSite(provider, siteName)
	if err != nil {
		return nil, err
	}

	records, err := weatherdata.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("error reading weather data: %w", err)
	}
	log.Infow("loaded weather data", "file", input, "rows", len(records), "site", site.Name)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return app.New(*site, log.GetSugaredLogger()).Run(ctx, records)
}

func selectSite(provider config.ConfigProvider, name string) (*config.SiteData, error) {
	if name != "" {
		return provider.GetSite(name)
	}

	sites, err := provider.GetSites()
	if err != nil {
		return nil, err
	}
	if len(sites) != 1 {
		return nil, fmt.Errorf("configuration holds %d sites; choose one with -site", len(sites))
	}
	return &sites[0], nil
}

func loadConfig(cfgFile, cfgBackend string) (config.ConfigProvider, error) {
	filename, _ := filepath.Abs(cfgFile)

	var provider config.ConfigProvider
	var err error

	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(filename)
	case "sqlite":
		provider, err = config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}

	if _, err := provider.LoadConfig(); err != nil {
		provider.Close()
		return nil, fmt.Errorf("error reading config file. Did you pass the -config flag? Run with -h for help: %w", err)
	}

	return provider, nil
}
