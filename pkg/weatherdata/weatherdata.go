// Package weatherdata reads the atmospheric time series that drive the
// spectral mismatch model. Missing optional values are represented as NaN.
package weatherdata

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"
)

// Record is one timestep of atmospheric conditions
type Record struct {
	Time              time.Time
	PrecipitableWater float64 // cm
	AOD500            float64
	AirmassAbsolute   float64 // NaN when it must be derived from solar position
	AOI               float64 // degrees, NaN when it must be derived from solar position
	Irradiance        float64 // plane of array broadband irradiance, W/m², NaN when absent
}

// ReadFile loads records from a .csv, .csv.gz or .parquet file
func ReadFile(path string) ([]Record, error) {
	lower := strings.ToLower(path)

	switch {
	case strings.HasSuffix(lower, ".parquet"):
		return ReadParquetFile(path)
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".csv.gz"):
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		if strings.HasSuffix(lower, ".gz") {
			return ReadCSVGzip(f)
		}
		return ReadCSV(f)
	}
	return nil, fmt.Errorf("unsupported weather data file %s: expected .csv, .csv.gz or .parquet", path)
}

// Columns splits records into per-field series
func Columns(records []Record) (pw, aod, airmass, aoi, irradiance []float64) {
	n := len(records)
	pw = make([]float64, n)
	aod = make([]float64, n)
	airmass = make([]float64, n)
	aoi = make([]float64, n)
	irradiance = make([]float64, n)

	for i, r := range records {
		pw[i] = r.PrecipitableWater
		aod[i] = r.AOD500
		airmass[i] = r.AirmassAbsolute
		aoi[i] = r.AOI
		irradiance[i] = r.Irradiance
	}
	return
}

// HasIrradiance reports whether every record carries an irradiance value
func HasIrradiance(records []Record) bool {
	if len(records) == 0 {
		return false
	}
	for _, r := range records {
		if math.IsNaN(r.Irradiance) {
			return false
		}
	}
	return true
}
