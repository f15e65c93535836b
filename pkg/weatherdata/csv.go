package weatherdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// CSV column names
const (
	ColumnTime              = "time"
	ColumnPrecipitableWater = "precipitable_water"
	ColumnAOD500            = "aod500"
	ColumnAirmassAbsolute   = "airmass_absolute"
	ColumnAOI               = "aoi"
	ColumnIrradiance        = "poa_global"
)

var requiredColumns = []string{ColumnTime, ColumnPrecipitableWater, ColumnAOD500}

// ReadCSVGzip reads gzip-compressed CSV weather data
func ReadCSVGzip(r io.Reader) ([]Record, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()
	return ReadCSV(gz)
}

// ReadCSV reads weather data with a header row. The time column is RFC3339.
// precipitable_water and aod500 are required; airmass_absolute, aoi and
// poa_global are optional. Empty cells read as NaN.
func ReadCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty CSV input: missing header row")
		}
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("CSV header is missing required column %q", name)
		}
	}

	var records []Record
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}

		rec, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", line, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func parseRow(row []string, index map[string]int) (Record, error) {
	var rec Record

	ts := strings.TrimSpace(row[index[ColumnTime]])
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return rec, fmt.Errorf("invalid time %q: %w", ts, err)
	}
	rec.Time = t

	fields := []struct {
		column string
		dst    *float64
	}{
		{ColumnPrecipitableWater, &rec.PrecipitableWater},
		{ColumnAOD500, &rec.AOD500},
		{ColumnAirmassAbsolute, &rec.AirmassAbsolute},
		{ColumnAOI, &rec.AOI},
		{ColumnIrradiance, &rec.Irradiance},
	}
	for _, f := range fields {
		*f.dst = math.NaN()

		i, ok := index[f.column]
		if !ok || i >= len(row) {
			continue
		}
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			continue
		}

		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return rec, fmt.Errorf("invalid %s %q: %w", f.column, cell, err)
		}
		*f.dst = v
	}

	return rec, nil
}
