package weatherdata

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
)

// parquetRecord is the on-disk row layout. Optional columns are nullable.
type parquetRecord struct {
	Timestamp         int64    `parquet:"timestamp"`
	PrecipitableWater float64  `parquet:"precipitable_water"`
	AOD500            float64  `parquet:"aod500"`
	AirmassAbsolute   *float64 `parquet:"airmass_absolute,optional"`
	AOI               *float64 `parquet:"aoi,optional"`
	Irradiance        *float64 `parquet:"poa_global,optional"`
}

const parquetBatchSize = 1024

// ReadParquetFile reads weather data from a Parquet file
func ReadParquetFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return ReadParquet(f, info.Size())
}

// ReadParquet reads weather data from Parquet content of the given size
func ReadParquet(r io.ReaderAt, size int64) ([]Record, error) {
	pf, err := parquet.OpenFile(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet data: %w", err)
	}

	reader := parquet.NewGenericReader[parquetRecord](pf)
	defer reader.Close()

	records := make([]Record, 0, reader.NumRows())
	rows := make([]parquetRecord, parquetBatchSize)
	for {
		n, err := reader.Read(rows)
		for i := 0; i < n; i++ {
			records = append(records, fromParquet(rows[i]))
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return records, nil
}

// WriteParquetFile writes records to a Parquet file, storing NaN optional
// values as nulls
func WriteParquetFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteParquet(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteParquet encodes records as Parquet into w
func WriteParquet(w io.Writer, records []Record) error {
	rows := make([]parquetRecord, len(records))
	for i, r := range records {
		rows[i] = toParquet(r)
	}

	writer := parquet.NewGenericWriter[parquetRecord](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	return writer.Close()
}

func fromParquet(p parquetRecord) Record {
	return Record{
		Time:              time.Unix(p.Timestamp, 0).UTC(),
		PrecipitableWater: p.PrecipitableWater,
		AOD500:            p.AOD500,
		AirmassAbsolute:   valueOrNaN(p.AirmassAbsolute),
		AOI:               valueOrNaN(p.AOI),
		Irradiance:        valueOrNaN(p.Irradiance),
	}
}

func toParquet(r Record) parquetRecord {
	return parquetRecord{
		Timestamp:         r.Time.Unix(),
		PrecipitableWater: r.PrecipitableWater,
		AOD500:            r.AOD500,
		AirmassAbsolute:   nullable(r.AirmassAbsolute),
		AOI:               nullable(r.AOI),
		Irradiance:        nullable(r.Irradiance),
	}
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func nullable(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}
