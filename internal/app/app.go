package app

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/chrissnell/pvspectral/pkg/atmosphere"
	"github.com/chrissnell/pvspectral/pkg/config"
	"github.com/chrissnell/pvspectral/pkg/responseformat"
	"github.com/chrissnell/pvspectral/pkg/solarpos"
	"github.com/chrissnell/pvspectral/pkg/spectral"
	"github.com/chrissnell/pvspectral/pkg/weatherdata"
	"go.uber.org/zap"
)

// App computes spectral modifiers for one configured site
type App struct {
	site   config.SiteData
	logger *zap.SugaredLogger
}

// Row is the per-timestep output
type Row struct {
	Time                time.Time             `json:"time"`
	AOI                 responseformat.Float  `json:"aoi"`
	AirmassAbsolute     responseformat.Float  `json:"airmass_absolute"`
	Modifier            responseformat.Float  `json:"modifier"`
	EffectiveIrradiance *responseformat.Float `json:"effective_irradiance,omitempty"`
}

// SummaryReport mirrors spectral.Summary with null-safe floats
type SummaryReport struct {
	Count     int                  `json:"count"`
	NonFinite int                  `json:"non_finite"`
	Min       responseformat.Float `json:"min"`
	Max       responseformat.Float `json:"max"`
	Mean      responseformat.Float `json:"mean"`
	StdDev    responseformat.Float `json:"std_dev"`
}

// Report is the complete result for a site
type Report struct {
	Site    string        `json:"site"`
	Model   string        `json:"model"`
	Derived int           `json:"derived_rows"`
	Rows    []Row         `json:"rows"`
	Summary SummaryReport `json:"summary"`
}

// New creates an application instance for a validated site
func New(site config.SiteData, logger *zap.SugaredLogger) *App {
	return &App{
		site:   site,
		logger: logger,
	}
}

// Run derives any missing geometry, evaluates the spectral modifier over the
// records and summarizes the result
func (a *App) Run(ctx context.Context, records []weatherdata.Record) (*Report, error) {
	if len(records) == 0 {
		return nil, errors.New("no weather records to process")
	}

	if err := a.site.Validate(); err != nil {
		return nil, err
	}
	model, err := atmosphere.ParseAirmassModel(a.site.AirmassModel)
	if err != nil {
		return nil, err
	}

	pw, aod, airmass, aoi, irradiance := weatherdata.Columns(records)

	derived, err := a.deriveGeometry(ctx, records, model, airmass, aoi)
	if err != nil {
		return nil, err
	}
	a.logger.Debugw("derived solar geometry", "site", a.site.Name, "rows", derived, "model", model.String())

	modifier, err := spectral.FactorPoloSeries(spectral.Inputs{
		PrecipitableWater: pw,
		AirmassAbsolute:   airmass,
		AOD500:            aod,
		AOI:               aoi,
		Altitude:          spectral.Scalar(a.site.Altitude),
	}, a.site.EstimatorOptions()...)
	if err != nil {
		return nil, err
	}

	var effective []float64
	if weatherdata.HasIrradiance(records) {
		if effective, err = spectral.EffectiveIrradiance(irradiance, modifier); err != nil {
			return nil, err
		}
	}

	report := &Report{
		Site:    a.site.Name,
		Model:   a.modelName(),
		Derived: derived,
		Rows:    make([]Row, len(records)),
		Summary: summaryReport(spectral.Summarize(modifier)),
	}
	for i, r := range records {
		report.Rows[i] = Row{
			Time:            r.Time,
			AOI:             responseformat.Float(aoi[i]),
			AirmassAbsolute: responseformat.Float(airmass[i]),
			Modifier:        responseformat.Float(modifier[i]),
		}
		if effective != nil {
			e := responseformat.Float(effective[i])
			report.Rows[i].EffectiveIrradiance = &e
		}
	}

	a.logger.Infow("computed spectral modifier",
		"site", a.site.Name,
		"model", report.Model,
		"rows", report.Summary.Count,
		"non_finite", report.Summary.NonFinite,
		"mean", float64(report.Summary.Mean),
	)
	if report.Summary.NonFinite > 0 {
		a.logger.Warnw("some timesteps produced non-finite modifiers",
			"site", a.site.Name, "count", report.Summary.NonFinite)
	}

	return report, nil
}

// deriveGeometry fills NaN airmass and AOI entries from the solar position
// at the site and returns the number of timesteps it looked up. Missing values
// stay NaN while the Sun is below the horizon, even when the other one was
// supplied.
func (a *App) deriveGeometry(ctx context.Context, records []weatherdata.Record, model atmosphere.AirmassModel, airmass, aoi []float64) (int, error) {
	pressure := atmosphere.AltToPressure(a.site.Altitude)

	derived := 0
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return derived, err
		}
		if !math.IsNaN(airmass[i]) && !math.IsNaN(aoi[i]) {
			continue
		}

		pos := solarpos.Position(r.Time, a.site.Latitude, a.site.Longitude)
		derived++
		if !pos.Up() {
			continue
		}
		if math.IsNaN(aoi[i]) {
			aoi[i] = solarpos.AngleOfIncidence(a.site.SurfaceTilt, a.site.SurfaceAzimuth, pos.ZenithDeg, pos.AzimuthDeg)
		}
		if math.IsNaN(airmass[i]) {
			airmass[i] = atmosphere.AbsoluteAirmass(atmosphere.RelativeAirmass(pos.ZenithDeg, model), pressure)
		}
	}
	return derived, nil
}

func (a *App) modelName() string {
	if a.site.ModuleType != "" {
		return a.site.ModuleType
	}
	return "custom"
}

func summaryReport(s spectral.Summary) SummaryReport {
	return SummaryReport{
		Count:     s.Count,
		NonFinite: s.NonFinite,
		Min:       responseformat.Float(s.Min),
		Max:       responseformat.Float(s.Max),
		Mean:      responseformat.Float(s.Mean),
		StdDev:    responseformat.Float(s.StdDev),
	}
}
