// Package covidtrend runs a single-pass analysis of the JHU CSSE COVID-19
// time series: fetch the confirmed and deaths tables, reshape them into one
// long observation table, aggregate, and fit an additive seasonal forecast to
// one country's series.
package covidtrend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/andersy005/covidtrend/dataset"
	"github.com/andersy005/covidtrend/forecast"
	"github.com/andersy005/covidtrend/internal/config"
	"github.com/andersy005/covidtrend/internal/jhu"
	"github.com/rs/zerolog"
)

var ErrNoCountryData = errors.New("no observations for the configured country")

// Report bundles every table produced by one run for downstream rendering,
// export, or storage.
type Report struct {
	Country string `json:"country"`

	GlobalDaily       []dataset.SummaryRow `json:"global_daily"`
	GlobalDailyChange []dataset.SummaryRow `json:"global_daily_change"`
	TopCountries      []dataset.SummaryRow `json:"top_countries"`
	CountryDaily      []dataset.SummaryRow `json:"country_daily"`

	ConfirmedForecast *forecast.Results `json:"confirmed_forecast"`
	DeathsForecast    *forecast.Results `json:"deaths_forecast"`

	Observations []dataset.Observation `json:"-"`
}

// Run executes the pipeline: fetch, reshape, aggregate, forecast. Strictly
// sequential with no retries; the first failure aborts the run.
func Run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Report, error) {
	client := jhu.NewClient(jhu.Config{
		BaseURL: cfg.BaseURL,
		Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		Logger:  logger,
	})
	confirmedWide, deathsWide, err := client.FetchGlobal(ctx)
	if err != nil {
		return nil, err
	}

	obs := dataset.LeftJoin(dataset.Melt(confirmedWide), dataset.Melt(deathsWide))
	logger.Info().Int("rows", len(obs)).Msg("built observation table")

	globalDaily := dataset.Aggregate(obs, dataset.ByDate)
	byCountry := dataset.Aggregate(obs, dataset.ByCountry)
	countryDaily := dataset.Aggregate(obs, dataset.ByDate, dataset.CountryIs(cfg.Country))
	if len(countryDaily) == 0 {
		return nil, fmt.Errorf("%q, %w", cfg.Country, ErrNoCountryData)
	}

	r := &Report{
		Country:           cfg.Country,
		GlobalDaily:       globalDaily,
		GlobalDailyChange: dataset.DailyChange(globalDaily),
		TopCountries:      dataset.TopN(byCountry, dataset.ColConfirmed, cfg.TopN),
		CountryDaily:      countryDaily,
		Observations:      obs,
	}

	r.ConfirmedForecast, err = forecastSeries(countryDaily, dataset.ColConfirmed, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to forecast confirmed series, %w", err)
	}
	r.DeathsForecast, err = forecastSeries(countryDaily, dataset.ColDeaths, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to forecast deaths series, %w", err)
	}
	logger.Info().
		Str("country", cfg.Country).
		Int("horizon_days", cfg.HorizonDays).
		Msg("fit forecasts")

	return r, nil
}

// forecastSeries fits one metric of a date-grouped summary and predicts over
// the observed range plus the configured horizon. Confirmed and deaths are
// two independent series with two independent fits.
func forecastSeries(summary []dataset.SummaryRow, col dataset.Column, cfg *config.Config) (*forecast.Results, error) {
	t := make([]time.Time, 0, len(summary))
	y := make([]float64, 0, len(summary))
	for _, row := range summary {
		t = append(t, row.Date)
		if col == dataset.ColDeaths {
			y = append(y, float64(row.Deaths))
		} else {
			y = append(y, float64(row.Confirmed))
		}
	}

	f := forecast.New(forecastOptions(cfg))
	if err := f.Fit(t, y); err != nil {
		return nil, err
	}
	return f.PredictInterval(f.TrainingData().Horizon(cfg.HorizonDays))
}

func forecastOptions(cfg *config.Config) *forecast.Options {
	opt := forecast.NewDefaultOptions()
	opt.SeasonalityConfigs = opt.SeasonalityConfigs[:0]
	if cfg.YearlySeasonality {
		opt.SeasonalityConfigs = append(opt.SeasonalityConfigs, forecast.NewYearlySeasonalityConfig(10))
	}
	if cfg.WeeklySeasonality {
		opt.SeasonalityConfigs = append(opt.SeasonalityConfigs, forecast.NewWeeklySeasonalityConfig(3))
	}
	if cfg.DailySeasonality {
		opt.SeasonalityConfigs = append(opt.SeasonalityConfigs, forecast.NewDailySeasonalityConfig(4))
	}
	if cfg.Country == "US" {
		opt.Holidays = forecast.USHolidays()
	}
	return opt
}
