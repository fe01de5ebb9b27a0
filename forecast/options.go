package forecast

import (
	"time"

	"github.com/rickar/cal/v2"
)

const (
	// fourier period presets
	PeriodDaily  = 24 * time.Hour
	PeriodWeekly = 7 * 24 * time.Hour
	PeriodYearly = 365*24*time.Hour + 6*time.Hour
)

// SeasonalityConfig describes a single seasonal component to model. A period
// with n orders generates 2n Fourier series (sine/cosine pairs) where order 1
// spans the full period, order 2 half the period and so on.
type SeasonalityConfig struct {
	Name   string        `json:"name"`
	Period time.Duration `json:"period"`
	Orders int           `json:"orders"`
}

func NewSeasonalityConfig(name string, period time.Duration, orders int) SeasonalityConfig {
	if orders < 0 {
		orders = 0
	}
	return SeasonalityConfig{
		Name:   name,
		Period: period,
		Orders: orders,
	}
}

func NewDailySeasonalityConfig(orders int) SeasonalityConfig {
	return NewSeasonalityConfig("daily", PeriodDaily, orders)
}

func NewWeeklySeasonalityConfig(orders int) SeasonalityConfig {
	return NewSeasonalityConfig("weekly", PeriodWeekly, orders)
}

func NewYearlySeasonalityConfig(orders int) SeasonalityConfig {
	return NewSeasonalityConfig("yearly", PeriodYearly, orders)
}

// Options configures a forecast fit: seasonal components, holiday indicator
// regressors, and the shape of the uncertainty interval.
type Options struct {
	SeasonalityConfigs []SeasonalityConfig `json:"seasonality_configs"`

	// Holidays adds one indicator regressor per holiday, active within
	// HolidayWindow of each observed holiday date.
	Holidays      []*cal.Holiday `json:"-"`
	HolidayWindow time.Duration  `json:"holiday_window"`

	// IntervalZscore scales the training residual standard deviation into the
	// interval half-width. IntervalGrowthDays controls how fast the interval
	// widens past the training range.
	IntervalZscore     float64 `json:"interval_zscore"`
	IntervalGrowthDays float64 `json:"interval_growth_days"`
}

// NewDefaultOptions returns options suited for a daily cumulative series:
// yearly and weekly seasonality on, daily off, 95% intervals.
func NewDefaultOptions() *Options {
	return &Options{
		SeasonalityConfigs: []SeasonalityConfig{
			NewYearlySeasonalityConfig(10),
			NewWeeklySeasonalityConfig(3),
		},
		HolidayWindow:      24 * time.Hour,
		IntervalZscore:     1.96,
		IntervalGrowthDays: 30,
	}
}
