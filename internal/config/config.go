// Package config loads run configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all settings for one analysis run.
type Config struct {
	BaseURL string

	Country     string
	HorizonDays int
	TopN        int

	YearlySeasonality bool
	WeeklySeasonality bool
	DailySeasonality  bool

	ReportPath string
	JSONPath   string
	SQLitePath string

	RequestTimeout int // seconds
	LogLevel       string
}

// Load initializes configuration from environment variables, reading a .env
// file first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &Config{
		BaseURL:           os.Getenv("COVIDTREND_BASE_URL"),
		Country:           getEnvWithDefault("COVIDTREND_COUNTRY", "US"),
		HorizonDays:       getEnvIntWithDefault("COVIDTREND_HORIZON_DAYS", 365),
		TopN:              getEnvIntWithDefault("COVIDTREND_TOP_N", 10),
		YearlySeasonality: getEnvBoolWithDefault("COVIDTREND_YEARLY_SEASONALITY", true),
		WeeklySeasonality: getEnvBoolWithDefault("COVIDTREND_WEEKLY_SEASONALITY", true),
		DailySeasonality:  getEnvBoolWithDefault("COVIDTREND_DAILY_SEASONALITY", false),
		ReportPath:        getEnvWithDefault("COVIDTREND_REPORT_PATH", "covidtrend.html"),
		JSONPath:          os.Getenv("COVIDTREND_JSON_PATH"),
		SQLitePath:        os.Getenv("COVIDTREND_SQLITE_PATH"),
		RequestTimeout:    getEnvIntWithDefault("COVIDTREND_REQUEST_TIMEOUT", 60),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
