package covidtrend

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andersy005/covidtrend/internal/config"
)

const fixtureDays = 60

var fixtureStart = time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC)

func fixtureHeader() string {
	cols := []string{"Province/State", "Country/Region", "Lat", "Long"}
	for i := 0; i < fixtureDays; i++ {
		cols = append(cols, fixtureStart.AddDate(0, 0, i).Format("1/2/06"))
	}
	return strings.Join(cols, ",")
}

func fixtureRow(province, country string, scale int64) string {
	cols := []string{province, country, "0", "0"}
	for i := 0; i < fixtureDays; i++ {
		cols = append(cols, fmt.Sprintf("%d", scale*int64(i+1)))
	}
	return strings.Join(cols, ",")
}

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	confirmed := strings.Join([]string{
		fixtureHeader(),
		fixtureRow("", "US", 100),
		fixtureRow("", "Italy", 50),
		fixtureRow("Ontario", "Canada", 10),
	}, "\n") + "\n"
	// no Canada row: its deaths stay absent after the join
	deaths := strings.Join([]string{
		fixtureHeader(),
		fixtureRow("", "US", 3),
		fixtureRow("", "Italy", 2),
	}, "\n") + "\n"

	mux := http.NewServeMux()
	mux.HandleFunc("/time_series_covid19_confirmed_global.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(confirmed))
	})
	mux.HandleFunc("/time_series_covid19_deaths_global.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(deaths))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func fixtureConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:           baseURL,
		Country:           "US",
		HorizonDays:       10,
		TopN:              2,
		YearlySeasonality: true,
		WeeklySeasonality: true,
		RequestTimeout:    5,
	}
}

func TestRun(t *testing.T) {
	srv := newFixtureServer(t)
	report, err := Run(context.Background(), fixtureConfig(srv.URL+"/"), zerolog.Nop())
	require.Nil(t, err)

	assert.Equal(t, "US", report.Country)
	assert.Len(t, report.Observations, 3*fixtureDays)
	require.Len(t, report.GlobalDaily, fixtureDays)

	// day one: confirmed 100+50+10, deaths 3+2 with Canada's absent value excluded
	assert.Equal(t, int64(160), report.GlobalDaily[0].Confirmed)
	assert.Equal(t, int64(5), report.GlobalDaily[0].Deaths)

	require.Len(t, report.TopCountries, 2)
	assert.Equal(t, "US", report.TopCountries[0].Country)
	assert.Equal(t, "Italy", report.TopCountries[1].Country)

	require.Len(t, report.CountryDaily, fixtureDays)
	assert.Equal(t, int64(100), report.CountryDaily[0].Confirmed)

	require.NotNil(t, report.ConfirmedForecast)
	require.NotNil(t, report.DeathsForecast)
	assert.Len(t, report.ConfirmedForecast.Forecast, fixtureDays+10)
	assert.Len(t, report.DeathsForecast.Forecast, fixtureDays+10)

	lastObserved := fixtureStart.AddDate(0, 0, fixtureDays-1)
	assert.Equal(t, lastObserved.AddDate(0, 0, 1), report.ConfirmedForecast.T[fixtureDays])
}

func TestRunUnknownCountry(t *testing.T) {
	srv := newFixtureServer(t)
	cfg := fixtureConfig(srv.URL + "/")
	cfg.Country = "Atlantis"

	_, err := Run(context.Background(), cfg, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNoCountryData)
}

func TestRunFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := Run(context.Background(), fixtureConfig(srv.URL+"/"), zerolog.Nop())
	assert.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	srv := newFixtureServer(t)
	report, err := Run(context.Background(), fixtureConfig(srv.URL+"/"), zerolog.Nop())
	require.Nil(t, err)

	path := filepath.Join(t.TempDir(), "report.html")
	require.Nil(t, report.RenderHTML(path))

	data, err := os.ReadFile(path)
	require.Nil(t, err)
	assert.Contains(t, string(data), "echarts")
}

func TestExportJSON(t *testing.T) {
	srv := newFixtureServer(t)
	report, err := Run(context.Background(), fixtureConfig(srv.URL+"/"), zerolog.Nop())
	require.Nil(t, err)

	path := filepath.Join(t.TempDir(), "report.json")
	require.Nil(t, report.ExportJSON(path))

	data, err := os.ReadFile(path)
	require.Nil(t, err)

	var decoded map[string]interface{}
	require.Nil(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "global_daily")
	assert.Contains(t, decoded, "confirmed_forecast")
	assert.NotContains(t, decoded, "observations")
}
