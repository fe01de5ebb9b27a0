// Package jhu retrieves the JHU CSSE COVID-19 global time series tables.
package jhu

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/andersy005/covidtrend/dataset"
	"github.com/rs/zerolog"
)

const (
	DefaultBaseURL = "https://raw.githubusercontent.com/CSSEGISandData/COVID-19/master/csse_covid_19_data/csse_covid_19_time_series/"

	confirmedResource = "time_series_covid19_confirmed_global.csv"
	deathsResource    = "time_series_covid19_deaths_global.csv"

	MetricConfirmed = "confirmed"
	MetricDeaths    = "deaths"

	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "covidtrend/0.1"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Config holds options for creating a new Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
}

// Client fetches the two global time series CSVs. Each resource is requested
// exactly once per run: any failure is fatal to the caller, with no retry and
// no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: cfg.Logger,
	}
}

// FetchGlobal retrieves the confirmed and deaths wide tables.
func (c *Client) FetchGlobal(ctx context.Context) (confirmed, deaths *dataset.WideTable, err error) {
	confirmed, err = c.fetch(ctx, confirmedResource, MetricConfirmed)
	if err != nil {
		return nil, nil, err
	}
	deaths, err = c.fetch(ctx, deathsResource, MetricDeaths)
	if err != nil {
		return nil, nil, err
	}
	return confirmed, deaths, nil
}

func (c *Client) fetch(ctx context.Context, resource, metric string) (*dataset.WideTable, error) {
	url := c.baseURL + resource
	c.logger.Info().Str("url", url).Str("metric", metric).Msg("fetching time series")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to build request for %s, %w", resource, err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %s, %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d, %w", resource, resp.StatusCode, ErrUnexpectedStatus)
	}

	w, err := dataset.ParseWide(resp.Body, metric)
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s, %w", resource, err)
	}
	c.logger.Info().
		Str("metric", metric).
		Int("regions", len(w.Rows)).
		Int("dates", len(w.Dates)).
		Msg("parsed time series")
	return w, nil
}
