package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deaths(v int64) *int64 { return &v }

func sampleObservations() []Observation {
	d1 := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)
	return []Observation{
		{Country: "US", Date: d1, Confirmed: 100, Deaths: deaths(5)},
		{Country: "US", Date: d2, Confirmed: 150, Deaths: deaths(8)},
		{Country: "Italy", Date: d1, Confirmed: 50, Deaths: deaths(2)},
		{Country: "Italy", Date: d2, Confirmed: 80, Deaths: nil},
		{Country: "Spain", Date: d1, Confirmed: 200, Deaths: deaths(10)},
		{Country: "Spain", Date: d2, Confirmed: 300, Deaths: deaths(20)},
	}
}

func TestAggregateByDate(t *testing.T) {
	d1 := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)

	summary := Aggregate(sampleObservations(), ByDate)
	assert.Equal(t, []SummaryRow{
		{Date: d1, Confirmed: 350, Deaths: 17},
		// missing Italy deaths excluded, not zeroed into the sum
		{Date: d2, Confirmed: 530, Deaths: 28},
	}, summary)
}

func TestAggregateByCountry(t *testing.T) {
	summary := Aggregate(sampleObservations(), ByCountry)
	assert.Equal(t, []SummaryRow{
		{Country: "Italy", Confirmed: 130, Deaths: 2},
		{Country: "Spain", Confirmed: 500, Deaths: 30},
		{Country: "US", Confirmed: 250, Deaths: 13},
	}, summary)
}

func TestAggregateFilters(t *testing.T) {
	testData := map[string]struct {
		filters  []Filter
		expected []SummaryRow
	}{
		"country is": {
			filters: []Filter{CountryIs("US")},
			expected: []SummaryRow{
				{Country: "US", Confirmed: 250, Deaths: 13},
			},
		},
		"country not": {
			filters: []Filter{CountryNot("US")},
			expected: []SummaryRow{
				{Country: "Italy", Confirmed: 130, Deaths: 2},
				{Country: "Spain", Confirmed: 500, Deaths: 30},
			},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, td.expected, Aggregate(sampleObservations(), ByCountry, td.filters...))
		})
	}
}

func TestAggregateIdempotent(t *testing.T) {
	summary := Aggregate(sampleObservations(), ByDate)

	reObs := make([]Observation, 0, len(summary))
	for _, row := range summary {
		d := row.Deaths
		reObs = append(reObs, Observation{
			Date:      row.Date,
			Confirmed: row.Confirmed,
			Deaths:    &d,
		})
	}
	assert.Equal(t, summary, Aggregate(reObs, ByDate))
}

func TestAggregateByDateCountry(t *testing.T) {
	d1 := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	summary := Aggregate(sampleObservations(), ByDateCountry, CountryIs("US"))
	require.Len(t, summary, 2)
	assert.Equal(t, SummaryRow{Date: d1, Country: "US", Confirmed: 100, Deaths: 5}, summary[0])
}

func TestTopN(t *testing.T) {
	summary := []SummaryRow{
		{Country: "A", Confirmed: 100},
		{Country: "B", Confirmed: 50},
		{Country: "C", Confirmed: 200},
	}

	top := TopN(summary, ColConfirmed, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "C", top[0].Country)
	assert.Equal(t, "A", top[1].Country)

	// n larger than the table returns everything
	assert.Len(t, TopN(summary, ColConfirmed, 10), 3)
}

func TestTopNByDeaths(t *testing.T) {
	summary := []SummaryRow{
		{Country: "A", Confirmed: 100, Deaths: 1},
		{Country: "B", Confirmed: 50, Deaths: 9},
	}
	top := TopN(summary, ColDeaths, 1)
	require.Len(t, top, 1)
	assert.Equal(t, "B", top[0].Country)
}

func TestDailyChange(t *testing.T) {
	d1 := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2020, 3, 2, 0, 0, 0, 0, time.UTC)
	d3 := time.Date(2020, 3, 3, 0, 0, 0, 0, time.UTC)
	summary := []SummaryRow{
		{Date: d1, Confirmed: 10, Deaths: 1},
		{Date: d2, Confirmed: 15, Deaths: 1},
		{Date: d3, Confirmed: 14, Deaths: 3},
	}

	change := DailyChange(summary)
	assert.Equal(t, []SummaryRow{
		{Date: d1, Confirmed: 10, Deaths: 1},
		{Date: d2, Confirmed: 5, Deaths: 0},
		// corrections may go negative and are passed through
		{Date: d3, Confirmed: -1, Deaths: 2},
	}, change)
}
