package dataset

import (
	"sort"
	"time"
)

// GroupBy selects the grouping key for Aggregate.
type GroupBy int

const (
	ByDate GroupBy = iota
	ByCountry
	ByDateCountry
)

// Column names a summed column for ranking queries.
type Column int

const (
	ColConfirmed Column = iota
	ColDeaths
)

// Filter is a row predicate applied before grouping.
type Filter func(Observation) bool

// CountryIs keeps rows whose country equals name.
func CountryIs(name string) Filter {
	return func(o Observation) bool { return o.Country == name }
}

// CountryNot keeps rows whose country differs from name.
func CountryNot(name string) Filter {
	return func(o Observation) bool { return o.Country != name }
}

// SummaryRow is one group of an aggregation. Date is the zero time unless
// grouped by date and Country is empty unless grouped by country. Missing
// deaths are excluded from the Deaths sum rather than counted as zero.
type SummaryRow struct {
	Date      time.Time `json:"date,omitempty"`
	Country   string    `json:"country,omitempty"`
	Confirmed int64     `json:"confirmed"`
	Deaths    int64     `json:"deaths"`
}

type groupKey struct {
	date    time.Time
	country string
}

// Aggregate groups the observation table by the given key, after applying
// the optional filters, and sums the confirmed and deaths columns per group.
// Rows are ordered by date then country.
func Aggregate(obs []Observation, by GroupBy, filters ...Filter) []SummaryRow {
	groups := make(map[groupKey]*SummaryRow)
	order := make([]groupKey, 0)

	for _, o := range obs {
		if !keep(o, filters) {
			continue
		}
		var key groupKey
		switch by {
		case ByDate:
			key.date = o.Date
		case ByCountry:
			key.country = o.Country
		case ByDateCountry:
			key.date = o.Date
			key.country = o.Country
		}

		row, exists := groups[key]
		if !exists {
			row = &SummaryRow{Date: key.date, Country: key.country}
			groups[key] = row
			order = append(order, key)
		}
		row.Confirmed += o.Confirmed
		if o.Deaths != nil {
			row.Deaths += *o.Deaths
		}
	}

	sort.Slice(order, func(i, j int) bool {
		if !order[i].date.Equal(order[j].date) {
			return order[i].date.Before(order[j].date)
		}
		return order[i].country < order[j].country
	})

	summary := make([]SummaryRow, 0, len(order))
	for _, key := range order {
		summary = append(summary, *groups[key])
	}
	return summary
}

func keep(o Observation, filters []Filter) bool {
	for _, f := range filters {
		if !f(o) {
			return false
		}
	}
	return true
}

// TopN returns the n rows with the largest value in the chosen column,
// ordered descending. Ties break on country name for a stable result.
func TopN(summary []SummaryRow, by Column, n int) []SummaryRow {
	ranked := make([]SummaryRow, len(summary))
	copy(ranked, summary)
	sort.Slice(ranked, func(i, j int) bool {
		vi, vj := columnValue(ranked[i], by), columnValue(ranked[j], by)
		if vi != vj {
			return vi > vj
		}
		return ranked[i].Country < ranked[j].Country
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

func columnValue(row SummaryRow, by Column) int64 {
	if by == ColDeaths {
		return row.Deaths
	}
	return row.Confirmed
}

// DailyChange converts a date-sorted cumulative summary into per-day deltas.
// The first row keeps its cumulative value. Source corrections can produce
// negative deltas, which are passed through untouched.
func DailyChange(summary []SummaryRow) []SummaryRow {
	change := make([]SummaryRow, len(summary))
	copy(change, summary)
	for i := len(change) - 1; i > 0; i-- {
		change[i].Confirmed -= change[i-1].Confirmed
		change[i].Deaths -= change[i-1].Deaths
	}
	return change
}
