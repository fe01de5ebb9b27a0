package dataset

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var ErrDuplicateRegion = errors.New("duplicate (province, country) pair")

// MetricRow is one (region, date, value) record of a long table for a single
// metric. Coordinates are dropped at melt time and play no further role.
type MetricRow struct {
	Province string    `json:"province,omitempty"`
	Country  string    `json:"country"`
	Date     time.Time `json:"date"`
	Value    int64     `json:"value"`
}

// Melt converts a wide table into a long table with one row per
// (region, date) pair. The output has len(w.Rows)*len(w.Dates) rows in
// region-major order.
func Melt(w *WideTable) []MetricRow {
	long := make([]MetricRow, 0, len(w.Rows)*len(w.Dates))
	for _, row := range w.Rows {
		for i, date := range w.Dates {
			long = append(long, MetricRow{
				Province: row.Province,
				Country:  row.Country,
				Date:     date,
				Value:    row.Values[i],
			})
		}
	}
	return long
}

// Pivot is the inverse of Melt, rebuilding a wide table from a long one.
// Every region must carry a value for every date observed anywhere in the
// input. Coordinates are gone by this point and come back zeroed.
func Pivot(long []MetricRow, metric string) (*WideTable, error) {
	dateSet := make(map[time.Time]struct{})
	type regionKey struct {
		province string
		country  string
	}
	regionOrder := make([]regionKey, 0)
	regionVals := make(map[regionKey]map[time.Time]int64)

	for _, row := range long {
		dateSet[row.Date] = struct{}{}
		key := regionKey{row.Province, row.Country}
		vals, exists := regionVals[key]
		if !exists {
			vals = make(map[time.Time]int64)
			regionVals[key] = vals
			regionOrder = append(regionOrder, key)
		}
		if _, exists := vals[row.Date]; exists {
			return nil, fmt.Errorf("%s/%s at %s, %w", key.country, key.province, row.Date.Format(DateLayout), ErrDuplicateRegion)
		}
		vals[row.Date] = row.Value
	}

	dates := make([]time.Time, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	w := &WideTable{
		Metric: metric,
		Dates:  dates,
		Rows:   make([]WideRow, 0, len(regionOrder)),
	}
	for _, key := range regionOrder {
		row := WideRow{
			Province: key.province,
			Country:  key.country,
			Values:   make([]int64, 0, len(dates)),
		}
		for _, date := range dates {
			val, exists := regionVals[key][date]
			if !exists {
				return nil, fmt.Errorf("%s/%s missing %s, %w", key.country, key.province, date.Format(DateLayout), ErrSchemaMismatch)
			}
			row.Values = append(row.Values, val)
		}
		w.Rows = append(w.Rows, row)
	}
	return w, nil
}
