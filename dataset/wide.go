// Package dataset reshapes the JHU CSSE wide per-date tables into a long
// observation table and provides aggregation over it.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"
)

// DateLayout is the column header format of the source tables, e.g. 1/22/20.
const DateLayout = "1/2/06"

const (
	colProvince = iota
	colCountry
	colLat
	colLong
	colFirstDate
)

var (
	ErrSchemaMismatch = errors.New("unexpected source table schema")
	ErrBadDateHeader  = errors.New("date column header does not match M/D/YY")
)

// WideTable is a source table with one row per region and one column per
// observed date.
type WideTable struct {
	Metric string
	Dates  []time.Time
	Rows   []WideRow
}

// WideRow is a single region of a wide table. Values is index aligned with
// the table's Dates.
type WideRow struct {
	Province string
	Country  string
	Lat      float64
	Long     float64
	Values   []int64
}

// ParseWide reads a CSSE time series CSV into a WideTable labeled with the
// given metric name. Any malformed header, date column, or count is fatal.
func ParseWide(r io.Reader, metric string) (*WideTable, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read header row, %w", err)
	}
	if len(header) <= colFirstDate {
		return nil, fmt.Errorf("got %d columns, need at least %d, %w", len(header), colFirstDate+1, ErrSchemaMismatch)
	}

	dates := make([]time.Time, 0, len(header)-colFirstDate)
	for _, label := range header[colFirstDate:] {
		date, err := time.Parse(DateLayout, label)
		if err != nil {
			return nil, fmt.Errorf("column %q, %w", label, ErrBadDateHeader)
		}
		dates = append(dates, date)
	}

	w := &WideTable{
		Metric: metric,
		Dates:  dates,
	}
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read row %d, %w", len(w.Rows)+1, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d has %d columns, header has %d, %w", len(w.Rows)+1, len(record), len(header), ErrSchemaMismatch)
		}

		row := WideRow{
			Province: record[colProvince],
			Country:  record[colCountry],
			Values:   make([]int64, 0, len(dates)),
		}
		row.Lat, err = parseCoord(record[colLat])
		if err != nil {
			return nil, fmt.Errorf("row %d lat, %w", len(w.Rows)+1, err)
		}
		row.Long, err = parseCoord(record[colLong])
		if err != nil {
			return nil, fmt.Errorf("row %d long, %w", len(w.Rows)+1, err)
		}
		for i, val := range record[colFirstDate:] {
			count, err := strconv.ParseInt(val, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q, %w", len(w.Rows)+1, header[colFirstDate+i], err)
			}
			row.Values = append(row.Values, count)
		}
		w.Rows = append(w.Rows, row)
	}
	return w, nil
}

// some rows carry an empty coordinate
func parseCoord(val string) (float64, error) {
	if val == "" {
		return 0, nil
	}
	return strconv.ParseFloat(val, 64)
}

// ColumnTotal sums the metric over all regions for a single date column.
func (w *WideTable) ColumnTotal(date time.Time) int64 {
	idx := -1
	for i, d := range w.Dates {
		if d.Equal(date) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return 0
	}
	var total int64
	for _, row := range w.Rows {
		total += row.Values[idx]
	}
	return total
}
