package dataset

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Province/State,Country/Region,Lat,Long,1/22/20,1/23/20,1/24/20
,Afghanistan,33.0,65.0,0,0,1
"British Columbia",Canada,49.2827,-123.1207,1,2,3
,Canada,,,0,1,1
`

func TestParseWide(t *testing.T) {
	w, err := ParseWide(strings.NewReader(sampleCSV), "confirmed")
	require.Nil(t, err)

	assert.Equal(t, "confirmed", w.Metric)
	require.Len(t, w.Dates, 3)
	assert.Equal(t, time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC), w.Dates[0])
	assert.Equal(t, time.Date(2020, 1, 24, 0, 0, 0, 0, time.UTC), w.Dates[2])

	require.Len(t, w.Rows, 3)
	assert.Equal(t, "Afghanistan", w.Rows[0].Country)
	assert.Equal(t, "British Columbia", w.Rows[1].Province)
	assert.Equal(t, []int64{1, 2, 3}, w.Rows[1].Values)
	assert.Equal(t, 0.0, w.Rows[2].Lat)
}

func TestParseWideErrors(t *testing.T) {
	testData := map[string]struct {
		input string
		err   error
	}{
		"too few columns": {
			input: "Province/State,Country/Region,Lat\n",
			err:   ErrSchemaMismatch,
		},
		"bad date header": {
			input: "Province/State,Country/Region,Lat,Long,not-a-date\n",
			err:   ErrBadDateHeader,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWide(strings.NewReader(td.input), "confirmed")
			assert.ErrorIs(t, err, td.err)
		})
	}

	t.Run("bad count", func(t *testing.T) {
		input := "Province/State,Country/Region,Lat,Long,1/22/20\n,Albania,41.0,20.0,oops\n"
		_, err := ParseWide(strings.NewReader(input), "confirmed")
		assert.Error(t, err)
	})
}

func TestColumnTotal(t *testing.T) {
	w, err := ParseWide(strings.NewReader(sampleCSV), "confirmed")
	require.Nil(t, err)

	assert.Equal(t, int64(1), w.ColumnTotal(time.Date(2020, 1, 22, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(5), w.ColumnTotal(time.Date(2020, 1, 24, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, int64(0), w.ColumnTotal(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)))
}
